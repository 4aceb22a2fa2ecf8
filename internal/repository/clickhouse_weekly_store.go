package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"SeasonPulse/internal/domain/models"
	pkgch "SeasonPulse/pkg/clickhouse"
	applogger "SeasonPulse/pkg/logger"
)

// Schema returns the idempotent DDL for the weekly bar store. Upsert
// semantics come from ReplacingMergeTree keyed on (symbol, week_start):
// re-inserted weeks replace the previous row at merge time and reads go
// through FINAL.
func Schema(database string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.weekly_bars (
			symbol String,
			week_start Date,
			year UInt16,
			week_number UInt8,
			open Float64,
			high Float64,
			low Float64,
			close Float64,
			return_pct Float64,
			volatility Float64,
			updated_at DateTime
		) ENGINE = ReplacingMergeTree(updated_at) ORDER BY (symbol, week_start)`, database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.symbols (
			symbol String,
			last_updated DateTime
		) ENGINE = ReplacingMergeTree(last_updated) ORDER BY symbol`, database),
	}
}

// CHWeeklyStore implements WeeklyStore backed by ClickHouse.
type CHWeeklyStore struct {
	db       *sql.DB
	database string
	l        *applogger.Logger
}

func NewCHWeeklyStore(ch *pkgch.Client, database string) *CHWeeklyStore {
	return &CHWeeklyStore{db: ch.DB(), database: database}
}

// SetLogger injects a structured logger.
func (s *CHWeeklyStore) SetLogger(l *applogger.Logger) { s.l = l }

const upsertChunkSize = 500

func (s *CHWeeklyStore) UpsertWeeklyBars(ctx context.Context, symbol string, bars []models.WeeklyBar) error {
	if len(bars) == 0 {
		return nil
	}
	now := time.Now().UTC()

	for start := 0; start < len(bars); start += upsertChunkSize {
		end := start + upsertChunkSize
		if end > len(bars) {
			end = len(bars)
		}
		chunk := bars[start:end]

		values := make([]string, 0, len(chunk))
		args := make([]interface{}, 0, len(chunk)*11)
		for _, b := range chunk {
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				symbol,
				b.WeekStart.Time,
				b.Year,
				b.WeekNumber,
				b.Open,
				b.High,
				b.Low,
				b.Close,
				b.ReturnPct,
				b.Volatility,
				now,
			)
		}
		q := fmt.Sprintf(
			"INSERT INTO %s.weekly_bars (symbol, week_start, year, week_number, open, high, low, close, return_pct, volatility, updated_at) VALUES %s",
			s.database, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse upsert weekly bars",
					applogger.String("symbol", symbol),
					applogger.Int("bars", len(chunk)),
					applogger.Error(err),
				)
			}
			return fmt.Errorf("upsert weekly bars: %w", err)
		}
	}
	return nil
}

func (s *CHWeeklyStore) GetWeeklyBars(ctx context.Context, symbol string) ([]models.WeeklyBar, error) {
	q := fmt.Sprintf(`
		SELECT week_start, year, week_number, open, high, low, close, return_pct, volatility
		FROM %s.weekly_bars FINAL
		WHERE symbol = ?
		ORDER BY week_start ASC`, s.database)

	rows, err := s.db.QueryContext(ctx, q, symbol)
	if err != nil {
		return nil, fmt.Errorf("get weekly bars: %w", err)
	}
	defer rows.Close()

	out := make([]models.WeeklyBar, 0, 1024)
	for rows.Next() {
		var b models.WeeklyBar
		var weekStart time.Time
		if err := rows.Scan(&weekStart, &b.Year, &b.WeekNumber,
			&b.Open, &b.High, &b.Low, &b.Close, &b.ReturnPct, &b.Volatility); err != nil {
			return nil, fmt.Errorf("scan weekly bar: %w", err)
		}
		b.WeekStart = models.NewDate(weekStart)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Debug("clickhouse get weekly bars",
			applogger.String("symbol", symbol),
			applogger.Int("rows", len(out)),
		)
	}
	return out, nil
}

func (s *CHWeeklyStore) LastUpdated(ctx context.Context, symbol string) (time.Time, bool, error) {
	q := fmt.Sprintf("SELECT max(last_updated) FROM %s.symbols WHERE symbol = ?", s.database)
	var last time.Time
	if err := s.db.QueryRowContext(ctx, q, symbol).Scan(&last); err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("last updated: %w", err)
	}
	// max() over an empty set yields the epoch zero value.
	if last.IsZero() || last.Unix() == 0 {
		return time.Time{}, false, nil
	}
	return last, true, nil
}

func (s *CHWeeklyStore) TouchSymbol(ctx context.Context, symbol string, at time.Time) error {
	q := fmt.Sprintf("INSERT INTO %s.symbols (symbol, last_updated) VALUES (?, ?)", s.database)
	if _, err := s.db.ExecContext(ctx, q, symbol, at.UTC()); err != nil {
		return fmt.Errorf("touch symbol: %w", err)
	}
	return nil
}

func (s *CHWeeklyStore) ListSymbols(ctx context.Context) ([]models.SymbolMeta, error) {
	q := fmt.Sprintf("SELECT symbol, max(last_updated) FROM %s.symbols GROUP BY symbol ORDER BY symbol", s.database)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list symbols: %w", err)
	}
	defer rows.Close()

	var out []models.SymbolMeta
	for rows.Next() {
		var m models.SymbolMeta
		if err := rows.Scan(&m.Symbol, &m.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *CHWeeklyStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHWeeklyStore) Close() error {
	return nil // pool managed by pkg client
}
