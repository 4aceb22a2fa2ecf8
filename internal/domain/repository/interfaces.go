package repository

import (
	"context"
	"time"

	"SeasonPulse/internal/domain/models"
)

// MarketData fetches historical daily bars from the upstream provider.
// An empty slice with nil error means the symbol is unknown upstream.
type MarketData interface {
	FetchDailyBars(ctx context.Context, symbol string, lookbackYears int) ([]models.DailyBar, error)
}

// WeeklyStore persists computed weekly bars and symbol refresh metadata.
// Upserts are keyed on (symbol, week_start); a matching key overwrites.
type WeeklyStore interface {
	UpsertWeeklyBars(ctx context.Context, symbol string, bars []models.WeeklyBar) error
	GetWeeklyBars(ctx context.Context, symbol string) ([]models.WeeklyBar, error)
	LastUpdated(ctx context.Context, symbol string) (time.Time, bool, error)
	TouchSymbol(ctx context.Context, symbol string, at time.Time) error
	ListSymbols(ctx context.Context) ([]models.SymbolMeta, error)
	Health(ctx context.Context) error
	Close() error
}

// Publisher announces completed refreshes to downstream consumers.
type Publisher interface {
	PublishRefreshed(ctx context.Context, symbol string, barCount int, at time.Time) error
	Close() error
}

// Metrics records operational measurements.
type Metrics interface {
	RecordAnalyze(symbol, filter string)
	RecordRefresh(symbol string, bars int)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
