package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"SeasonPulse/internal/domain/models"
	domrepo "SeasonPulse/internal/domain/repository"
	"SeasonPulse/internal/services/seasonality"
	"SeasonPulse/pkg/cache"
	xhttp "SeasonPulse/pkg/http"
	applogger "SeasonPulse/pkg/logger"
)

// AnalyzeUseCase orchestrates a seasonality analysis: it keeps stored
// weekly bars fresh, recomputes rolling metrics and per-week-number
// statistics, and assembles the response payload.
type AnalyzeUseCase struct {
	market  domrepo.MarketData
	store   domrepo.WeeklyStore
	metrics domrepo.Metrics
	cache   cache.Service
	l       *applogger.Logger

	lookbackYears      int
	freshnessTTL       time.Duration
	responseTTL        time.Duration
	failOnPersistError bool

	now func() time.Time
}

// AnalyzeConfig carries the tunables the use case needs from app config.
type AnalyzeConfig struct {
	LookbackYears      int
	FreshnessTTL       time.Duration
	ResponseTTL        time.Duration
	FailOnPersistError bool
}

func NewAnalyzeUseCase(
	market domrepo.MarketData,
	store domrepo.WeeklyStore,
	metrics domrepo.Metrics,
	cacheSvc cache.Service,
	l *applogger.Logger,
	cfg AnalyzeConfig,
) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		market:             market,
		store:              store,
		metrics:            metrics,
		cache:              cacheSvc,
		l:                  l,
		lookbackYears:      cfg.LookbackYears,
		freshnessTTL:       cfg.FreshnessTTL,
		responseTTL:        cfg.ResponseTTL,
		failOnPersistError: cfg.FailOnPersistError,
		now:                time.Now,
	}
}

// Analyze returns seasonality statistics for symbol under the given
// predecessor filter. Stored bars older than the freshness TTL are
// rebuilt from the upstream provider before computing.
func (uc *AnalyzeUseCase) Analyze(ctx context.Context, symbol string, filter domrepo.FilterMode) (*models.AnalyzeResult, error) {
	start := uc.now()
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	cacheKey := fmt.Sprintf("analyze:%s:%s", symbol, filter)
	if uc.cache != nil {
		var cached models.AnalyzeResult
		if err := uc.cache.Get(ctx, cacheKey, &cached); err == nil {
			uc.metrics.RecordAnalyze(symbol, string(filter))
			return &cached, nil
		}
	}

	bars, err := uc.ensureFresh(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		uc.metrics.RecordError("symbol_not_found")
		return nil, xhttp.NotFoundErrorf("no data found for symbol %s", symbol)
	}

	enriched := seasonality.EnrichBars(bars)
	stats := seasonality.Aggregate(enriched, filter)
	result := seasonality.Assemble(enriched, stats, uc.now().UTC())

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, cacheKey, &result, uc.responseTTL); err != nil && uc.l != nil {
			uc.l.Warn("cache set failed",
				applogger.String("key", cacheKey),
				applogger.Error(err),
			)
		}
	}

	uc.metrics.RecordAnalyze(symbol, string(filter))
	uc.metrics.RecordLatency("analyze", uc.now().Sub(start).Seconds())
	return &result, nil
}

// ensureFresh returns the symbol's weekly bars, rebuilding them from the
// provider when the stored copy is missing or stale. Freshly computed
// bars are returned directly so the response never depends on storage
// read-after-write visibility.
func (uc *AnalyzeUseCase) ensureFresh(ctx context.Context, symbol string) ([]models.WeeklyBar, error) {
	last, ok, err := uc.store.LastUpdated(ctx, symbol)
	if err != nil {
		uc.metrics.RecordError("storage")
		return nil, xhttp.InternalError("storage unavailable").WithError(err)
	}
	if ok && uc.now().UTC().Sub(last) < uc.freshnessTTL {
		bars, err := uc.store.GetWeeklyBars(ctx, symbol)
		if err != nil {
			uc.metrics.RecordError("storage")
			return nil, xhttp.InternalError("storage unavailable").WithError(err)
		}
		return bars, nil
	}
	return uc.Refresh(ctx, symbol)
}

// Refresh fetches daily history for symbol, rebuilds its weekly bars and
// persists them. The computed bars are returned; persistence failures are
// tolerated unless fail_on_persist_error is set.
func (uc *AnalyzeUseCase) Refresh(ctx context.Context, symbol string) ([]models.WeeklyBar, error) {
	daily, err := uc.market.FetchDailyBars(ctx, symbol, uc.lookbackYears)
	if err != nil {
		uc.metrics.RecordError("provider")
		return nil, xhttp.UpstreamError("market data provider unavailable").WithError(err)
	}
	if len(daily) == 0 {
		return nil, nil
	}

	weekly := seasonality.BucketWeeks(daily)

	if err := uc.store.UpsertWeeklyBars(ctx, symbol, weekly); err != nil {
		uc.metrics.RecordError("persist")
		if uc.failOnPersistError {
			return nil, xhttp.InternalError("failed to persist weekly bars").WithError(err)
		}
		if uc.l != nil {
			uc.l.Warn("persist weekly bars failed, serving computed result",
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
		return weekly, nil
	}
	if err := uc.store.TouchSymbol(ctx, symbol, uc.now().UTC()); err != nil && uc.l != nil {
		uc.l.Warn("touch symbol failed",
			applogger.String("symbol", symbol),
			applogger.Error(err),
		)
	}

	uc.metrics.RecordRefresh(symbol, len(weekly))
	return weekly, nil
}

// Symbols lists every symbol the store has refreshed at least once.
func (uc *AnalyzeUseCase) Symbols(ctx context.Context) ([]models.SymbolMeta, error) {
	symbols, err := uc.store.ListSymbols(ctx)
	if err != nil {
		uc.metrics.RecordError("storage")
		return nil, xhttp.InternalError("storage unavailable").WithError(err)
	}
	if symbols == nil {
		symbols = []models.SymbolMeta{}
	}
	return symbols, nil
}

// Health reports storage reachability.
func (uc *AnalyzeUseCase) Health(ctx context.Context) error {
	return uc.store.Health(ctx)
}
