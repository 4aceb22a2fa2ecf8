package usecase

import (
	"context"
	"time"

	domrepo "SeasonPulse/internal/domain/repository"
	applogger "SeasonPulse/pkg/logger"
)

// RefreshUseCase rebuilds weekly bars for every tracked symbol. It is
// driven by the daily scheduler and announces each completed refresh to
// the event publisher.
type RefreshUseCase struct {
	analyze   *AnalyzeUseCase
	store     domrepo.WeeklyStore
	publisher domrepo.Publisher
	metrics   domrepo.Metrics
	l         *applogger.Logger

	seedSymbols []string
	now         func() time.Time
}

func NewRefreshUseCase(
	analyze *AnalyzeUseCase,
	store domrepo.WeeklyStore,
	publisher domrepo.Publisher,
	metrics domrepo.Metrics,
	l *applogger.Logger,
	seedSymbols []string,
) *RefreshUseCase {
	return &RefreshUseCase{
		analyze:     analyze,
		store:       store,
		publisher:   publisher,
		metrics:     metrics,
		l:           l,
		seedSymbols: seedSymbols,
		now:         time.Now,
	}
}

// RefreshAll rebuilds weekly bars for the union of configured seed
// symbols and symbols already present in the store. Failures are logged
// per symbol; one bad symbol never aborts the run.
func (uc *RefreshUseCase) RefreshAll(ctx context.Context) {
	start := uc.now()
	symbols := uc.collectSymbols(ctx)
	if uc.l != nil {
		uc.l.Info("daily refresh started", applogger.Int("symbols", len(symbols)))
	}

	var refreshed int
	for _, symbol := range symbols {
		if ctx.Err() != nil {
			return
		}
		bars, err := uc.analyze.Refresh(ctx, symbol)
		if err != nil {
			uc.metrics.RecordError("refresh")
			if uc.l != nil {
				uc.l.Error("refresh symbol failed",
					applogger.String("symbol", symbol),
					applogger.Error(err),
				)
			}
			continue
		}
		if len(bars) == 0 {
			if uc.l != nil {
				uc.l.Warn("refresh returned no data", applogger.String("symbol", symbol))
			}
			continue
		}
		refreshed++

		if err := uc.publisher.PublishRefreshed(ctx, symbol, len(bars), uc.now().UTC()); err != nil {
			uc.metrics.RecordError("publish")
			if uc.l != nil {
				uc.l.Warn("publish refresh event failed",
					applogger.String("symbol", symbol),
					applogger.Error(err),
				)
			}
		}
	}

	uc.metrics.RecordLatency("refresh_all", uc.now().Sub(start).Seconds())
	if uc.l != nil {
		uc.l.Info("daily refresh finished",
			applogger.Int("refreshed", refreshed),
			applogger.Int("total", len(symbols)),
			applogger.Duration("took", uc.now().Sub(start)),
		)
	}
}

func (uc *RefreshUseCase) collectSymbols(ctx context.Context) []string {
	seen := make(map[string]struct{}, len(uc.seedSymbols))
	var out []string
	for _, s := range uc.seedSymbols {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	stored, err := uc.store.ListSymbols(ctx)
	if err != nil {
		if uc.l != nil {
			uc.l.Warn("list stored symbols failed", applogger.Error(err))
		}
		return out
	}
	for _, m := range stored {
		if _, ok := seen[m.Symbol]; ok {
			continue
		}
		seen[m.Symbol] = struct{}{}
		out = append(out, m.Symbol)
	}
	return out
}
