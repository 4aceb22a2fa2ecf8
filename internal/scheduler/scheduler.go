package scheduler

import (
	"context"
	"time"

	"SeasonPulse/internal/usecase"
	applogger "SeasonPulse/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the daily weekly-bar refresh on a cron expression.
type Scheduler struct {
	cron    *cron.Cron
	refresh *usecase.RefreshUseCase
	spec    string
	l       *applogger.Logger
}

// New creates a scheduler. spec uses the six-field cron format with
// seconds, e.g. "0 0 22 * * *" for 22:00 UTC daily.
func New(refresh *usecase.RefreshUseCase, spec string, l *applogger.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds(), cron.WithLocation(time.UTC)),
		refresh: refresh,
		spec:    spec,
		l:       l,
	}
}

// Start registers the refresh job and begins the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, func() {
		s.refresh.RefreshAll(context.Background())
	}); err != nil {
		return err
	}
	s.cron.Start()
	if s.l != nil {
		s.l.Info("scheduler started", applogger.String("spec", s.spec))
	}
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	if s.l != nil {
		s.l.Info("scheduler stopped")
	}
}

// RunNow triggers a refresh outside the schedule.
func (s *Scheduler) RunNow(ctx context.Context) {
	s.refresh.RefreshAll(ctx)
}
