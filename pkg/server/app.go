package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	xhttp "SeasonPulse/pkg/http"
	applogger "SeasonPulse/pkg/logger"
)

// Runner is a background component with a start/stop lifecycle.
type Runner interface {
	Start() error
	Stop()
}

// App ties the HTTP server, background runners and closable resources
// into one lifecycle: Run blocks until SIGINT/SIGTERM, then shuts
// everything down in reverse order.
type App struct {
	server          *xhttp.Server
	runners         []Runner
	closers         []io.Closer
	l               *applogger.Logger
	shutdownTimeout time.Duration
}

// AppOption configures App.
type AppOption func(*App)

func NewApp(server *xhttp.Server, opts ...AppOption) *App {
	app := &App{
		server:          server,
		shutdownTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// WithRunner registers a background component started after the server.
func WithRunner(r Runner) AppOption {
	return func(a *App) { a.runners = append(a.runners, r) }
}

// WithCloser registers a resource closed during shutdown.
func WithCloser(c io.Closer) AppOption {
	return func(a *App) { a.closers = append(a.closers, c) }
}

// WithAppLogger sets the lifecycle logger.
func WithAppLogger(l *applogger.Logger) AppOption {
	return func(a *App) { a.l = l }
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) AppOption {
	return func(a *App) { a.shutdownTimeout = d }
}

// Run starts everything and blocks until a termination signal arrives.
func (a *App) Run() error {
	if err := a.server.Start(); err != nil {
		return err
	}
	for _, r := range a.runners {
		if err := r.Start(); err != nil {
			a.shutdown()
			return err
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	if a.l != nil {
		a.l.Info("shutdown signal received", applogger.String("signal", sig.String()))
	}
	a.shutdown()
	return nil
}

func (a *App) shutdown() {
	for i := len(a.runners) - 1; i >= 0; i-- {
		a.runners[i].Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()
	if err := a.server.Stop(ctx); err != nil && a.l != nil {
		a.l.Error("http server shutdown", applogger.Error(err))
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && a.l != nil {
			a.l.Error("close resource", applogger.Error(err))
		}
	}

	if a.l != nil {
		a.l.Info("shutdown complete")
	}
}
