//go:build wireinject
// +build wireinject

package di

import (
	"SeasonPulse/pkg/config"
	"SeasonPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideCache,
		ProvidePublisher,

		// Repositories
		ProvideWeeklyStore,
		ProvideMarketData,

		// Use cases
		ProvideAnalyzeUseCase,
		ProvideRefreshUseCase,

		// HTTP layer and application server
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
