package di

import (
	"context"
	"fmt"
	"time"

	domrepo "SeasonPulse/internal/domain/repository"
	"SeasonPulse/internal/handler/api"
	internalrepo "SeasonPulse/internal/repository"
	"SeasonPulse/internal/scheduler"
	"SeasonPulse/internal/service/yahoo"
	"SeasonPulse/internal/usecase"
	"SeasonPulse/pkg/cache"
	pkgch "SeasonPulse/pkg/clickhouse"
	"SeasonPulse/pkg/config"
	xhttp "SeasonPulse/pkg/http"
	pkgkafka "SeasonPulse/pkg/kafka"
	applogger "SeasonPulse/pkg/logger"
	"SeasonPulse/pkg/metrics"
	"SeasonPulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideClickHouseClient creates a ClickHouse client and applies the schema.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	ch := cfg.Storage.ClickHouse
	client, err := pkgch.NewClient(
		pkgch.WithHost(ch.Host),
		pkgch.WithPort(ch.Port),
		pkgch.WithDatabase(ch.Database),
		pkgch.WithCredentials(ch.User, ch.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(ch.DialTimeout, ch.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.Schema(ch.Database)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideWeeklyStore creates the ClickHouse-backed weekly bar store.
func ProvideWeeklyStore(client *pkgch.Client, cfg *config.Config, l *applogger.Logger) domrepo.WeeklyStore {
	store := internalrepo.NewCHWeeklyStore(client, cfg.Storage.ClickHouse.Database)
	store.SetLogger(l)
	return store
}

// ProvideMarketData creates the Yahoo Finance market data client.
func ProvideMarketData(cfg *config.Config) domrepo.MarketData {
	return yahoo.New(cfg.Market.RequestTimeout, cfg.Market.UserAgent)
}

// ProvideCache creates the response cache. Redis when enabled in config,
// an in-process cache otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Enabled {
		return cache.NewMemoryCache(), nil
	}
	return cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	)
}

// ProvidePublisher creates the refresh event publisher. A no-op
// implementation is used when Kafka is disabled.
func ProvidePublisher(cfg *config.Config) (domrepo.Publisher, error) {
	if !cfg.Kafka.Enabled {
		return internalrepo.NoopPublisher{}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic), nil
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideAnalyzeUseCase creates the analysis use case.
func ProvideAnalyzeUseCase(
	market domrepo.MarketData,
	store domrepo.WeeklyStore,
	m domrepo.Metrics,
	cacheSvc cache.Service,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.AnalyzeUseCase {
	return usecase.NewAnalyzeUseCase(market, store, m, cacheSvc, l, usecase.AnalyzeConfig{
		LookbackYears:      cfg.Market.LookbackYears,
		FreshnessTTL:       cfg.Storage.FreshnessTTL,
		ResponseTTL:        cfg.Cache.ResponseTTL,
		FailOnPersistError: cfg.Storage.FailOnPersistError,
	})
}

// ProvideRefreshUseCase creates the scheduled refresh use case.
func ProvideRefreshUseCase(
	analyze *usecase.AnalyzeUseCase,
	store domrepo.WeeklyStore,
	publisher domrepo.Publisher,
	m domrepo.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.RefreshUseCase {
	return usecase.NewRefreshUseCase(analyze, store, publisher, m, l, cfg.Market.Symbols)
}

// ProvideHandler creates the HTTP API handler.
func ProvideHandler(analyze *usecase.AnalyzeUseCase, l *applogger.Logger) *api.Handler {
	return api.NewHandler(analyze, l)
}

// ProvideApp assembles the HTTP server, scheduler and resource lifecycle.
func ProvideApp(
	handler *api.Handler,
	refresh *usecase.RefreshUseCase,
	publisher domrepo.Publisher,
	cacheSvc cache.Service,
	chClient *pkgch.Client,
	l *applogger.Logger,
	cfg *config.Config,
) *server.App {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}

	srv := xhttp.NewServer(handler,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(l),
	)

	opts := []server.AppOption{
		server.WithAppLogger(l),
		server.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		server.WithCloser(publisher),
		server.WithCloser(cacheSvc),
		server.WithCloser(chClient),
	}
	if cfg.Scheduler.Enabled {
		opts = append(opts, server.WithRunner(scheduler.New(refresh, cfg.Scheduler.Cron, l)))
	}
	return server.NewApp(srv, opts...)
}
