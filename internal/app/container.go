package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"ecopickup/internal/config"
	"ecopickup/internal/http/handlers"
	"ecopickup/internal/http/pprofserver"
	"ecopickup/internal/http/router"
	"ecopickup/internal/logx"
	"ecopickup/internal/metrics"
	"ecopickup/internal/repository"
	"ecopickup/internal/service/analytics"
	"ecopickup/internal/service/lifecycle"
	"ecopickup/internal/service/pickup"
	"ecopickup/internal/syncpolicy"
)

type dbConnectFunc func(ctx context.Context, logger logx.Logger, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error)

type migrateFunc func(ctx context.Context, pool *pgxpool.Pool) error

// aggregateInterval is the period of the impact metrics job.
type aggregateInterval time.Duration

// responseMargin is added to the lifecycle timeout so the handler can still write its response.
const responseMargin = 10 * time.Second

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect  dbConnectFunc
	migrate    migrateFunc
	ledgerDial ledgerDialFunc
	logFatalf  func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect:  connectDbWithRetry,
		migrate:    repository.Migrate,
		ledgerDial: dialLedger,
		logFatalf:  log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithMigrate sets the schema migration function
func (b *ContainerBuilder) WithMigrate(fn migrateFunc) *ContainerBuilder {
	if fn != nil {
		b.migrate = fn
	}
	return b
}

// WithLedgerDial sets the ledger connection function
func (b *ContainerBuilder) WithLedgerDial(fn ledgerDialFunc) *ContainerBuilder {
	if fn != nil {
		b.ledgerDial = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds the HTTP service container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds the Kafka worker container.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container, err := b.buildBase(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container, err := b.buildBase(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildBase(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect, b.migrate); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerLedger(container, b.ledgerDial); err != nil {
		return nil, fmt.Errorf("ledger: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns the HTTP service container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds and returns the worker container
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
		provideMetrics,
		func(cfg *config.Config) aggregateInterval {
			return aggregateInterval(cfg.Metrics.AggregateInterval)
		},
	)
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc, migrate migrateFunc) error {
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*pgxpool.Pool, error) {
		pool, err := dbConnect(ctx, logger, cfg.DB.DSN(), 10, time.Second)
		if err != nil {
			return nil, err
		}
		if err := migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return pool, nil
	}
	return provideAll(container, providerDB)
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		repository.NewPickupRepo,
		repository.NewDirectoryRepo,
		func(repo *repository.PickupRepo, logger logx.Logger) *pickup.Service {
			return pickup.NewService(repo, 3*time.Second, logger)
		},
		func(
			repo *repository.PickupRepo,
			dir *repository.DirectoryRepo,
			chain lifecycle.Ledger,
			policy syncpolicy.Policy,
			cfg *config.Config,
			logger logx.Logger,
		) *lifecycle.Service {
			return lifecycle.NewService(repo, dir, chain, policy, cfg.Lifecycle.OperationTimeout, logger)
		},
		func(repo *repository.PickupRepo, impact *metrics.Impact, logger logx.Logger) *analytics.Aggregator {
			return analytics.NewAggregator(repo, impact, 0, logger)
		},
	)
}

type httpServersOut struct {
	dig.Out

	Main  *http.Server
	Pprof *http.Server `name:"pprof_server"`
}

func registerHTTP(container *dig.Container) error {
	serversProvider := func(cfg *config.Config, mux http.Handler, logger logx.Logger) httpServersOut {
		return httpServersOut{
			Main: &http.Server{
				Addr:              fmt.Sprintf(":%d", cfg.Port),
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       15 * time.Second,
				WriteTimeout:      cfg.Lifecycle.OperationTimeout + responseMargin,
				IdleTimeout:       60 * time.Second,
			},
			Pprof: pprofserver.New(pprofserver.Config{
				Enabled: cfg.Pprof.Enabled,
				Addr:    cfg.Pprof.Addr,
				User:    cfg.Pprof.User,
				Pass:    cfg.Pprof.Pass,
			}, logger),
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewPickupUsecase,
		handlers.NewPickupHandler,
		handlers.NewLifecycleUsecase,
		handlers.NewLifecycleHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		router.New,
		serversProvider,
	)
}
