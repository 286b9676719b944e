package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sourcegraph/conc/pool"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/jsx-dev/intramural-league/internal/config"
	"github.com/jsx-dev/intramural-league/internal/domain/stat"
	"github.com/jsx-dev/intramural-league/internal/domain/team"
	"github.com/jsx-dev/intramural-league/internal/domain/teamrequest"
	"github.com/jsx-dev/intramural-league/internal/domain/user"
	cacherepo "github.com/jsx-dev/intramural-league/internal/infrastructure/repository/cache"
	"github.com/jsx-dev/intramural-league/internal/infrastructure/repository/memory"
	"github.com/jsx-dev/intramural-league/internal/infrastructure/repository/postgres"
	basecache "github.com/jsx-dev/intramural-league/internal/platform/cache"
	"github.com/jsx-dev/intramural-league/internal/platform/logging"
	"github.com/jsx-dev/intramural-league/internal/platform/resilience"
	"github.com/jsx-dev/intramural-league/internal/usecase"
)

const (
	dbPingTimeout     = 5 * time.Second
	cacheWarmupWorker = 4
)

// Container owns the wired services and the resources behind them.
type Container struct {
	Registration *usecase.RegistrationService
	Statistics   *usecase.StatisticsService

	logger  *logging.Logger
	closers []func() error
}

type repositories struct {
	users    user.Repository
	teams    team.Repository
	requests teamrequest.Repository
	stats    stat.Repository
}

// NewContainer builds the repositories selected by STORAGE_DRIVER, wraps them
// with the read cache when enabled and hands them to the use cases.
func NewContainer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Container{logger: logger}

	var (
		repos repositories
		err   error
	)
	switch cfg.StorageDriver {
	case config.StorageMemory:
		repos = newMemoryRepositories()
	case config.StoragePostgres:
		repos, err = c.newPostgresRepositories(ctx, cfg)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	if cfg.CacheEnabled {
		repos = withCache(repos, basecache.NewStore(cfg.CacheTTL))
		if err := warmCache(ctx, repos); err != nil {
			logger.WarnContext(ctx, "cache warm-up failed", "error", err)
		}
	}

	c.Registration = usecase.NewRegistrationService(repos.users, repos.teams, repos.requests)
	c.Statistics = usecase.NewStatisticsService(repos.users, repos.stats)

	logger.InfoContext(ctx, "league services ready",
		"storage_driver", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
	)

	return c, nil
}

// Close releases resources in reverse order of acquisition.
func (c *Container) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}

func newMemoryRepositories() repositories {
	requests := memory.NewTeamRequestRepository(memory.SeedTeamRequests())
	return repositories{
		users:    memory.NewUserRepository(memory.SeedUsers(), requests),
		teams:    memory.NewTeamRepository(memory.SeedTeams()),
		requests: requests,
		stats:    memory.NewBasketballStatRepository(memory.SeedBasketballStats()),
	}
}

func (c *Container) newPostgresRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	db, err := openPostgres(ctx, cfg)
	if err != nil {
		return repositories{}, err
	}
	c.closers = append(c.closers, db.Close)

	if cfg.DBBootstrapSeed {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
		}
		c.logger.InfoContext(ctx, "bootstrap seed checked")
	}

	guard := postgres.NewGuard(resilience.CircuitBreakerConfig{
		Enabled:          cfg.DBCircuitEnabled,
		FailureThreshold: cfg.DBCircuitFailureCount,
		OpenTimeout:      cfg.DBCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.DBCircuitHalfOpenMaxReq,
	}, c.logger.With("component", "postgres"))

	return repositories{
		users:    postgres.NewUserRepository(db, guard),
		teams:    postgres.NewTeamRepository(db, guard),
		requests: postgres.NewTeamRequestRepository(db, guard),
		stats:    postgres.NewBasketballStatRepository(db, guard),
	}, nil
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dbName := dbNameFromURL(cfg.DBURL)
	db, err := otelsqlx.Open("postgres", cfg.DBURL,
		otelsql.WithDBName(dbName),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	otelsql.ReportDBStatsMetrics(db.DB, otelsql.WithDBName(dbName))

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

func withCache(repos repositories, store *basecache.Store) repositories {
	return repositories{
		users:    cacherepo.NewUserRepository(repos.users, store),
		teams:    cacherepo.NewTeamRepository(repos.teams, store),
		requests: cacherepo.NewTeamRequestRepository(repos.requests, store),
		stats:    cacherepo.NewBasketballStatRepository(repos.stats, store),
	}
}

// warmCache loads every list the use cases scan so the first requests do not
// all miss at once.
func warmCache(ctx context.Context, repos repositories) error {
	p := pool.New().WithContext(ctx).WithMaxGoroutines(cacheWarmupWorker)
	p.Go(func(ctx context.Context) error {
		_, err := repos.users.FindAll(ctx)
		return err
	})
	p.Go(func(ctx context.Context) error {
		_, err := repos.teams.FindAll(ctx)
		return err
	})
	p.Go(func(ctx context.Context) error {
		_, err := repos.requests.FindAll(ctx)
		return err
	})
	p.Go(func(ctx context.Context) error {
		_, err := repos.stats.FindAll(ctx)
		return err
	})
	return p.Wait()
}
