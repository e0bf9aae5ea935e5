// Package app composes the long-lived dependencies of a lightbnb process.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool
//   - redis client (optional)
//   - background job service (asynq)
//   - repositories and services built on top of them
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/deppfellow/lightbnb/internal/config"
	"github.com/deppfellow/lightbnb/internal/database"
	"github.com/deppfellow/lightbnb/internal/health"
	"github.com/deppfellow/lightbnb/internal/lib/cache"
	"github.com/deppfellow/lightbnb/internal/lib/email"
	"github.com/deppfellow/lightbnb/internal/lib/job"
	loggerPkg "github.com/deppfellow/lightbnb/internal/logger"
	"github.com/deppfellow/lightbnb/internal/repository"
	"github.com/deppfellow/lightbnb/internal/service"
)

// searchCacheNamespace prefixes every property search cache key.
const searchCacheNamespace = "lightbnb:properties:search"

const redisPingTimeout = 5 * time.Second

// App is the application container shared by every command.
type App struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	DB *database.Database

	// Redis is nil when no address is configured.
	Redis *redis.Client

	// Job is nil when Redis is disabled.
	Job *job.JobService

	Repositories *repository.Repositories
	Services     *service.Services

	workerStarted bool
}

// New opens the database pool and, when configured, the Redis client and
// job client, then wires repositories and services.
//
// The database is required: a failed ping aborts startup. Redis is
// optional: a failed ping is logged and the process continues without
// the search cache.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*App, error) {
	db, err := database.New(ctx, cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	a := &App{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Repositories:  repository.NewRepositories(db.Pool, logger),
	}

	deps := service.Dependencies{Logger: logger}

	if cfg.Redis.Enabled() {
		a.Redis = newRedisClient(ctx, cfg, logger, loggerService)

		a.Job = job.NewJobService(logger, cfg)
		a.Job.InitHandlers(email.NewClient(cfg, logger))
		deps.Jobs = a.Job.Client

		if cfg.Cache.Enabled {
			deps.SearchCache = cache.New(a.Redis, searchCacheNamespace, cfg.Cache.TTL)
		}
	}

	a.Services = service.NewServices(a.Repositories, deps)

	return a, nil
}

func newRedisClient(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
	})

	if loggerService != nil && loggerService.GetApplication() != nil {
		client.AddHook(nrredis.NewHook(client.Options()))
	}

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without Redis")
	}

	return client
}

// HealthChecker returns a checker over the app's connections, configured
// from the observability block.
func (a *App) HealthChecker() *health.Checker {
	checker := &health.Checker{
		Environment: a.Config.Primary.Env,
		Logger:      a.Logger,
	}

	if a.DB != nil {
		checker.Database = a.DB
	}
	if a.Redis != nil {
		checker.Redis = health.RedisPinger{Client: a.Redis}
	}
	if a.LoggerService != nil {
		checker.App = a.LoggerService.GetApplication()
	}
	if obs := a.Config.Observability; obs != nil {
		checker.Timeout = obs.HealthChecks.Timeout
		checker.Checks = obs.HealthChecks.Checks
	}

	return checker
}

// StartWorker starts processing background jobs. It does not block.
func (a *App) StartWorker() error {
	if a.Job == nil {
		return fmt.Errorf("background jobs require redis: set %sREDIS__ADDRESS", config.EnvPrefix)
	}
	if err := a.Job.Start(); err != nil {
		return fmt.Errorf("failed to start job server: %w", err)
	}
	a.workerStarted = true
	return nil
}

// Shutdown stops the worker if it runs, then closes the job client, the
// Redis client and the database pool, and flushes New Relic.
func (a *App) Shutdown() error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if a.Job != nil {
		if a.workerStarted {
			a.Job.Stop()
		} else {
			keep(a.Job.Close())
		}
	}

	if a.Redis != nil {
		keep(a.Redis.Close())
	}

	if a.DB != nil {
		keep(a.DB.Close())
	}

	if a.LoggerService != nil {
		a.LoggerService.Shutdown()
	}

	return firstErr
}
