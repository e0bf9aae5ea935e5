// Package health checks whether the dependencies of the data-access
// layer are reachable.
//
// Each configured check (database, redis) pings its dependency under a
// timeout. Failures are logged, recorded as New Relic custom events when
// New Relic is enabled, and reported in the returned Report. Only the
// database decides the overall status; Redis backs optional features.
package health

import (
	"context"
	"slices"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusSkipped   = "skipped"

	CheckDatabase = "database"
	CheckRedis    = "redis"
)

// Pinger is anything that can verify its own connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RedisPinger adapts a go-redis client to Pinger.
type RedisPinger struct {
	Client *redis.Client
}

func (p RedisPinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}

// Check is the outcome of a single dependency check.
type Check struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Report is the full result of Run.
type Report struct {
	Status      string           `json:"status"`
	Timestamp   time.Time        `json:"timestamp"`
	Environment string           `json:"environment"`
	Checks      map[string]Check `json:"checks"`
}

// Healthy reports whether the overall status is healthy.
func (r *Report) Healthy() bool {
	return r.Status == StatusHealthy
}

type Checker struct {
	Database    Pinger
	Redis       Pinger
	Environment string
	Timeout     time.Duration
	// Checks limits which checks run. Empty means all.
	Checks []string

	App    *newrelic.Application
	Logger *zerolog.Logger
}

// Run executes the enabled checks sequentially.
func (c *Checker) Run(ctx context.Context) *Report {
	start := time.Now()

	logger := zerolog.Nop()
	if c.Logger != nil {
		logger = c.Logger.With().Str("operation", "health_check").Logger()
	}

	report := &Report{
		Status:      StatusHealthy,
		Timestamp:   time.Now().UTC(),
		Environment: c.Environment,
		Checks:      make(map[string]Check),
	}

	if c.enabled(CheckDatabase) {
		check := c.ping(ctx, &logger, CheckDatabase, c.Database)
		report.Checks[CheckDatabase] = check
		if check.Status != StatusHealthy {
			report.Status = StatusUnhealthy
		}
	}

	if c.enabled(CheckRedis) {
		report.Checks[CheckRedis] = c.ping(ctx, &logger, CheckRedis, c.Redis)
	}

	if !report.Healthy() {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		c.recordEvent(map[string]any{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})
		return report
	}

	logger.Info().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return report
}

func (c *Checker) enabled(name string) bool {
	return len(c.Checks) == 0 || slices.Contains(c.Checks, name)
}

func (c *Checker) ping(ctx context.Context, logger *zerolog.Logger, name string, target Pinger) Check {
	if target == nil {
		return Check{Status: StatusSkipped}
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	checkStart := time.Now()
	err := target.Ping(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		logger.Error().
			Err(err).
			Str("check", name).
			Dur("response_time", elapsed).
			Msg(name + " health check failed")

		c.recordEvent(map[string]any{
			"check_type":       name,
			"operation":        "health_check",
			"error_type":       name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})

		return Check{
			Status:       StatusUnhealthy,
			ResponseTime: elapsed.String(),
			Error:        err.Error(),
		}
	}

	logger.Info().
		Str("check", name).
		Dur("response_time", elapsed).
		Msg(name + " health check passed")

	return Check{Status: StatusHealthy, ResponseTime: elapsed.String()}
}

func (c *Checker) recordEvent(params map[string]any) {
	if c.App == nil {
		return
	}
	c.App.RecordCustomEvent("HealthCheckError", params)
}
