package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/pkg/logger"
)

// Probe is one dependency readiness check.
type Probe struct {
	Name    string
	Timeout time.Duration
	Check   func(ctx context.Context) error
}

// HealthChecker gates startup on dependency readiness. Its retries cover
// readiness probes only; forecast requests are never retried.
type HealthChecker struct {
	probes        []Probe
	retryInterval time.Duration
	maxRetries    int
	logger        logger.Logger
}

func NewHealthChecker(probes []Probe, retryInterval time.Duration, maxRetries int, log logger.Logger) *HealthChecker {
	if maxRetries <= 0 {
		maxRetries = 1
	}
	if log == nil {
		log = logger.Discard()
	}
	return &HealthChecker{
		probes:        probes,
		retryInterval: retryInterval,
		maxRetries:    maxRetries,
		logger:        log.WithField("component", "health_checker"),
	}
}

func (h *HealthChecker) CheckAll(ctx context.Context) error {
	h.logger.Info("Starting health checks for all dependencies")

	for _, probe := range h.probes {
		if err := h.checkWithRetry(ctx, probe); err != nil {
			return fmt.Errorf("%s health check failed: %w", probe.Name, err)
		}
	}

	h.logger.Info("All health checks passed successfully")
	return nil
}

func (h *HealthChecker) checkWithRetry(ctx context.Context, probe Probe) error {
	var lastErr error

	for i := 0; i < h.maxRetries; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		h.logger.Debugf("Checking %s (attempt %d/%d)", probe.Name, i+1, h.maxRetries)

		checkCtx, cancel := probeContext(ctx, probe.Timeout)
		err := probe.Check(checkCtx)
		cancel()

		if err == nil {
			h.logger.Infof("%s health check passed", probe.Name)
			return nil
		}

		lastErr = err
		h.logger.Warnf("%s health check failed (attempt %d/%d): %v", probe.Name, i+1, h.maxRetries, err)

		if i < h.maxRetries-1 {
			h.logger.Debugf("Retrying %s check in %v", probe.Name, h.retryInterval)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(h.retryInterval):
			}
		}
	}

	return fmt.Errorf("all %d attempts failed, last error: %w", h.maxRetries, lastErr)
}

func probeContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
