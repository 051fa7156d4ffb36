package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/ports"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/pkg/logger"
	"github.com/robfig/cron/v3"
)

const (
	defaultInterval = 15 * time.Minute
	minInterval     = time.Second
	defaultTimeout  = time.Minute
)

type CronScheduler struct {
	cron    *cron.Cron
	jobs    map[string]cron.EntryID
	cancels []context.CancelFunc
	timeout time.Duration
	mu      sync.RWMutex
	logger  logger.Logger
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// NewCronScheduler starts an empty cron. A job that is still running when
// its next tick fires is skipped rather than run twice.
func NewCronScheduler(timeout time.Duration, log logger.Logger) *CronScheduler {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = logger.Discard()
	}
	log = log.WithField("component", "cron_scheduler")

	cronLog := cronLogger{log: log}
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)

	s := &CronScheduler{
		cron:    c,
		jobs:    make(map[string]cron.EntryID),
		timeout: timeout,
		logger:  log,
	}

	c.Start()
	s.logger.Info("Cron scheduler started")

	return s
}

// Schedule registers task under a unique name. Runs derive their context
// from ctx, so cancelling ctx aborts in-flight runs.
func (s *CronScheduler) Schedule(ctx context.Context, name string, interval time.Duration, task ports.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job with name '%s' already exists", name)
	}

	spec := intervalToSpec(interval)
	s.logger.Infof("Scheduling job '%s' with interval %v (cron: %s)", name, interval, spec)

	jobCtx, cancel := context.WithCancel(ctx)
	entryID, err := s.cron.AddFunc(spec, func() {
		s.runTask(jobCtx, name, task)
	})
	if err != nil {
		cancel()
		return fmt.Errorf("failed to schedule job '%s': %w", name, err)
	}

	s.jobs[name] = entryID
	s.cancels = append(s.cancels, cancel)
	s.logger.Infof("Job '%s' scheduled with entry ID: %d", name, entryID)
	return nil
}

func (s *CronScheduler) runTask(ctx context.Context, name string, task ports.Task) {
	startTime := time.Now()
	s.logger.Debugf("Starting scheduled job: %s", name)

	taskCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := task(taskCtx); err != nil {
		s.logger.Errorf("Job '%s' failed after %v: %v", name, time.Since(startTime), err)
		return
	}

	s.logger.Infof("Job '%s' completed successfully in %v", name, time.Since(startTime))
}

func (s *CronScheduler) Stop() {
	s.logger.Info("Stopping cron scheduler...")
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.jobs = make(map[string]cron.EntryID)
	s.logger.Info("Cron scheduler stopped")
}

func (s *CronScheduler) HealthCheck(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.cron.Entries()) == 0 && len(s.jobs) > 0 {
		return fmt.Errorf("cron has no entries but jobs are registered")
	}

	for name, entryID := range s.jobs {
		if entry := s.cron.Entry(entryID); entry.ID != entryID {
			return fmt.Errorf("job '%s' not found in cron", name)
		}
	}

	return nil
}

func intervalToSpec(interval time.Duration) string {
	switch {
	case interval <= 0:
		interval = defaultInterval
	case interval < minInterval:
		interval = minInterval
	}
	return "@every " + interval.String()
}

// cronLogger adapts Logger to cron's key/value logger.
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(kvFields(keysAndValues)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.WithError(err).WithFields(kvFields(keysAndValues)).Error(msg)
}

func kvFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
