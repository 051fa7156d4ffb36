package scheduler

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronScheduler_Schedule(t *testing.T) {
	t.Run("runs task on interval", func(t *testing.T) {
		scheduler := NewCronScheduler(time.Second, nil)
		defer scheduler.Stop()

		done := make(chan struct{}, 1)
		var runs int32

		err := scheduler.Schedule(context.Background(), "refresh", time.Second, func(ctx context.Context) error {
			if atomic.AddInt32(&runs, 1) == 1 {
				done <- struct{}{}
			}
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return nil
		})
		require.NoError(t, err)

		select {
		case <-done:
		case <-time.After(3 * time.Second):
			t.Fatal("task was not executed")
		}
	})

	t.Run("duplicate name", func(t *testing.T) {
		scheduler := NewCronScheduler(time.Second, nil)
		defer scheduler.Stop()

		task := func(ctx context.Context) error { return nil }

		require.NoError(t, scheduler.Schedule(context.Background(), "refresh", time.Minute, task))
		err := scheduler.Schedule(context.Background(), "refresh", time.Minute, task)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("failed task is logged", func(t *testing.T) {
		var buf bytes.Buffer
		scheduler := NewCronScheduler(time.Second, logger.NewWithWriter("debug", &buf))

		done := make(chan struct{}, 1)
		err := scheduler.Schedule(context.Background(), "broken", time.Second, func(ctx context.Context) error {
			select {
			case done <- struct{}{}:
			default:
			}
			return errors.New("upstream unavailable")
		})
		require.NoError(t, err)

		select {
		case <-done:
		case <-time.After(3 * time.Second):
			t.Fatal("task was not executed")
		}

		scheduler.Stop()
		assert.Contains(t, buf.String(), "upstream unavailable")
	})

	t.Run("stop cancels running task", func(t *testing.T) {
		scheduler := NewCronScheduler(time.Minute, nil)

		started := make(chan struct{})
		finished := make(chan error, 1)
		var once sync.Once
		err := scheduler.Schedule(context.Background(), "slow", time.Second, func(ctx context.Context) error {
			once.Do(func() { close(started) })
			<-ctx.Done()
			select {
			case finished <- ctx.Err():
			default:
			}
			return ctx.Err()
		})
		require.NoError(t, err)

		select {
		case <-started:
		case <-time.After(3 * time.Second):
			t.Fatal("task was not executed")
		}

		scheduler.Stop()

		select {
		case err := <-finished:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("task was not cancelled")
		}
	})
}

func TestCronScheduler_HealthCheck(t *testing.T) {
	scheduler := NewCronScheduler(time.Second, nil)
	defer scheduler.Stop()

	assert.NoError(t, scheduler.HealthCheck(context.Background()))

	require.NoError(t, scheduler.Schedule(context.Background(), "refresh", time.Hour, func(ctx context.Context) error { return nil }))
	assert.NoError(t, scheduler.HealthCheck(context.Background()))
}

func TestIntervalToSpec(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		expected string
	}{
		{"zero uses default", 0, "@every 15m0s"},
		{"negative uses default", -time.Second, "@every 15m0s"},
		{"sub-second clamps", 200 * time.Millisecond, "@every 1s"},
		{"seconds", 30 * time.Second, "@every 30s"},
		{"non-divisor minutes", 90 * time.Second, "@every 1m30s"},
		{"hours", 2 * time.Hour, "@every 2h0m0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, intervalToSpec(tt.interval))
		})
	}
}
