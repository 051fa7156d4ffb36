package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthChecker_CheckAll(t *testing.T) {
	t.Run("all probes pass", func(t *testing.T) {
		var order []string
		checker := NewHealthChecker([]Probe{
			{Name: "Open-Meteo API", Check: func(ctx context.Context) error { order = append(order, "api"); return nil }},
			{Name: "Kafka", Check: func(ctx context.Context) error { order = append(order, "kafka"); return nil }},
		}, time.Millisecond, 3, nil)

		require.NoError(t, checker.CheckAll(context.Background()))
		assert.Equal(t, []string{"api", "kafka"}, order)
	})

	t.Run("passes after retry", func(t *testing.T) {
		attempts := 0
		checker := NewHealthChecker([]Probe{{
			Name: "Open-Meteo API",
			Check: func(ctx context.Context) error {
				attempts++
				if attempts < 3 {
					return errors.New("connection refused")
				}
				return nil
			},
		}}, time.Millisecond, 3, nil)

		assert.NoError(t, checker.CheckAll(context.Background()))
		assert.Equal(t, 3, attempts)
	})

	t.Run("fails after max retries", func(t *testing.T) {
		attempts := 0
		kafkaChecked := false
		checker := NewHealthChecker([]Probe{
			{Name: "Open-Meteo API", Check: func(ctx context.Context) error { attempts++; return errors.New("503") }},
			{Name: "Kafka", Check: func(ctx context.Context) error { kafkaChecked = true; return nil }},
		}, time.Millisecond, 2, nil)

		err := checker.CheckAll(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Open-Meteo API health check failed")
		assert.Contains(t, err.Error(), "all 2 attempts failed")
		assert.Equal(t, 2, attempts)
		assert.False(t, kafkaChecked)
	})

	t.Run("probe timeout applied", func(t *testing.T) {
		checker := NewHealthChecker([]Probe{{
			Name:    "Kafka",
			Timeout: 10 * time.Millisecond,
			Check: func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
		}}, time.Millisecond, 1, nil)

		err := checker.CheckAll(context.Background())
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("cancelled context stops retries", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		attempts := 0
		checker := NewHealthChecker([]Probe{{
			Name: "Open-Meteo API",
			Check: func(ctx context.Context) error {
				attempts++
				cancel()
				return errors.New("unreachable")
			},
		}}, time.Hour, 5, nil)

		err := checker.CheckAll(ctx)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})
}
