package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDashboard() entities.Dashboard {
	return entities.Dashboard{
		ID: "cycle-42",
		Location: entities.Location{
			Latitude:    51.5074,
			Longitude:   -0.1278,
			CityName:    "London",
			CountryName: "United Kingdom",
		},
		Summary: entities.ForecastSummary{
			Temperature: 11.2,
			WeatherCode: 3,
			Description: "Overcast",
			WindSpeed:   15,
		},
		IsDay:     true,
		FetchedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	t.Run("writes dashboard event", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, nil)
		publishedAt := time.Date(2024, 3, 1, 9, 0, 5, 0, time.UTC)

		producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
			assert.Equal(t, "weather-dashboard-events", msg.Topic)

			key, err := msg.Key.Encode()
			require.NoError(t, err)
			assert.Equal(t, "51.5074,-0.1278", string(key))

			value, err := msg.Value.Encode()
			require.NoError(t, err)

			var event DashboardEvent
			require.NoError(t, json.Unmarshal(value, &event))
			assert.Equal(t, EventDashboardRefreshed, event.Type)
			assert.Equal(t, "cycle-42", event.Dashboard.ID)
			assert.Equal(t, "London", event.Dashboard.Location.CityName)
			assert.True(t, event.PublishedAt.Equal(publishedAt))

			require.Len(t, msg.Headers, 2)
			assert.Equal(t, "cycle-42", string(msg.Headers[1].Value))
			return nil
		})

		publisher := NewKafkaPublisherWithProducer(producer, "weather-dashboard-events", nil)
		publisher.now = func() time.Time { return publishedAt }

		err := publisher.Publish(context.Background(), testDashboard())

		assert.NoError(t, err)
		assert.NoError(t, publisher.Close())
	})

	t.Run("send failure", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, nil)
		producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

		publisher := NewKafkaPublisherWithProducer(producer, "weather-dashboard-events", nil)

		err := publisher.Publish(context.Background(), testDashboard())

		require.Error(t, err)
		assert.True(t, errors.Is(err, sarama.ErrOutOfBrokers))
		assert.Contains(t, err.Error(), "failed to send message")
		assert.NoError(t, publisher.Close())
	})

	t.Run("cancelled context sends nothing", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, nil)
		publisher := NewKafkaPublisherWithProducer(producer, "weather-dashboard-events", nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := publisher.Publish(ctx, testDashboard())

		assert.ErrorIs(t, err, context.Canceled)
		assert.NoError(t, publisher.Close())
	})
}

func TestKafkaPublisher_HealthCheck(t *testing.T) {
	t.Run("nil producer", func(t *testing.T) {
		publisher := &KafkaPublisher{topic: "test-topic"}

		err := publisher.HealthCheck(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "kafka producer is nil")
	})

	t.Run("ping succeeds", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, nil)
		producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
			assert.Equal(t, healthCheckTopic, msg.Topic)
			return nil
		})

		publisher := NewKafkaPublisherWithProducer(producer, "test-topic", nil)

		assert.NoError(t, publisher.HealthCheck(context.Background()))
		assert.NoError(t, publisher.Close())
	})

	t.Run("ping fails", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, nil)
		producer.ExpectSendMessageAndFail(sarama.ErrNotConnected)

		publisher := NewKafkaPublisherWithProducer(producer, "test-topic", nil)

		assert.ErrorIs(t, publisher.HealthCheck(context.Background()), sarama.ErrNotConnected)
		assert.NoError(t, publisher.Close())
	})
}

func TestKafkaPublisher_Close_NilProducer(t *testing.T) {
	publisher := &KafkaPublisher{topic: "test-topic"}
	assert.NoError(t, publisher.Close())
}

func TestNewKafkaPublisher_UnreachableBroker(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	publisher, err := NewKafkaPublisher(PublisherConfig{
		Broker:       "127.0.0.1:1",
		Topic:        "test-topic",
		RequiredAcks: 1,
		MaxRetries:   0,
	}, nil)

	assert.Error(t, err)
	assert.Nil(t, publisher)
}
