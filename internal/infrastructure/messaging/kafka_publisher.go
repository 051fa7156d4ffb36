package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/entities"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/ports"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/pkg/logger"
)

const (
	EventDashboardRefreshed = "dashboard.refreshed"
	healthCheckTopic        = "__healthcheck"
)

// DashboardEvent is the message value written to the dashboard topic.
type DashboardEvent struct {
	Type        string             `json:"type"`
	PublishedAt time.Time          `json:"published_at"`
	Dashboard   entities.Dashboard `json:"dashboard"`
}

type PublisherConfig struct {
	Broker       string
	Topic        string
	RequiredAcks int16
	MaxRetries   int
}

type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   logger.Logger
	now      func() time.Time
}

var _ ports.DashboardPublisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(cfg PublisherConfig, log logger.Logger) (*KafkaPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.RequiredAcks(cfg.RequiredAcks)
	config.Producer.Retry.Max = cfg.MaxRetries
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer([]string{cfg.Broker}, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return NewKafkaPublisherWithProducer(producer, cfg.Topic, log), nil
}

func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string, log logger.Logger) *KafkaPublisher {
	if log == nil {
		log = logger.Discard()
	}
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   log.WithField("component", "kafka_publisher"),
		now:      time.Now,
	}
}

// Publish writes one event keyed by the location's coordinates so refreshes
// of the same place land on the same partition.
func (p *KafkaPublisher) Publish(ctx context.Context, dashboard entities.Dashboard) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(DashboardEvent{
		Type:        EventDashboardRefreshed,
		PublishedAt: p.now(),
		Dashboard:   dashboard,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(dashboard.Location.Coordinates().String()),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(EventDashboardRefreshed)},
			{Key: []byte("dashboard_id"), Value: []byte(dashboard.ID)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.WithError(err).Errorf("Failed to publish dashboard %s", dashboard.ID)
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.logger.WithFields(map[string]interface{}{
		"dashboard_id": dashboard.ID,
		"partition":    partition,
		"offset":       offset,
	}).Debug("Dashboard published")
	return nil
}

func (p *KafkaPublisher) HealthCheck(ctx context.Context) error {
	if p.producer == nil {
		return errors.New("kafka producer is nil")
	}

	msg := &sarama.ProducerMessage{
		Topic: healthCheckTopic,
		Value: sarama.ByteEncoder([]byte("ping")),
	}

	_, _, err := p.producer.SendMessage(msg)
	return err
}

func (p *KafkaPublisher) Close() error {
	if p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
