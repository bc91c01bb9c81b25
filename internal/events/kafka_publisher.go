package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ayushsoni77/Micro-Mart-sub000/internal/config"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// Publisher delivers outbox rows to downstream consumers
type Publisher interface {
	Publish(ctx context.Context, event OutboxEvent) error
	Close() error
}

// KafkaPublisher implements Publisher using Kafka
type KafkaPublisher struct {
	producer sarama.SyncProducer
	logger   *zap.Logger
	config   *config.Config
}

// NewKafkaPublisher creates a new Kafka publisher
func NewKafkaPublisher(cfg *config.Config, logger *zap.Logger) (Publisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.ClientID = cfg.KafkaClientID
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Retry.Max = cfg.KafkaRetries
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	// Parse acks
	switch cfg.KafkaAcks {
	case "0":
		saramaConfig.Producer.RequiredAcks = sarama.NoResponse
	case "1":
		saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	default:
		saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	}

	producer, err := sarama.NewSyncProducer(cfg.KafkaBrokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &KafkaPublisher{
		producer: producer,
		logger:   logger,
		config:   cfg,
	}, nil
}

// Publish sends one outbox row to the orders topic with retries and
// exponential backoff. The event id header is what consumers dedupe on.
func (p *KafkaPublisher) Publish(ctx context.Context, event OutboxEvent) error {
	message := &sarama.ProducerMessage{
		Topic: p.config.KafkaTopicOrders,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(event.Payload),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("event-type"),
				Value: []byte(event.EventType),
			},
			{
				Key:   []byte("event-id"),
				Value: []byte(event.ID),
			},
			{
				Key:   []byte("timestamp"),
				Value: []byte(time.Now().UTC().Format(time.RFC3339)),
			},
		},
	}

	maxRetries := 3
	baseDelay := 100 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		partition, offset, err := p.producer.SendMessage(message)
		if err == nil {
			p.logger.Info("Event published to Kafka",
				zap.String("topic", p.config.KafkaTopicOrders),
				zap.Int32("partition", partition),
				zap.Int64("offset", offset),
				zap.String("event_type", event.EventType),
				zap.String("event_id", event.ID),
				zap.Int("attempt", attempt+1),
			)
			return nil
		}

		lastErr = err
		p.logger.Warn("Failed to publish event to Kafka, retrying",
			zap.String("topic", p.config.KafkaTopicOrders),
			zap.String("event_id", event.ID),
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries),
		)

		// Exponential backoff before retry
		if attempt < maxRetries-1 {
			delay := baseDelay * time.Duration(1<<uint(attempt)) // 100ms, 200ms, 400ms
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled during backoff: %w", ctx.Err())
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("failed to publish event after %d attempts: %w", maxRetries, lastErr)
}

// Close closes the Kafka producer
func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
