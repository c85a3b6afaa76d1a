package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"sabhyata/internal/bookings"
	"sabhyata/pkg/logger"
)

// Producer publishes booking lifecycle events to Kafka. Downstream consumers
// (email, analytics, waitlists) hang off the topic; the booking flow itself
// never depends on them.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewProducer connects a synchronous Kafka producer. Sync is deliberate: one
// event per booking transition, and losing them silently is worse than the
// small latency of waiting for the ack.
func NewProducer(brokers []string, topic string) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &Producer{
		producer: producer,
		topic:    topic,
		log:      logger.GetDefault(),
	}, nil
}

// PublishBookingEvent implements bookings.EventPublisher. Events for the same
// booking share a partition key so consumers see its transitions in order.
func (p *Producer) PublishBookingEvent(ctx context.Context, event bookings.BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.BookingID),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}

	p.log.InfoWithContext(ctx, "Booking event published", map[string]interface{}{
		"type":      event.Type,
		"reference": event.Reference,
		"partition": partition,
		"offset":    offset,
	})

	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}

// NopPublisher drops events. Used when Kafka is disabled in configuration.
type NopPublisher struct{}

func (NopPublisher) PublishBookingEvent(ctx context.Context, event bookings.BookingEvent) error {
	return nil
}
