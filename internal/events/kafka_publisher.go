package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/logger"

	"github.com/segmentio/kafka-go"
)

var jsonMarshal = json.Marshal

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes one message per domain event, keyed by the aggregate
// id so events of one aggregate stay ordered within a partition.
type KafkaPublisher struct {
	writer KafkaWriter
	logger *logger.Logger
}

func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchSize:    1,
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
		logger: log.Named("kafka_publisher"),
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.Event) error {
	value, err := jsonMarshal(event)
	if err != nil {
		return fmt.Errorf("serialize event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("produce %s event: %w", event.Type, err)
	}
	p.logger.Debug("Event published", "type", event.Type, "key", event.Key)
	return nil
}

func (p *KafkaPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		p.logger.Error("Failed to close Kafka writer", "error", err)
		return err
	}
	return nil
}

// NopPublisher drops every event. It is wired when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.Event) error { return nil }
