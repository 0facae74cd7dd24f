package eventpublisher

import (
	"context"

	eventpublisherv1 "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/event-publisher/v1"
	"github.com/hyyu189/SVM-CLOB-sub000/pkg/config"
	"github.com/hyyu189/SVM-CLOB-sub000/pkg/errors"
	"github.com/hyyu189/SVM-CLOB-sub000/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Publisher broadcasts engine events on the event topic. Events are keyed
// by pair so consumers of a multi-market topic keep per-market ordering.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      logger.Interface
}

var _ eventpublisherv1.EventPublisher = (*Publisher)(nil)

// NewPublisher creates a Kafka publisher for engine events.
func NewPublisher(cfg config.KafkaConfig, log logger.Interface) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.EventTopic,
	})

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// Publish sends one event to the event topic.
func (p *Publisher) Publish(ctx context.Context, event *eventpublisherv1.Event) error {
	msg := kafka.Message{
		Key:   []byte(event.Pair),
		Value: eventpublisherv1.ToBytes(event),
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "eventType", Value: event.Type},
			logger.Field{Key: "sequence", Value: event.Sequence},
		)
		return errors.NewTracer("failed to publish engine event").Wrap(err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
