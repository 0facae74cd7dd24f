package orderreader

import (
	"context"

	orderreaderv1 "github.com/hyyu189/SVM-CLOB-sub000/internal/domain/order-reader/v1"
	"github.com/hyyu189/SVM-CLOB-sub000/pkg/config"
	"github.com/hyyu189/SVM-CLOB-sub000/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Reader consumes order commands from the order topic. The engine drives
// offsets explicitly so it can resume from the offset recorded in the last
// book snapshot.
type Reader struct {
	kafkaReader *kafka.Reader
	logger      logger.Interface
}

var _ orderreaderv1.OrderReader = Reader{}

// NewReader creates a Kafka reader over the order command topic.
func NewReader(cfg config.KafkaConfig, log logger.Interface) Reader {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.OrderTopic,
		Partition:   0,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})

	return Reader{
		kafkaReader: kafkaReader,
		logger:      log,
	}
}

func (r Reader) logError(err error, operation string) {
	r.logger.Error(err,
		logger.Field{Key: "operation", Value: operation},
	)
}

// SetOffset sets the offset for the Kafka reader.
func (r Reader) SetOffset(offset int64) error {
	if err := r.kafkaReader.SetOffset(offset); err != nil {
		r.logError(err, "SetOffset")
		return err
	}
	return nil
}

// ReadMessage reads a message from the order topic and parses it as a
// Command, stamping the command with its stream offset.
func (r Reader) ReadMessage(ctx context.Context) (kafka.Message, *orderreaderv1.Command, error) {
	msg, err := r.kafkaReader.ReadMessage(ctx)
	if err != nil {
		r.logError(err, "ReadMessage")
		return kafka.Message{}, nil, err
	}

	cmd, err := orderreaderv1.FromBytes(msg.Value)
	if err != nil {
		r.logError(err, "UnmarshalCommand")
		return msg, nil, err
	}
	cmd.Offset = msg.Offset

	r.logger.Debug("ReadMessage",
		logger.Field{Key: "type", Value: cmd.Type},
		logger.Field{Key: "offset", Value: cmd.Offset},
	)

	return msg, cmd, nil
}

// Close properly closes the Kafka reader.
func (r Reader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logError(err, "Close")
		return err
	}
	return nil
}

// CommitMessages commits the messages after processing. With explicit
// partition offsets there is no consumer group to commit to, so this is a
// no-op kept for interface symmetry with group-based deployments.
func (r Reader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	return nil
}
