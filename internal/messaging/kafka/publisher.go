package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher is the seam between the domain services and Kafka. Services
// publish after their transaction commits; a publish failure is returned to
// the caller so the operation reports the event was not delivered.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

type kafkaPublisher struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

func NewPublisher(writer *kafkago.Writer, logger ...*zap.Logger) Publisher {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.L().Named("messaging.kafka")
	}
	return &kafkaPublisher{writer: writer, logger: l}
}

func (p *kafkaPublisher) Publish(ctx context.Context, topic, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event for topic %s: %w", topic, err)
	}

	msg := kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Time:  time.Now().UTC(),
		Headers: []kafkago.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("publish failed",
			zap.String("topic", topic),
			zap.String("key", key),
			zap.Error(err),
		)
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	p.logger.Debug("event published",
		zap.String("topic", topic),
		zap.String("key", key),
	)
	return nil
}
