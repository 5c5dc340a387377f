// Package events publishes committed domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"movers/internal/core/ports"
	"movers/internal/pkg/ddd"
	"movers/internal/pkg/log"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var _ ports.EventPublisher = (*KafkaPublisher)(nil)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher routes each event to a topic named after its aggregate
// ("mover.registered" goes to "<prefix>mover") and keys it by aggregate id,
// so events of one aggregate stay ordered within a partition.
type KafkaPublisher struct {
	writer      messageWriter
	topicPrefix string
	logger      *log.Zap
}

func NewKafkaPublisher(brokers []string, topicPrefix string, logger *log.Zap) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka publisher requires at least one broker")
	}
	return newKafkaPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		RequiredAcks:           kafka.RequireAll,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}, topicPrefix, logger), nil
}

func newKafkaPublisher(writer messageWriter, topicPrefix string, logger *log.Zap) *KafkaPublisher {
	if logger == nil {
		logger = log.NewNop()
	}
	return &KafkaPublisher{writer: writer, topicPrefix: topicPrefix, logger: logger.Named("kafka")}
}

func (p *KafkaPublisher) Publish(ctx context.Context, events ...ddd.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to encode event %s | %w", event.EventName(), err)
		}
		msgs = append(msgs, kafka.Message{
			Topic: p.topicFor(event.EventName()),
			Key:   []byte(event.AggregateID()),
			Value: payload,
			Time:  event.OccurredAt(),
			Headers: []kafka.Header{
				{Key: "event-id", Value: []byte(event.EventID().String())},
				{Key: "event-name", Value: []byte(event.EventName())},
			},
		})
	}

	start := time.Now()
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("failed to write %d events | %w", len(msgs), err)
	}
	p.logger.Debug("events published", zap.Int("count", len(msgs)), zap.Duration("took", time.Since(start)))

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func (p *KafkaPublisher) topicFor(eventName string) string {
	aggregate, _, _ := strings.Cut(eventName, ".")
	return p.topicPrefix + aggregate
}
