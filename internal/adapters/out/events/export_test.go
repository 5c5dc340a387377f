package events

import "movers/internal/pkg/log"

func NewKafkaPublisherWithWriter(writer messageWriter, topicPrefix string, logger *log.Zap) *KafkaPublisher {
	return newKafkaPublisher(writer, topicPrefix, logger)
}
