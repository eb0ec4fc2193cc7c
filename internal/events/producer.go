// Package events publishes mutation events to kafka. Publishing is best
// effort: handlers log failures and carry on.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

const Topic = "catalog_events"

type Publisher interface {
	Publish(ctx context.Context, key string, event map[string]any) error
	Close() error
}

type Kafka struct {
	writer *kafka.Writer
}

func NewKafka(address string) *Kafka {
	return &Kafka{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(address),
			Topic:                  Topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (k *Kafka) Publish(ctx context.Context, key string, event map[string]any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	if err := k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
	}); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}

// Noop is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, map[string]any) error { return nil }
func (Noop) Close() error                                          { return nil }
