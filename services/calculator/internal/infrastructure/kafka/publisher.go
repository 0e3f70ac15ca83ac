// Package kafka adapts the shared producer to the event publisher port.
package kafka

import (
	"context"
	"fmt"

	"github.com/crestbank/crest/pkg/events"
	pkgkafka "github.com/crestbank/crest/pkg/kafka"
	"github.com/crestbank/crest/services/calculator/internal/domain/port"
)

// Compile-time interface check.
var _ port.EventPublisher = (*Publisher)(nil)

// Publisher emits domain events to Kafka, keyed by aggregate id so events
// for one calculation stay ordered within a partition.
type Publisher struct {
	producer *pkgkafka.Producer
}

// NewPublisher wraps a shared producer.
func NewPublisher(producer *pkgkafka.Producer) *Publisher {
	return &Publisher{producer: producer}
}

// Publish writes one domain event to the topic.
func (p *Publisher) Publish(ctx context.Context, topic string, event events.DomainEvent) error {
	msg := pkgkafka.Message{
		Key:   []byte(event.AggregateID().String()),
		Value: event.Payload(),
		Headers: map[string]string{
			"event_id":       event.EventID().String(),
			"event_type":     event.EventType(),
			"aggregate_type": event.AggregateType(),
		},
	}
	if err := p.producer.Publish(ctx, topic, msg); err != nil {
		return fmt.Errorf("publish %s to %s: %w", event.EventType(), topic, err)
	}
	return nil
}

// Close flushes and closes the underlying producer.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
