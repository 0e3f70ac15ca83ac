// Package events defines the domain-event contract shared by Crest services.
package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is implemented by every event a service publishes.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() uuid.UUID
	AggregateType() string
	OccurredAt() time.Time
	Payload() []byte
}

// BaseEvent is the embeddable default implementation of DomainEvent.
type BaseEvent struct {
	id            uuid.UUID
	eventType     string
	aggregateID   uuid.UUID
	aggregateType string
	occurredAt    time.Time
	payload       []byte
}

// NewBaseEvent stamps a fresh event with a generated ID and the current UTC time.
func NewBaseEvent(eventType string, aggregateID uuid.UUID, aggregateType string, payload []byte) BaseEvent {
	return BaseEvent{
		id:            uuid.New(),
		eventType:     eventType,
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		occurredAt:    time.Now().UTC(),
		payload:       payload,
	}
}

// EventID returns the unique event identifier.
func (e BaseEvent) EventID() uuid.UUID { return e.id }

// EventType returns the event's type name.
func (e BaseEvent) EventType() string { return e.eventType }

// AggregateID returns the identifier of the originating aggregate.
func (e BaseEvent) AggregateID() uuid.UUID { return e.aggregateID }

// AggregateType returns the type name of the originating aggregate.
func (e BaseEvent) AggregateType() string { return e.aggregateType }

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time { return e.occurredAt }

// Payload returns the serialized event body.
func (e BaseEvent) Payload() []byte { return e.payload }
