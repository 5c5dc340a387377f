// Package ddd contains the small building blocks aggregates share for recording
// domain events until the unit of work publishes them after commit.
package ddd

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact about an aggregate that other parts of the system may react to.
type DomainEvent interface {
	EventID() uuid.UUID
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}

// AggregateRoot exposes the events recorded since the aggregate was loaded.
type AggregateRoot interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseEvent carries the envelope fields. Concrete events embed it and add their payload.
type BaseEvent struct {
	ID        uuid.UUID `json:"eventId"`
	Name      string    `json:"eventName"`
	Aggregate string    `json:"aggregateId"`
	At        time.Time `json:"occurredAt"`
}

func NewBaseEvent(name, aggregateID string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New(),
		Name:      name,
		Aggregate: aggregateID,
		At:        time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() uuid.UUID    { return e.ID }
func (e BaseEvent) EventName() string     { return e.Name }
func (e BaseEvent) AggregateID() string   { return e.Aggregate }
func (e BaseEvent) OccurredAt() time.Time { return e.At }

// EventRecorder is embedded by aggregates. It is not safe for concurrent use,
// same as the aggregate that owns it.
type EventRecorder struct {
	events []DomainEvent
}

func (r *EventRecorder) RaiseDomainEvent(event DomainEvent) {
	r.events = append(r.events, event)
}

func (r *EventRecorder) DomainEvents() []DomainEvent {
	return slices.Clone(r.events)
}

func (r *EventRecorder) ClearDomainEvents() {
	r.events = nil
}
