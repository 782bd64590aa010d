package entity

import (
	"time"

	"notetaking-be/pkg/events"
)

// Entity holds the audit columns, the soft-delete flag and the buffer of
// domain events raised since the entity was last committed.
type Entity struct {
	CreatedOn      time.Time
	LastModifiedOn time.Time
	IsDeleted      bool

	domainEvents []events.Event
}

// Base exposes the embedded Entity so the change tracker can reach it
// through any aggregate that embeds it.
func (e *Entity) Base() *Entity {
	return e
}

// RaiseDomainEvent queues evt until the next successful commit.
func (e *Entity) RaiseDomainEvent(evt events.Event) {
	e.domainEvents = append(e.domainEvents, evt)
}

// DomainEvents returns the pending events in the order they were raised.
func (e *Entity) DomainEvents() []events.Event {
	out := make([]events.Event, len(e.domainEvents))
	copy(out, e.domainEvents)
	return out
}

func (e *Entity) HasDomainEvents() bool {
	return len(e.domainEvents) > 0
}

func (e *Entity) ClearEvents() {
	e.domainEvents = nil
}
