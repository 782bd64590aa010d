package events

import (
	"context"
	"fmt"
	"sync"
)

// Handler processes a single event. A returned error fails the publish call.
type Handler func(ctx context.Context, event Event) error

// Publisher delivers events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// SubscriberError reports a subscriber that failed while an event was being published.
type SubscriberError struct {
	EventType string
	Err       error
}

func (e *SubscriberError) Error() string {
	return fmt.Sprintf("subscriber failed for %s: %v", e.EventType, e.Err)
}

func (e *SubscriberError) Unwrap() error {
	return e.Err
}

// Dispatcher is a synchronous in-process publisher. Handlers run on the
// caller's goroutine in registration order and the first failure stops delivery.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]Handler),
	}
}

// Subscribe registers handler for eventType.
func (d *Dispatcher) Subscribe(eventType string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
}

func (d *Dispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	handlers := make([]Handler, len(d.handlers[event.EventType()]))
	copy(handlers, d.handlers[event.EventType()])
	d.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			return &SubscriberError{EventType: event.EventType(), Err: err}
		}
	}
	return nil
}
