package service

import (
	"context"

	"notetaking-be/internal/domainevent"
	"notetaking-be/pkg/events"
)

// IntegrationEventForwarder turns committed domain events into integration
// events. It runs as an ordinary subscriber, so a failed hand-off fails
// the request that raised the event.
type IntegrationEventForwarder struct {
	publisher IPublisherService
}

func NewIntegrationEventForwarder(publisher IPublisherService) *IntegrationEventForwarder {
	return &IntegrationEventForwarder{publisher: publisher}
}

// Register subscribes the forwarder to every domain event type.
func (f *IntegrationEventForwarder) Register(dispatcher *events.Dispatcher) {
	for _, eventType := range domainevent.Types() {
		dispatcher.Subscribe(eventType, f.Handle)
	}
}

func (f *IntegrationEventForwarder) Handle(ctx context.Context, evt events.Event) error {
	return f.publisher.Publish(ctx, events.Envelope(evt))
}
