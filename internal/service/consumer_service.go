package service

import (
	"context"
	"encoding/json"

	"notetaking-be/internal/pkg/logger"
	"notetaking-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// Broadcaster pushes raw frames to connected websocket clients.
type Broadcaster interface {
	Broadcast(data []byte)
}

// EventRelay forwards events to another bus.
type EventRelay interface {
	Publish(ctx context.Context, event events.Event) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	hub        Broadcaster
	relay      EventRelay
	logger     logger.ILogger
}

// NewConsumerService builds the integration event consumer. relay may be
// nil when no external bus is configured.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	hub Broadcaster,
	relay EventRelay,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		hub:        hub,
		relay:      relay,
		logger:     logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// integration events are best effort past this point; always ack
	defer msg.Ack()

	var evt events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal integration event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	cs.hub.Broadcast(msg.Payload)

	if cs.relay != nil {
		if err := cs.relay.Publish(ctx, evt); err != nil {
			cs.logger.Warn("CONSUMER", "Failed to relay integration event", map[string]interface{}{
				"event": evt.Type,
				"error": err.Error(),
			})
			return
		}
	}

	cs.logger.Debug("CONSUMER", "Integration event delivered", map[string]interface{}{
		"event": evt.Type,
	})
}
