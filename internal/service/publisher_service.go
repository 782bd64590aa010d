package service

import (
	"context"
	"encoding/json"
	"fmt"

	"notetaking-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// IPublisherService puts integration events on the in-process topic.
type IPublisherService interface {
	Publish(ctx context.Context, evt events.BaseEvent) error
}

type publisherService struct {
	pubSub    message.Publisher
	topicName string
}

func NewPublisherService(pubSub message.Publisher, topicName string) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (p *publisherService) Publish(ctx context.Context, evt events.BaseEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", evt.Type, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", evt.Type)

	return p.pubSub.Publish(p.topicName, msg)
}
