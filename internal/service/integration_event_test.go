package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"notetaking-be/internal/domainevent"
	"notetaking-be/internal/dto"
	"notetaking-be/internal/pkg/logger"
	"notetaking-be/internal/pkg/testdb"
	"notetaking-be/internal/repository/unitofwork"
	"notetaking-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHub struct {
	mu     sync.Mutex
	frames [][]byte
}

func (h *fakeHub) Broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frames = append(h.frames, data)
}

func (h *fakeHub) Frames() [][]byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([][]byte(nil), h.frames...)
}

type fakeRelay struct {
	mu    sync.Mutex
	types []string
	err   error
}

func (r *fakeRelay) Publish(ctx context.Context, evt events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, evt.EventType())
	return r.err
}

func (r *fakeRelay) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.types...)
}

func TestIntegrationEventsReachHubAndRelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	hub := &fakeHub{}
	relay := &fakeRelay{}
	log := logger.NewNopLogger()
	require.NoError(t, NewConsumerService(pubSub, "integration_events", hub, relay, log).Consume(ctx))

	dispatcher := events.NewDispatcher()
	NewIntegrationEventForwarder(NewPublisherService(pubSub, "integration_events")).Register(dispatcher)

	factory := unitofwork.NewRepositoryFactory(testdb.New(t), dispatcher, log)
	tags := NewTagService(factory, log)
	_, err := tags.Save(ctx, &dto.SaveTagRequest{Tag: &dto.TagDto{TagId: idPtr(0), Name: "Angular"}})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(hub.Frames()) == 1 }, 2*time.Second, 10*time.Millisecond)

	var envelope events.BaseEvent
	require.NoError(t, json.Unmarshal(hub.Frames()[0], &envelope))
	assert.Equal(t, domainevent.TagSavedType, envelope.Type)
	assert.Equal(t, "angular", envelope.Data["slug"])
	assert.EqualValues(t, 1, envelope.Data["tag_id"])

	require.Eventually(t, func() bool { return len(relay.Types()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{domainevent.TagSavedType}, relay.Types())
}

func TestConsumerKeepsGoingWhenRelayFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	hub := &fakeHub{}
	relay := &fakeRelay{err: errors.New("nats down")}
	require.NoError(t, NewConsumerService(pubSub, "topic", hub, relay, logger.NewNopLogger()).Consume(ctx))

	publisher := NewPublisherService(pubSub, "topic")
	for _, eventType := range []string{domainevent.NoteSavedType, domainevent.NoteRemovedType} {
		require.NoError(t, publisher.Publish(ctx, events.BaseEvent{Type: eventType, OccurredAt: time.Now()}))
	}

	require.Eventually(t, func() bool { return len(relay.Types()) == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Len(t, hub.Frames(), 2)
}
