package bootstrap

import (
	"context"

	"notetaking-be/internal/config"
	"notetaking-be/internal/controller"
	"notetaking-be/internal/pkg/logger"
	"notetaking-be/internal/repository/memory"
	"notetaking-be/internal/repository/unitofwork"
	"notetaking-be/internal/service"
	"notetaking-be/internal/websocket"
	"notetaking-be/pkg/events"
	pktNats "notetaking-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NoteController controller.INoteController
	TagController  controller.ITagController
	AuthController controller.IAuthController
	HubController  controller.IHubController

	// Services
	AuthService service.IAuthService

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	Logger     logger.ILogger
	Dispatcher *events.Dispatcher

	closers []func()
}

// NewContainer wires the application. Redis and NATS are optional; an empty
// URL or an unreachable server only disables that integration.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) *Container {
	c := &Container{Logger: sysLogger}

	// 1. Domain events
	dispatcher := events.NewDispatcher()
	uowFactory := unitofwork.NewRepositoryFactory(db, dispatcher, sysLogger)
	c.Dispatcher = dispatcher

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	service.NewIntegrationEventForwarder(
		service.NewPublisherService(pubSub, cfg.App.IntegrationTopic),
	).Register(dispatcher)

	// 3. Infrastructure
	var relay service.EventRelay
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(ctx, cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		} else {
			relay = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			// Using direct Addr
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if err := rdb.Ping(ctx).Err(); err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to Redis, hub stays local", map[string]interface{}{"error": err.Error()})
			_ = rdb.Close()
			rdb = nil
		} else {
			c.closers = append(c.closers, func() { _ = rdb.Close() })
		}
	}

	// WebSocket Hub
	c.WebSocketHub = websocket.NewHub(rdb, logger.NewIsolatedLogger(cfg.App.HubLogFilePath))
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.App.IntegrationTopic, c.WebSocketHub, relay, sysLogger)

	// 4. Services
	sessionCache := memory.NewSessionCache(cfg.Auth.SessionCacheTTL)
	authService := service.NewAuthService(uowFactory, sessionCache, service.AuthOptions{
		Secret:        cfg.Auth.JWTSecret,
		TokenLifetime: cfg.Auth.TokenLifetime,
	}, sysLogger)
	noteService := service.NewNoteService(uowFactory, sysLogger)
	tagService := service.NewTagService(uowFactory, sysLogger)

	// 5. Controllers
	c.NoteController = controller.NewNoteController(noteService)
	c.TagController = controller.NewTagController(tagService)
	c.AuthController = controller.NewAuthController(authService)
	c.HubController = controller.NewHubController(c.WebSocketHub)
	c.AuthService = authService

	return c
}

// Close releases broker connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
