package controller

import (
	ws "notetaking-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IHubController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
}

type hubController struct {
	hub *ws.Hub
}

func NewHubController(hub *ws.Hub) IHubController {
	return &hubController{hub: hub}
}

// RegisterRoutes mounts the integration events socket at /hub. Browsers
// cannot set headers on an upgrade, so the token may come as ?access_token=.
func (c *hubController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Use("/hub", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		return ctx.Next()
	}, auth)

	r.Get("/hub", websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals("user_id").(uint)
		ws.ServeWs(c.hub, conn, userID)
	}))
}
