package controller

import (
	"notetaking-be/internal/dto"
	"notetaking-be/internal/pkg/serverutils"
	"notetaking-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Token(ctx *fiber.Ctx) error
	SignOut(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/users")
	h.Post("/token", c.Token)
	h.Post("/signout", auth, c.SignOut)
}

func (c *authController) Token(ctx *fiber.Ctx) error {
	var req dto.AuthenticateRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Authenticate(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Authenticated", res))
}

// SignOut ends the caller's own session.
func (c *authController) SignOut(ctx *fiber.Ctx) error {
	sessionId, _ := ctx.Locals("session_id").(uuid.UUID)

	if err := c.service.SignOut(ctx.UserContext(), &dto.SignOutRequest{SessionId: sessionId}); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Signed out", nil))
}
