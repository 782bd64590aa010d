package serverutils

import (
	"context"
	"strings"

	"notetaking-be/internal/apperror"
	"notetaking-be/internal/entity"

	"github.com/gofiber/fiber/v2"
)

// TokenVerifier resolves an access token to its active session.
type TokenVerifier func(ctx context.Context, token string) (*entity.Session, error)

// JwtMiddleware accepts "Authorization: Bearer <token>", or an access_token
// query parameter for websocket upgrades, and stores the caller in Locals
// "user_id" and "session_id".
func JwtMiddleware(verify TokenVerifier) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := ""
		if authHeader := ctx.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			token = ctx.Query("access_token")
		}
		if token == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}

		session, err := verify(ctx.UserContext(), token)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, apperror.ErrUnauthorized.Error()))
		}

		ctx.Locals("user_id", session.UserId)
		ctx.Locals("session_id", session.Id)
		return ctx.Next()
	}
}
