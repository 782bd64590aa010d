package controller

import (
	"github.com/gofiber/fiber/v2"
)

// idParam reads a positive integer route parameter. Anything else yields 0,
// which request validation rejects.
func idParam(ctx *fiber.Ctx, name string) uint {
	id, err := ctx.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0
	}
	return uint(id)
}

func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return nil
}
