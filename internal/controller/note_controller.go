package controller

import (
	"notetaking-be/internal/dto"
	"notetaking-be/internal/pkg/serverutils"
	"notetaking-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Save(ctx *fiber.Ctx) error
	Remove(ctx *fiber.Ctx) error
	GetById(ctx *fiber.Ctx) error
	GetBySlug(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/notes")
	h.Use(auth)
	h.Post("", c.Save)
	h.Get("", c.List)
	h.Get("slug/:slug", c.GetBySlug)
	h.Get(":id", c.GetById)
	h.Delete(":id", c.Remove)
}

func (c *noteController) Save(ctx *fiber.Ctx) error {
	var req dto.SaveNoteRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.noteService.Save(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save note", res))
}

func (c *noteController) Remove(ctx *fiber.Ctx) error {
	err := c.noteService.Remove(ctx.UserContext(), &dto.RemoveNoteRequest{NoteId: idParam(ctx, "id")})
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success remove note", nil))
}

func (c *noteController) GetById(ctx *fiber.Ctx) error {
	res, err := c.noteService.GetById(ctx.UserContext(), &dto.GetNoteByIdRequest{NoteId: idParam(ctx, "id")})
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show note", res))
}

func (c *noteController) GetBySlug(ctx *fiber.Ctx) error {
	res, err := c.noteService.GetBySlug(ctx.UserContext(), &dto.GetNoteBySlugRequest{Slug: ctx.Params("slug")})
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show note", res))
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	res, err := c.noteService.List(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list notes", res))
}
