package controller

import (
	"notetaking-be/internal/dto"
	"notetaking-be/internal/pkg/serverutils"
	"notetaking-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITagController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Save(ctx *fiber.Ctx) error
	Remove(ctx *fiber.Ctx) error
	GetById(ctx *fiber.Ctx) error
	GetBySlug(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type tagController struct {
	tagService service.ITagService
}

func NewTagController(tagService service.ITagService) ITagController {
	return &tagController{
		tagService: tagService,
	}
}

func (c *tagController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/tags")
	h.Use(auth)
	h.Post("", c.Save)
	h.Get("", c.List)
	h.Get("slug/:slug", c.GetBySlug)
	h.Get(":id", c.GetById)
	h.Delete(":id", c.Remove)
}

func (c *tagController) Save(ctx *fiber.Ctx) error {
	var req dto.SaveTagRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.tagService.Save(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save tag", res))
}

func (c *tagController) Remove(ctx *fiber.Ctx) error {
	err := c.tagService.Remove(ctx.UserContext(), &dto.RemoveTagRequest{TagId: idParam(ctx, "id")})
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success remove tag", nil))
}

func (c *tagController) GetById(ctx *fiber.Ctx) error {
	res, err := c.tagService.GetById(ctx.UserContext(), &dto.GetTagByIdRequest{TagId: idParam(ctx, "id")})
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show tag", res))
}

func (c *tagController) GetBySlug(ctx *fiber.Ctx) error {
	res, err := c.tagService.GetBySlug(ctx.UserContext(), &dto.GetTagBySlugRequest{Slug: ctx.Params("slug")})
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show tag", res))
}

func (c *tagController) List(ctx *fiber.Ctx) error {
	res, err := c.tagService.List(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list tags", res))
}
