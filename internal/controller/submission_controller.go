package controller

import (
	"communal-canon-be/internal/dto"
	"communal-canon-be/internal/pkg/serverutils"
	"communal-canon-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISubmissionController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Rescreen(ctx *fiber.Ctx) error
}

type submissionController struct {
	submissionService service.ISubmissionService
}

func NewSubmissionController(submissionService service.ISubmissionService) ISubmissionController {
	return &submissionController{
		submissionService: submissionService,
	}
}

func (c *submissionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/submission/v1")
	h.Get(":id", c.Show)
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Submit)
	h.Post(":id/rescreen", c.Rescreen)
}

func (c *submissionController) Submit(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SubmitRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.submissionService.Submit(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create submission", res))
}

func (c *submissionController) Show(ctx *fiber.Ctx) error {
	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	res, err := c.submissionService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show submission", res))
}

func (c *submissionController) Rescreen(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	res, err := c.submissionService.Rescreen(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success rescreen submission", res))
}
