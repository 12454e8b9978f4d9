package controller

import (
	"communal-canon-be/internal/dto"
	"communal-canon-be/internal/pkg/serverutils"
	"communal-canon-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRevisionController interface {
	RegisterRoutes(r fiber.Router)
	Propose(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	RecordDiscussion(ctx *fiber.Ctx) error
	StartVote(ctx *fiber.Ctx) error
	Withdraw(ctx *fiber.Ctx) error
}

type revisionController struct {
	revisionService service.IRevisionService
}

func NewRevisionController(revisionService service.IRevisionService) IRevisionController {
	return &revisionController{
		revisionService: revisionService,
	}
}

func (c *revisionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/revision/v1")
	h.Get(":id", c.Show)
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Propose)
	h.Post(":id/discussion", c.RecordDiscussion)
	h.Post(":id/start-vote", c.StartVote)
	h.Post(":id/withdraw", c.Withdraw)
}

func (c *revisionController) Propose(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.ProposeRevisionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.revisionService.Propose(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success propose revision", res))
}

func (c *revisionController) Show(ctx *fiber.Ctx) error {
	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	res, err := c.revisionService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show revision proposal", res))
}

func (c *revisionController) RecordDiscussion(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	var req dto.RecordDiscussionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	if err := c.revisionService.RecordDiscussion(ctx.Context(), userId, id, req.Content); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success record discussion entry", nil))
}

func (c *revisionController) StartVote(ctx *fiber.Ctx) error {
	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	proposal, err := c.revisionService.StartVote(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success start revision vote", dto.ProposeRevisionResponse{
		Id:     proposal.Id,
		Status: string(proposal.Status),
	}))
}

func (c *revisionController) Withdraw(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	res, err := c.revisionService.Withdraw(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success withdraw revision proposal", res))
}
