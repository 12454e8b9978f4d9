package controller

import (
	"communal-canon-be/internal/dto"
	"communal-canon-be/internal/pkg/serverutils"
	"communal-canon-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IVotingController interface {
	RegisterRoutes(r fiber.Router)
	ListActive(ctx *fiber.Ctx) error
	CastVote(ctx *fiber.Ctx) error
	CloseSession(ctx *fiber.Ctx) error
}

type votingController struct {
	votingService   service.IVotingService
	pipelineService service.IPipelineService
}

func NewVotingController(votingService service.IVotingService, pipelineService service.IPipelineService) IVotingController {
	return &votingController{
		votingService:   votingService,
		pipelineService: pipelineService,
	}
}

func (c *votingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/voting/v1")
	h.Get("active", c.ListActive)
	h.Use(serverutils.JwtMiddleware)
	h.Post(":session_id/vote", c.CastVote)
	h.Post(":session_id/close", c.CloseSession)
}

func (c *votingController) ListActive(ctx *fiber.Ctx) error {
	res, err := c.votingService.ListActiveSessions(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list active sessions", res))
}

func (c *votingController) CastVote(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	sessionIdParam := ctx.Params("session_id")
	sessionId, _ := uuid.Parse(sessionIdParam)

	var req dto.CastVoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.SessionId = sessionId

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.votingService.CastVote(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success cast vote", res))
}

// CloseSession closes the session and resolves the verdict onto its
// subject in one call, so the caller never sees a half-resolved state.
func (c *votingController) CloseSession(ctx *fiber.Ctx) error {
	sessionIdParam := ctx.Params("session_id")
	sessionId, _ := uuid.Parse(sessionIdParam)

	res, err := c.pipelineService.ResolveSession(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success close session", res))
}
