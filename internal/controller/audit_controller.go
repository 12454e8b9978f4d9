package controller

import (
	"communal-canon-be/internal/dto"
	"communal-canon-be/internal/pkg/serverutils"
	"communal-canon-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuditController interface {
	RegisterRoutes(r fiber.Router)
	GetTrail(ctx *fiber.Ctx) error
}

type auditController struct {
	auditService service.IAuditService
}

func NewAuditController(auditService service.IAuditService) IAuditController {
	return &auditController{
		auditService: auditService,
	}
}

func (c *auditController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/audit/v1")
	h.Get("", c.GetTrail)
}

func (c *auditController) GetTrail(ctx *fiber.Ctx) error {
	var req dto.AuditTrailRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.auditService.GetAuditTrail(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get audit trail", res))
}
