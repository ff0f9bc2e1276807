package handler

import (
	"github.com/gofiber/fiber/v2"

	"grievance-portal/internal/service"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) Recent(c *fiber.Ctx) error {
	params := paginationFromQuery(c)

	entries, err := h.auditService.Recent(c.Context(), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(entries)
}
