package handler

import (
	"github.com/gofiber/fiber/v2"

	"grievance-portal/internal/domain"
	"grievance-portal/internal/middleware"
	"grievance-portal/internal/service"
)

// DepartmentHandler serves department staff. A department account sees only
// grievances addressed to its own department name.
type DepartmentHandler struct {
	grievanceService service.GrievanceService
}

func NewDepartmentHandler(grievanceService service.GrievanceService) *DepartmentHandler {
	return &DepartmentHandler{grievanceService: grievanceService}
}

func (h *DepartmentHandler) ListGrievances(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	grievances, err := h.grievanceService.ListByDepartment(c.Context(), user.DisplayName)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"grievances": grievances,
	})
}

func (h *DepartmentHandler) GetGrievance(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	grievance, err := h.grievanceService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	if grievance == nil || grievance.Department != user.DisplayName {
		return middleware.NotFound("Grievance not found")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"grievance": grievance,
	})
}

func (h *DepartmentHandler) Respond(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var input domain.RespondInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.grievanceService.RecordDepartmentResponse(c.Context(), user, id, input); err != nil {
		switch err {
		case service.ErrGrievanceNotFound:
			return middleware.NotFound("Grievance not found")
		case service.ErrWrongDepartment:
			return middleware.Forbidden(err.Error())
		case service.ErrGrievanceClosed:
			return middleware.Conflict(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Response recorded. The grievance is now pending admin review.",
	})
}
