package handler

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"grievance-portal/internal/domain"
	"grievance-portal/internal/middleware"
	"grievance-portal/internal/service"
)

type AdminHandler struct {
	grievanceService service.GrievanceService
	deptService      service.DepartmentService
	userService      service.UserService
	dashboardService service.DashboardService
}

func NewAdminHandler(grievanceService service.GrievanceService, deptService service.DepartmentService, userService service.UserService, dashboardService service.DashboardService) *AdminHandler {
	return &AdminHandler{
		grievanceService: grievanceService,
		deptService:      deptService,
		userService:      userService,
		dashboardService: dashboardService,
	}
}

// ListGrievances supports ?filter=all|open|resolved plus ?department= and
// ?student= narrowing. Filters are mutually exclusive, most specific wins.
func (h *AdminHandler) ListGrievances(c *fiber.Ctx) error {
	if studentParam := c.Query("student"); studentParam != "" {
		studentID, err := uuid.Parse(studentParam)
		if err != nil {
			return middleware.BadRequest("Invalid student id")
		}
		grievances, err := h.grievanceService.ListByStudent(c.Context(), studentID)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"grievances": grievances})
	}

	if department := c.Query("department"); department != "" {
		grievances, err := h.grievanceService.ListByDepartment(c.Context(), department)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"grievances": grievances})
	}

	var (
		grievances []domain.Grievance
		err        error
	)
	switch c.Query("filter", "all") {
	case "open":
		grievances, err = h.grievanceService.ListOpen(c.Context())
	case "resolved":
		grievances, err = h.grievanceService.ListResolved(c.Context())
	case "all":
		grievances, err = h.grievanceService.ListAll(c.Context())
	default:
		return middleware.BadRequest("Unknown filter, expected all, open, or resolved")
	}
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"grievances": grievances})
}

func (h *AdminHandler) GetGrievance(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	grievance, err := h.grievanceService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	if grievance == nil {
		return middleware.NotFound("Grievance not found")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"grievance": grievance})
}

func (h *AdminHandler) TransitionStatus(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var input domain.TransitionStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.grievanceService.TransitionStatus(c.Context(), actorID, id, input); err != nil {
		switch err {
		case service.ErrInvalidStatus:
			return middleware.BadRequest(err.Error())
		case service.ErrGrievanceNotFound:
			return middleware.NotFound("Grievance not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Status updated",
	})
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetStats(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"stats": stats})
}

func (h *AdminHandler) ExportGrievancesCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.dashboardService.ExportCSV(c.Context(), &buf); err != nil {
		return err
	}

	filename := fmt.Sprintf("grievances-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}

// Departments

func (h *AdminHandler) ListDepartments(c *fiber.Ctx) error {
	departments, err := h.deptService.List(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"departments": departments})
}

func (h *AdminHandler) CreateDepartment(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)

	var input domain.CreateDepartmentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	department, err := h.deptService.Create(c.Context(), actorID, input)
	if err != nil {
		if err == service.ErrDepartmentExists {
			return middleware.Conflict(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"department": department})
}

func (h *AdminHandler) UpdateDepartment(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdateDepartmentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	department, err := h.deptService.Update(c.Context(), actorID, id, input)
	if err != nil {
		switch err {
		case service.ErrDepartmentNotFound:
			return middleware.NotFound("Department not found")
		case service.ErrDepartmentExists:
			return middleware.Conflict(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"department": department})
}

func (h *AdminHandler) DeleteDepartment(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.deptService.Delete(c.Context(), actorID, id); err != nil {
		switch err {
		case service.ErrDepartmentNotFound:
			return middleware.NotFound("Department not found")
		case service.ErrDepartmentInUse:
			return middleware.Conflict(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Department deleted"})
}

// Users

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	if roleParam := c.Query("role"); roleParam != "" {
		role := domain.UserRole(roleParam)
		if !role.IsValid() {
			return middleware.BadRequest("Unknown role")
		}
		users, err := h.userService.ListByRole(c.Context(), role)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"users": users})
	}

	users, err := h.userService.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"users": users})
}

func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.GetByID(c.Context(), id)
	if err != nil {
		if err == service.ErrUserNotFound {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"user": user})
}

func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	user, err := h.userService.Update(c.Context(), actorID, id, input)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			return middleware.NotFound("User not found")
		case service.ErrEmailExists:
			return middleware.Conflict(err.Error())
		case service.ErrEmailNotAllowed:
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"user": user})
}

func (h *AdminHandler) ResetUserPassword(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var input domain.ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.userService.ResetPassword(c.Context(), actorID, id, input); err != nil {
		if err == service.ErrUserNotFound {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Password reset"})
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if id == actorID {
		return middleware.BadRequest("You cannot delete your own account")
	}

	if err := h.userService.Delete(c.Context(), actorID, id); err != nil {
		switch err {
		case service.ErrUserNotFound:
			return middleware.NotFound("User not found")
		case service.ErrUserHasGrievances:
			return middleware.Conflict(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "User deleted"})
}
