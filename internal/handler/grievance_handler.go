package handler

import (
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"grievance-portal/internal/config"
	"grievance-portal/internal/domain"
	"grievance-portal/internal/middleware"
	"grievance-portal/internal/service"
)

// GrievanceHandler serves the student-facing grievance routes plus the shared
// department directory.
type GrievanceHandler struct {
	grievanceService service.GrievanceService
	deptService      service.DepartmentService
	cfg              *config.Config
}

func NewGrievanceHandler(grievanceService service.GrievanceService, deptService service.DepartmentService, cfg *config.Config) *GrievanceHandler {
	return &GrievanceHandler{
		grievanceService: grievanceService,
		deptService:      deptService,
		cfg:              cfg,
	}
}

func (h *GrievanceHandler) ListDepartments(c *fiber.Ctx) error {
	departments, err := h.deptService.List(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"departments": departments,
	})
}

// Submit creates a grievance from a multipart form. Files beyond the
// configured cap are dropped, and per-file upload failures are reported as
// warnings rather than failing an already-created grievance.
func (h *GrievanceHandler) Submit(c *fiber.Ctx) error {
	studentID := middleware.GetCurrentUserID(c)

	input := domain.SubmitGrievanceInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Department:  c.FormValue("department"),
	}

	grievance, err := h.grievanceService.Submit(c.Context(), studentID, input)
	if err != nil {
		if err == service.ErrUnknownDepartment {
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	var warnings []string

	if form, err := c.MultipartForm(); err == nil && form != nil {
		files := form.File["files"]
		if len(files) > h.cfg.MaxAttachmentCount {
			warnings = append(warnings, fmt.Sprintf("Only %d attachments are allowed; %d extra file(s) were ignored", h.cfg.MaxAttachmentCount, len(files)-h.cfg.MaxAttachmentCount))
			files = files[:h.cfg.MaxAttachmentCount]
		}

		for _, file := range files {
			if warning := h.attachFile(c, grievance.ID, file); warning != "" {
				warnings = append(warnings, warning)
			}
		}

		// Reload so the response carries the stored attachments.
		if len(files) > 0 {
			if fresh, err := h.grievanceService.GetByID(c.Context(), grievance.ID); err == nil && fresh != nil {
				grievance = fresh
			}
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"grievance": grievance,
		"warnings":  warnings,
		"message":   "Grievance submitted successfully",
	})
}

func (h *GrievanceHandler) attachFile(c *fiber.Ctx, grievanceID uuid.UUID, file *multipart.FileHeader) string {
	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	reader, err := file.Open()
	if err != nil {
		return fmt.Sprintf("%s: failed to read file", file.Filename)
	}
	defer reader.Close()

	upload := service.AttachmentUpload{
		FileName: file.Filename,
		Size:     file.Size,
		MimeType: mimeType,
		Reader:   reader,
	}

	if _, err := h.grievanceService.Attach(c.Context(), grievanceID, upload); err != nil {
		return fmt.Sprintf("%s: %s", file.Filename, err.Error())
	}
	return ""
}

func (h *GrievanceHandler) ListOwn(c *fiber.Ctx) error {
	studentID := middleware.GetCurrentUserID(c)

	grievances, err := h.grievanceService.ListByStudent(c.Context(), studentID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"grievances": grievances,
	})
}

func (h *GrievanceHandler) GetOwn(c *fiber.Ctx) error {
	studentID := middleware.GetCurrentUserID(c)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	grievance, err := h.grievanceService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	if grievance == nil || grievance.StudentID != studentID {
		return middleware.NotFound("Grievance not found")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"grievance": grievance,
	})
}

func (h *GrievanceHandler) AddAttachment(c *fiber.Ctx) error {
	studentID := middleware.GetCurrentUserID(c)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	grievance, err := h.grievanceService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	if grievance == nil || grievance.StudentID != studentID {
		return middleware.NotFound("Grievance not found")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	reader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer reader.Close()

	attachment, err := h.grievanceService.Attach(c.Context(), id, service.AttachmentUpload{
		FileName: file.Filename,
		Size:     file.Size,
		MimeType: mimeType,
		Reader:   reader,
	})
	if err != nil {
		switch err {
		case service.ErrGrievanceClosed:
			return middleware.Conflict(err.Error())
		case service.ErrInvalidFileName, service.ErrFileEmpty, service.ErrFileTooLarge, service.ErrInvalidFileFormat:
			return middleware.BadRequest(err.Error())
		case service.ErrStorageUnavailable:
			return middleware.NewError(fiber.StatusServiceUnavailable, "File storage is temporarily unavailable")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"attachment": attachment,
	})
}
