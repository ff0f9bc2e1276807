package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"grievance-portal/internal/config"
	"grievance-portal/internal/domain"
	"grievance-portal/internal/middleware"
	"grievance-portal/internal/service"
)

func newSubmitApp(grievanceSvc service.GrievanceService, studentID uuid.UUID) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDContextKey, studentID)
		return c.Next()
	})

	cfg := &config.Config{
		MaxAttachmentSize:  5 * 1024 * 1024,
		MaxAttachmentCount: 5,
	}
	h := NewGrievanceHandler(grievanceSvc, new(mockDepartmentService), cfg)
	app.Post("/grievances", h.Submit)
	return app
}

func submitRequest(t *testing.T, fileCount int) *http.Request {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("title", "Broken projector"))
	require.NoError(t, w.WriteField("description", "The projector in L2 has been broken for two weeks."))
	require.NoError(t, w.WriteField("department", "Academic Administration"))
	for i := 0; i < fileCount; i++ {
		part, err := w.CreateFormFile("files", fmt.Sprintf("evidence-%d.pdf", i+1))
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 test"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/grievances", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

type submitResponse struct {
	Grievance domain.Grievance `json:"grievance"`
	Warnings  []string         `json:"warnings"`
	Message   string           `json:"message"`
}

func decodeJSON(t *testing.T, r io.Reader, v interface{}) {
	require.NoError(t, json.NewDecoder(r).Decode(v))
}

func TestSubmitDropsFilesBeyondCapWithWarning(t *testing.T) {
	grievanceSvc := new(mockGrievanceService)
	studentID := uuid.New()
	grievance := &domain.Grievance{
		ID:         uuid.New(),
		StudentID:  studentID,
		Title:      "Broken projector",
		Department: "Academic Administration",
		Status:     domain.StatusPending,
	}

	grievanceSvc.On("Submit", mock.Anything, studentID, domain.SubmitGrievanceInput{
		Title:       "Broken projector",
		Description: "The projector in L2 has been broken for two weeks.",
		Department:  "Academic Administration",
	}).Return(grievance, nil)
	grievanceSvc.On("Attach", mock.Anything, grievance.ID, mock.Anything).
		Return(&domain.Attachment{ID: uuid.New(), GrievanceID: grievance.ID}, nil)
	grievanceSvc.On("GetByID", mock.Anything, grievance.ID).Return(grievance, nil)

	app := newSubmitApp(grievanceSvc, studentID)
	resp, err := app.Test(submitRequest(t, 6), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body submitResponse
	decodeJSON(t, resp.Body, &body)

	require.Len(t, body.Warnings, 1)
	assert.Contains(t, body.Warnings[0], "1 extra file(s) were ignored")
	assert.Equal(t, grievance.ID, body.Grievance.ID)

	grievanceSvc.AssertNumberOfCalls(t, "Attach", 5)
}

func TestSubmitReportsPerFileFailuresAsWarnings(t *testing.T) {
	grievanceSvc := new(mockGrievanceService)
	studentID := uuid.New()
	grievance := &domain.Grievance{
		ID:        uuid.New(),
		StudentID: studentID,
		Status:    domain.StatusPending,
	}

	grievanceSvc.On("Submit", mock.Anything, studentID, mock.Anything).Return(grievance, nil)
	grievanceSvc.On("Attach", mock.Anything, grievance.ID, mock.MatchedBy(func(u service.AttachmentUpload) bool {
		return u.FileName == "evidence-2.pdf"
	})).Return(nil, service.ErrFileTooLarge)
	grievanceSvc.On("Attach", mock.Anything, grievance.ID, mock.Anything).
		Return(&domain.Attachment{ID: uuid.New(), GrievanceID: grievance.ID}, nil)
	grievanceSvc.On("GetByID", mock.Anything, grievance.ID).Return(grievance, nil)

	app := newSubmitApp(grievanceSvc, studentID)
	resp, err := app.Test(submitRequest(t, 3), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Grievance creation already succeeded, so a bad file never fails
	// the request.
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body submitResponse
	decodeJSON(t, resp.Body, &body)

	require.Len(t, body.Warnings, 1)
	assert.True(t, strings.HasPrefix(body.Warnings[0], "evidence-2.pdf:"))
	grievanceSvc.AssertNumberOfCalls(t, "Attach", 3)
}

func TestSubmitWithoutFilesHasNoWarnings(t *testing.T) {
	grievanceSvc := new(mockGrievanceService)
	studentID := uuid.New()
	grievance := &domain.Grievance{ID: uuid.New(), StudentID: studentID, Status: domain.StatusPending}

	grievanceSvc.On("Submit", mock.Anything, studentID, mock.Anything).Return(grievance, nil)

	app := newSubmitApp(grievanceSvc, studentID)
	resp, err := app.Test(submitRequest(t, 0), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body submitResponse
	decodeJSON(t, resp.Body, &body)

	assert.Empty(t, body.Warnings)
	grievanceSvc.AssertNotCalled(t, "Attach", mock.Anything, mock.Anything, mock.Anything)
	grievanceSvc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestSubmitUnknownDepartmentIsBadRequest(t *testing.T) {
	grievanceSvc := new(mockGrievanceService)
	studentID := uuid.New()

	grievanceSvc.On("Submit", mock.Anything, studentID, mock.Anything).
		Return(nil, service.ErrUnknownDepartment)

	app := newSubmitApp(grievanceSvc, studentID)
	resp, err := app.Test(submitRequest(t, 0), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body middleware.ErrorResponse
	decodeJSON(t, resp.Body, &body)
	assert.Equal(t, "BAD_REQUEST", body.Code)
}

func TestSubmitValidationFailureMapsToUnprocessable(t *testing.T) {
	grievanceSvc := new(mockGrievanceService)
	studentID := uuid.New()

	grievanceSvc.On("Submit", mock.Anything, studentID, mock.Anything).
		Return(nil, fmt.Errorf("%w: Title must be at least 5 characters", service.ErrValidation))

	app := newSubmitApp(grievanceSvc, studentID)
	resp, err := app.Test(submitRequest(t, 0), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var body middleware.ErrorResponse
	decodeJSON(t, resp.Body, &body)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.Contains(t, body.Message, "Title must be at least 5 characters")
	assert.NotEmpty(t, body.TraceID)
}
