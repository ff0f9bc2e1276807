package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"grievance-portal/internal/config"
	"grievance-portal/internal/domain"
	"grievance-portal/internal/repository"
)

var (
	ErrGrievanceNotFound = errors.New("grievance not found")
	ErrUnknownDepartment = errors.New("please select a valid department")
	ErrInvalidStatus     = errors.New("invalid grievance status")
	ErrGrievanceClosed   = errors.New("cannot modify a closed grievance")
	ErrWrongDepartment   = errors.New("grievance is not assigned to this department")
	ErrInvalidFileName   = errors.New("invalid filename, use only letters, numbers, and common punctuation")
	ErrFileEmpty         = errors.New("file is empty, please choose a valid file")
	ErrFileTooLarge      = errors.New("file size exceeds the 5MB limit, please compress your file or choose a smaller one")
	ErrInvalidFileFormat = errors.New("invalid file format, allowed formats: pdf, doc, docx, jpg, jpeg, png")
)

// AllowedExtensions lists the attachment file types the portal accepts.
var AllowedExtensions = map[string]bool{
	"pdf":  true,
	"doc":  true,
	"docx": true,
	"jpg":  true,
	"jpeg": true,
	"png":  true,
}

// AttachmentUpload carries one incoming file from the multipart form.
type AttachmentUpload struct {
	FileName string
	Size     int64
	MimeType string
	Reader   io.Reader
}

type GrievanceService interface {
	Submit(ctx context.Context, studentID uuid.UUID, input domain.SubmitGrievanceInput) (*domain.Grievance, error)
	Attach(ctx context.Context, grievanceID uuid.UUID, upload AttachmentUpload) (*domain.Attachment, error)
	TransitionStatus(ctx context.Context, actorID, grievanceID uuid.UUID, input domain.TransitionStatusInput) error
	RecordDepartmentResponse(ctx context.Context, deptUser *domain.User, grievanceID uuid.UUID, input domain.RespondInput) error

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Grievance, error)
	ListAll(ctx context.Context) ([]domain.Grievance, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]domain.Grievance, error)
	ListByDepartment(ctx context.Context, department string) ([]domain.Grievance, error)
	ListOpen(ctx context.Context) ([]domain.Grievance, error)
	ListResolved(ctx context.Context) ([]domain.Grievance, error)
}

type grievanceService struct {
	grievanceRepo repository.GrievanceRepository
	deptRepo      repository.DepartmentRepository
	userRepo      repository.UserRepository
	storage       StorageService
	email         EmailService
	audit         AuditService
	redis         *redis.Client
	validate      *validator.Validate
	cfg           *config.Config
}

func NewGrievanceService(
	grievanceRepo repository.GrievanceRepository,
	deptRepo repository.DepartmentRepository,
	userRepo repository.UserRepository,
	storage StorageService,
	email EmailService,
	audit AuditService,
	redisClient *redis.Client,
	cfg *config.Config,
) GrievanceService {
	return &grievanceService{
		grievanceRepo: grievanceRepo,
		deptRepo:      deptRepo,
		userRepo:      userRepo,
		storage:       storage,
		email:         email,
		audit:         audit,
		redis:         redisClient,
		validate:      validator.New(),
		cfg:           cfg,
	}
}

func (s *grievanceService) Submit(ctx context.Context, studentID uuid.UUID, input domain.SubmitGrievanceInput) (*domain.Grievance, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Department = strings.TrimSpace(input.Department)

	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	exists, err := s.deptRepo.ExistsByName(ctx, input.Department)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownDepartment
	}

	grievance := &domain.Grievance{
		ID:          uuid.New(),
		StudentID:   studentID,
		Title:       input.Title,
		Description: input.Description,
		Department:  input.Department,
		Status:      domain.StatusPending,
	}
	initial := &domain.StatusEntry{
		ID:     uuid.New(),
		Status: domain.StatusPending,
		Note:   "Grievance submitted",
	}

	if err := s.grievanceRepo.Create(ctx, grievance, initial); err != nil {
		return nil, err
	}
	grievance.StatusHistory = []domain.StatusEntry{*initial}

	s.invalidateStats(ctx)
	s.notifyStudent(studentID, func(email string) error {
		return s.email.SendGrievanceSubmitted(context.Background(), email, grievance.ID.String(), grievance.Title)
	})

	return grievance, nil
}

func (s *grievanceService) Attach(ctx context.Context, grievanceID uuid.UUID, upload AttachmentUpload) (*domain.Attachment, error) {
	grievance, err := s.grievanceRepo.GetByID(ctx, grievanceID)
	if err != nil {
		return nil, err
	}
	if grievance == nil {
		return nil, ErrGrievanceNotFound
	}
	if grievance.Status == domain.StatusClosed {
		return nil, ErrGrievanceClosed
	}

	fileName := sanitizeFileName(upload.FileName)
	if fileName == "" {
		return nil, ErrInvalidFileName
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	if !AllowedExtensions[ext] {
		return nil, ErrInvalidFileFormat
	}

	if upload.Size == 0 {
		return nil, ErrFileEmpty
	}
	if upload.Size > s.cfg.MaxAttachmentSize {
		return nil, ErrFileTooLarge
	}

	if !s.storage.Available() {
		return nil, ErrStorageUnavailable
	}

	mimeType := upload.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	storagePath := fmt.Sprintf("attachments/%s/%s_%s", grievanceID, uuid.New(), fileName)
	if err := s.storage.Put(ctx, storagePath, upload.Reader, upload.Size, mimeType); err != nil {
		return nil, err
	}

	attachment := &domain.Attachment{
		ID:          uuid.New(),
		GrievanceID: grievanceID,
		FileName:    fileName,
		StoragePath: storagePath,
		URL:         s.storage.PublicURL(storagePath),
		FileSize:    upload.Size,
		MimeType:    mimeType,
		Extension:   ext,
	}

	if err := s.grievanceRepo.AddAttachment(ctx, attachment); err != nil {
		// The blob is already written; remove it so a failed record does
		// not leave an orphan, then surface the original failure.
		if delErr := s.storage.Delete(ctx, storagePath); delErr != nil {
			log.Printf("Failed to remove orphaned attachment blob %s: %v", storagePath, delErr)
		}
		return nil, err
	}

	return attachment, nil
}

func (s *grievanceService) TransitionStatus(ctx context.Context, actorID, grievanceID uuid.UUID, input domain.TransitionStatusInput) error {
	if !input.Status.IsValid() {
		return ErrInvalidStatus
	}

	note := strings.TrimSpace(input.Note)
	if note == "" {
		note = fmt.Sprintf("Status updated to %s", input.Status.Label())
	}

	entry := &domain.StatusEntry{
		ID:     uuid.New(),
		Status: input.Status,
		Note:   note,
	}

	if err := s.grievanceRepo.AppendStatus(ctx, grievanceID, entry); err != nil {
		if errors.Is(err, repository.ErrGrievanceNotFound) {
			return ErrGrievanceNotFound
		}
		return err
	}

	s.invalidateStats(ctx)
	s.audit.Record(ctx, actorID, domain.AuditStatusTransition, "grievance", grievanceID.String(),
		fmt.Sprintf("status set to %s", input.Status))

	grievance, err := s.grievanceRepo.GetByID(ctx, grievanceID)
	if err != nil || grievance == nil {
		return nil
	}
	s.notifyStudent(grievance.StudentID, func(email string) error {
		return s.email.SendStatusUpdate(context.Background(), email, grievanceID.String(), grievance.Title, input.Status.Label())
	})

	return nil
}

func (s *grievanceService) RecordDepartmentResponse(ctx context.Context, deptUser *domain.User, grievanceID uuid.UUID, input domain.RespondInput) error {
	input.Message = strings.TrimSpace(input.Message)
	if err := validateStruct(s.validate, input); err != nil {
		return err
	}

	grievance, err := s.grievanceRepo.GetByID(ctx, grievanceID)
	if err != nil {
		return err
	}
	if grievance == nil {
		return ErrGrievanceNotFound
	}
	if grievance.Department != deptUser.DisplayName {
		return ErrWrongDepartment
	}
	if grievance.Status == domain.StatusClosed {
		return ErrGrievanceClosed
	}

	dept, err := s.deptRepo.GetByName(ctx, grievance.Department)
	if err != nil {
		return err
	}
	deptID := deptUser.ID
	if dept != nil {
		deptID = dept.ID
	}

	response := &domain.Response{
		ID:             uuid.New(),
		GrievanceID:    grievanceID,
		DepartmentID:   deptID,
		DepartmentName: grievance.Department,
		Message:        input.Message,
	}
	entry := &domain.StatusEntry{
		ID:     uuid.New(),
		Status: domain.StatusUnderReview,
		Note:   fmt.Sprintf("Response received from %s - pending admin review", grievance.Department),
	}
	notif := &domain.Notification{
		ID:           uuid.New(),
		TargetRole:   string(domain.RoleAdmin),
		Type:         domain.NotifDepartmentResponse,
		Title:        "Department response received",
		Message:      fmt.Sprintf("%s responded to grievance \"%s\"", grievance.Department, grievance.Title),
		GrievanceID:  &grievanceID,
		DepartmentID: &deptID,
	}

	if err := s.grievanceRepo.RecordResponse(ctx, response, entry, notif); err != nil {
		if errors.Is(err, repository.ErrGrievanceNotFound) {
			return ErrGrievanceNotFound
		}
		return err
	}

	s.invalidateStats(ctx)
	return nil
}

func (s *grievanceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Grievance, error) {
	return s.grievanceRepo.GetByID(ctx, id)
}

func (s *grievanceService) ListAll(ctx context.Context) ([]domain.Grievance, error) {
	return s.grievanceRepo.ListAll(ctx)
}

func (s *grievanceService) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]domain.Grievance, error) {
	return s.grievanceRepo.ListByStudent(ctx, studentID)
}

func (s *grievanceService) ListByDepartment(ctx context.Context, department string) ([]domain.Grievance, error) {
	return s.grievanceRepo.ListByDepartment(ctx, department)
}

func (s *grievanceService) ListOpen(ctx context.Context) ([]domain.Grievance, error) {
	return s.grievanceRepo.ListOpen(ctx)
}

func (s *grievanceService) ListResolved(ctx context.Context) ([]domain.Grievance, error) {
	return s.grievanceRepo.ListResolved(ctx)
}

// notifyStudent looks up the student's email and fires the send in the
// background. Email is best-effort and never fails the triggering request.
func (s *grievanceService) notifyStudent(studentID uuid.UUID, send func(email string) error) {
	go func() {
		student, err := s.userRepo.GetByID(context.Background(), studentID)
		if err != nil || student == nil {
			log.Printf("Failed to load student %s for email notification: %v", studentID, err)
			return
		}
		if err := send(student.Email); err != nil {
			log.Printf("Failed to send email notification to %s: %v", student.Email, err)
		}
	}()
}

func (s *grievanceService) invalidateStats(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, dashboardStatsKey).Err()
	}
}

// sanitizeFileName strips directory components and any character outside a
// conservative allow-list before the name is embedded in a storage path.
func sanitizeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}

	cleaned := strings.Trim(b.String(), "._")
	if cleaned == "" || !strings.Contains(cleaned, ".") {
		return ""
	}
	return cleaned
}
