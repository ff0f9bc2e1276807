package domain

import (
	"time"

	"github.com/google/uuid"
)

type GrievanceStatus string

const (
	StatusPending     GrievanceStatus = "pending"
	StatusInProgress  GrievanceStatus = "in_progress"
	StatusAssigned    GrievanceStatus = "assigned"
	StatusUnderReview GrievanceStatus = "under_review"
	StatusResolved    GrievanceStatus = "resolved"
	StatusClosed      GrievanceStatus = "closed"
)

// StatusLabels maps each status to the wording shown to students and
// used in notification emails.
var StatusLabels = map[GrievanceStatus]string{
	StatusPending:     "Pending",
	StatusInProgress:  "In Progress",
	StatusAssigned:    "Assigned to Department",
	StatusUnderReview: "Under Review",
	StatusResolved:    "Resolved",
	StatusClosed:      "Closed",
}

func (s GrievanceStatus) IsValid() bool {
	_, ok := StatusLabels[s]
	return ok
}

func (s GrievanceStatus) Label() string {
	if label, ok := StatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// IsOpen reports whether the grievance still needs attention.
func (s GrievanceStatus) IsOpen() bool {
	return s != StatusResolved && s != StatusClosed
}

type Grievance struct {
	ID          uuid.UUID       `json:"id" db:"grievance_id"`
	StudentID   uuid.UUID       `json:"student_id" db:"student_id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Department  string          `json:"department" db:"department"`
	Status      GrievanceStatus `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`

	StatusHistory []StatusEntry `json:"status_history,omitempty" db:"-"`
	Attachments   []Attachment  `json:"attachments,omitempty" db:"-"`
	Responses     []Response    `json:"responses,omitempty" db:"-"`
}

type StatusEntry struct {
	ID          uuid.UUID       `json:"id" db:"entry_id"`
	GrievanceID uuid.UUID       `json:"-" db:"grievance_id"`
	Status      GrievanceStatus `json:"status" db:"status"`
	Note        string          `json:"note" db:"note"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

type Attachment struct {
	ID          uuid.UUID `json:"id" db:"attachment_id"`
	GrievanceID uuid.UUID `json:"-" db:"grievance_id"`
	FileName    string    `json:"file_name" db:"file_name"`
	StoragePath string    `json:"-" db:"storage_path"`
	URL         string    `json:"url" db:"url"`
	FileSize    int64     `json:"file_size" db:"file_size"`
	MimeType    string    `json:"mime_type" db:"mime_type"`
	Extension   string    `json:"extension" db:"extension"`
	UploadedAt  time.Time `json:"uploaded_at" db:"uploaded_at"`
}

type Response struct {
	ID             uuid.UUID `json:"id" db:"response_id"`
	GrievanceID    uuid.UUID `json:"-" db:"grievance_id"`
	DepartmentID   uuid.UUID `json:"department_id" db:"department_id"`
	DepartmentName string    `json:"department_name" db:"department_name"`
	Message        string    `json:"message" db:"message"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type SubmitGrievanceInput struct {
	Title       string `json:"title" form:"title" validate:"required,min=5,max=200"`
	Description string `json:"description" form:"description" validate:"required,min=20,max=3000"`
	Department  string `json:"department" form:"department" validate:"required"`
}

type TransitionStatusInput struct {
	Status GrievanceStatus `json:"status" validate:"required"`
	Note   string          `json:"note" validate:"omitempty,max=1000"`
}

type RespondInput struct {
	Message string `json:"message" form:"message" validate:"required,min=1,max=3000"`
}

// GrievanceStats backs the admin dashboard and reports view.
type GrievanceStats struct {
	Total         int64            `json:"total"`
	ByStatus      map[string]int64 `json:"by_status"`
	ByDepartment  map[string]int64 `json:"by_department"`
	ByMonth       map[string]int64 `json:"by_month"`
	OpenCount     int64            `json:"open_count"`
	ResolvedCount int64            `json:"resolved_count"`
}
