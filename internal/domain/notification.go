package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notifications are admin-facing: they surface department activity that
// needs triage. TargetRole is kept as a column so other roles can be
// addressed later without a schema change.
type Notification struct {
	ID           uuid.UUID        `json:"id" db:"notification_id"`
	TargetRole   string           `json:"target_role" db:"target_role"`
	Type         NotificationType `json:"type" db:"type"`
	Title        string           `json:"title" db:"title"`
	Message      string           `json:"message" db:"message"`
	GrievanceID  *uuid.UUID       `json:"grievance_id,omitempty" db:"grievance_id"`
	DepartmentID *uuid.UUID       `json:"department_id,omitempty" db:"department_id"`
	IsRead       bool             `json:"is_read" db:"is_read"`
	ReadAt       *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifDepartmentResponse NotificationType = "DEPARTMENT_RESPONSE"
	NotifGrievanceSubmitted NotificationType = "GRIEVANCE_SUBMITTED"
)
