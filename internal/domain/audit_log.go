package domain

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID         uuid.UUID `json:"id" db:"audit_id"`
	ActorID    uuid.UUID `json:"actor_id" db:"actor_id"`
	Action     string    `json:"action" db:"action"`
	EntityType string    `json:"entity_type" db:"entity_type"`
	EntityID   string    `json:"entity_id" db:"entity_id"`
	Detail     string    `json:"detail" db:"detail"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

const (
	AuditStatusTransition = "grievance.status_transition"
	AuditUserUpdate       = "user.update"
	AuditUserDelete       = "user.delete"
	AuditPasswordReset    = "user.password_reset"
	AuditDepartmentCreate = "department.create"
	AuditDepartmentUpdate = "department.update"
	AuditDepartmentDelete = "department.delete"
)
