package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Session      SessionRepository
	Grievance    GrievanceRepository
	Department   DepartmentRepository
	Notification NotificationRepository
	AuditLog     AuditLogRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Session:      NewSessionRepository(db),
		Grievance:    NewGrievanceRepository(db),
		Department:   NewDepartmentRepository(db),
		Notification: NewNotificationRepository(db),
		AuditLog:     NewAuditLogRepository(db),
	}
}
