package handler

import (
	"grievance-portal/internal/config"
	"grievance-portal/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	Grievance    *GrievanceHandler
	Department   *DepartmentHandler
	Admin        *AdminHandler
	Notification *NotificationHandler
	Audit        *AuditHandler
}

func NewHandlers(services *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Grievance:    NewGrievanceHandler(services.Grievance, services.Department, cfg),
		Department:   NewDepartmentHandler(services.Grievance),
		Admin:        NewAdminHandler(services.Grievance, services.Department, services.User, services.Dashboard),
		Notification: NewNotificationHandler(services.Notification),
		Audit:        NewAuditHandler(services.Audit),
	}
}
