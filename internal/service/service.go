package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"grievance-portal/internal/config"
	"grievance-portal/internal/repository"
)

type Services struct {
	Auth         AuthService
	User         UserService
	Grievance    GrievanceService
	Department   DepartmentService
	Notification NotificationService
	Dashboard    DashboardService
	Audit        AuditService
	Email        EmailService
	Storage      StorageService
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := NewEmailService(cfg)
	storageService := NewStorageService(minioClient, cfg)
	auditService := NewAuditService(repos.AuditLog)
	authService := NewAuthService(repos.User, repos.Session, cfg)
	userService := NewUserService(repos.User, repos.Session, repos.Grievance, auditService, cfg)
	departmentService := NewDepartmentService(repos.Department, repos.Grievance, auditService, redis)
	grievanceService := NewGrievanceService(repos.Grievance, repos.Department, repos.User, storageService, emailService, auditService, redis, cfg)
	notificationService := NewNotificationService(repos.Notification)
	dashboardService := NewDashboardService(repos.Grievance, redis)

	return &Services{
		Auth:         authService,
		User:         userService,
		Grievance:    grievanceService,
		Department:   departmentService,
		Notification: notificationService,
		Dashboard:    dashboardService,
		Audit:        auditService,
		Email:        emailService,
		Storage:      storageService,
	}
}
