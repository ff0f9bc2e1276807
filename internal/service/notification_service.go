package service

import (
	"context"

	"github.com/google/uuid"

	"grievance-portal/internal/domain"
	"grievance-portal/internal/repository"
)

// NotificationService serves the admin notification feed. Notifications are
// addressed to a role rather than an individual user so every admin sees the
// same feed.
type NotificationService interface {
	List(ctx context.Context, role domain.UserRole, unreadOnly bool, params domain.PaginationParams) (*domain.PaginatedResponse[domain.Notification], error)
	UnreadCount(ctx context.Context, role domain.UserRole) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, role domain.UserRole) error
}

type notificationService struct {
	notifRepo repository.NotificationRepository
}

func NewNotificationService(notifRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notifRepo: notifRepo}
}

func (s *notificationService) List(ctx context.Context, role domain.UserRole, unreadOnly bool, params domain.PaginationParams) (*domain.PaginatedResponse[domain.Notification], error) {
	params.Validate()

	notifications, total, err := s.notifRepo.ListByRole(ctx, string(role), unreadOnly, params)
	if err != nil {
		return nil, err
	}

	response := domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total)
	return &response, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, role domain.UserRole) (int64, error) {
	return s.notifRepo.CountUnread(ctx, string(role))
}

func (s *notificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.notifRepo.MarkAsRead(ctx, id)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, role domain.UserRole) error {
	return s.notifRepo.MarkAllAsRead(ctx, string(role))
}
