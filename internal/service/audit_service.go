package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"grievance-portal/internal/domain"
	"grievance-portal/internal/repository"
)

// AuditService records administrative actions for later review. Recording is
// best-effort: a failed write is logged but never fails the calling operation.
type AuditService interface {
	Record(ctx context.Context, actorID uuid.UUID, action, entityType, entityID, detail string)
	Recent(ctx context.Context, params domain.PaginationParams) (*domain.PaginatedResponse[domain.AuditLog], error)
}

type auditService struct {
	auditRepo repository.AuditLogRepository
}

func NewAuditService(auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) Record(ctx context.Context, actorID uuid.UUID, action, entityType, entityID, detail string) {
	entry := &domain.AuditLog{
		ID:         uuid.New(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("Failed to record audit entry %s for %s/%s: %v", action, entityType, entityID, err)
	}
}

func (s *auditService) Recent(ctx context.Context, params domain.PaginationParams) (*domain.PaginatedResponse[domain.AuditLog], error) {
	params.Validate()

	entries, total, err := s.auditRepo.ListRecent(ctx, params)
	if err != nil {
		return nil, err
	}

	response := domain.NewPaginatedResponse(entries, params.Page, params.PageSize, total)
	return &response, nil
}
