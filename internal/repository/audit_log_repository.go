package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"grievance-portal/internal/domain"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	ListRecent(ctx context.Context, params domain.PaginationParams) ([]domain.AuditLog, int64, error)
}

type auditLogRepository struct {
	db *sqlx.DB
}

func NewAuditLogRepository(db *sqlx.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (audit_id, actor_id, action, entity_type, entity_id, detail)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		log.ID, log.ActorID, log.Action, log.EntityType, log.EntityID, log.Detail,
	).Scan(&log.CreatedAt)
}

func (r *auditLogRepository) ListRecent(ctx context.Context, params domain.PaginationParams) ([]domain.AuditLog, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM audit_logs`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	var logs []domain.AuditLog
	err := r.db.SelectContext(ctx, &logs, query, params.PageSize, params.Offset())
	return logs, total, err
}
