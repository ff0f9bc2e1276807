package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"grievance-portal/internal/domain"
)

// ErrGrievanceNotFound is returned by write operations that target a
// grievance id with no matching row.
var ErrGrievanceNotFound = errors.New("grievance not found")

type GrievanceRepository interface {
	// Create inserts the grievance together with its synthetic initial
	// status entry in one transaction.
	Create(ctx context.Context, grievance *domain.Grievance, initial *domain.StatusEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Grievance, error)
	ListAll(ctx context.Context) ([]domain.Grievance, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]domain.Grievance, error)
	ListByDepartment(ctx context.Context, department string) ([]domain.Grievance, error)
	ListOpen(ctx context.Context) ([]domain.Grievance, error)
	ListResolved(ctx context.Context) ([]domain.Grievance, error)

	// AppendStatus inserts the history entry and derives the denormalized
	// status column from it inside a single transaction. The status column
	// is never written through any other path.
	AppendStatus(ctx context.Context, grievanceID uuid.UUID, entry *domain.StatusEntry) error

	// RecordResponse applies a department response atomically: the response
	// row, the forced status-history entry, the derived status column and
	// the admin notification either all commit or none do.
	RecordResponse(ctx context.Context, response *domain.Response, entry *domain.StatusEntry, notif *domain.Notification) error

	AddAttachment(ctx context.Context, attachment *domain.Attachment) error

	CountByStudent(ctx context.Context, studentID uuid.UUID) (int64, error)
	CountByDepartment(ctx context.Context, department string) (int64, error)
	DistinctDepartments(ctx context.Context) ([]string, error)

	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountByDepartmentAll(ctx context.Context) (map[string]int64, error)
	CountByMonth(ctx context.Context) (map[string]int64, error)

	// Per-grievance child-row counts for the CSV report, one query per
	// table regardless of how many grievances exist.
	CountResponsesPerGrievance(ctx context.Context) (map[uuid.UUID]int64, error)
	CountAttachmentsPerGrievance(ctx context.Context) (map[uuid.UUID]int64, error)
}

type grievanceRepository struct {
	db *sqlx.DB
}

func NewGrievanceRepository(db *sqlx.DB) GrievanceRepository {
	return &grievanceRepository{db: db}
}

func (r *grievanceRepository) Create(ctx context.Context, grievance *domain.Grievance, initial *domain.StatusEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create grievance: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
		INSERT INTO grievances (grievance_id, student_id, title, description, department, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err = tx.QueryRowxContext(ctx, query,
		grievance.ID, grievance.StudentID, grievance.Title, grievance.Description,
		grievance.Department, grievance.Status,
	).Scan(&grievance.CreatedAt, &grievance.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert grievance: %w", err)
	}

	entryQuery := `
		INSERT INTO grievance_status_history (entry_id, grievance_id, status, note)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err = tx.QueryRowxContext(ctx, entryQuery,
		initial.ID, grievance.ID, initial.Status, initial.Note,
	).Scan(&initial.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert initial status entry: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create grievance: %w", err)
	}
	return nil
}

func (r *grievanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Grievance, error) {
	var grievance domain.Grievance
	query := `SELECT * FROM grievances WHERE grievance_id = $1`

	err := r.db.GetContext(ctx, &grievance, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	historyQuery := `
		SELECT entry_id, grievance_id, status, note, created_at
		FROM grievance_status_history
		WHERE grievance_id = $1
		ORDER BY seq ASC`
	if err := r.db.SelectContext(ctx, &grievance.StatusHistory, historyQuery, id); err != nil {
		return nil, err
	}

	attachmentQuery := `
		SELECT attachment_id, grievance_id, file_name, storage_path, url, file_size, mime_type, extension, uploaded_at
		FROM grievance_attachments
		WHERE grievance_id = $1
		ORDER BY uploaded_at ASC`
	if err := r.db.SelectContext(ctx, &grievance.Attachments, attachmentQuery, id); err != nil {
		return nil, err
	}

	responseQuery := `
		SELECT response_id, grievance_id, department_id, department_name, message, created_at
		FROM grievance_responses
		WHERE grievance_id = $1
		ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &grievance.Responses, responseQuery, id); err != nil {
		return nil, err
	}

	return &grievance, nil
}

func (r *grievanceRepository) ListAll(ctx context.Context) ([]domain.Grievance, error) {
	var grievances []domain.Grievance
	query := `SELECT * FROM grievances ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &grievances, query)
	return grievances, err
}

func (r *grievanceRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]domain.Grievance, error) {
	var grievances []domain.Grievance
	query := `SELECT * FROM grievances WHERE student_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &grievances, query, studentID)
	return grievances, err
}

func (r *grievanceRepository) ListByDepartment(ctx context.Context, department string) ([]domain.Grievance, error) {
	var grievances []domain.Grievance
	query := `SELECT * FROM grievances WHERE department = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &grievances, query, department)
	return grievances, err
}

func (r *grievanceRepository) ListOpen(ctx context.Context) ([]domain.Grievance, error) {
	var grievances []domain.Grievance
	query := `SELECT * FROM grievances WHERE status NOT IN ('resolved', 'closed') ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &grievances, query)
	return grievances, err
}

func (r *grievanceRepository) ListResolved(ctx context.Context) ([]domain.Grievance, error) {
	var grievances []domain.Grievance
	query := `SELECT * FROM grievances WHERE status IN ('resolved', 'closed') ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &grievances, query)
	return grievances, err
}

func (r *grievanceRepository) AppendStatus(ctx context.Context, grievanceID uuid.UUID, entry *domain.StatusEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append status: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = appendStatusTx(ctx, tx, grievanceID, entry); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit append status: %w", err)
	}
	return nil
}

// appendStatusTx writes one history entry and refreshes the grievance's
// derived status inside the caller's transaction.
func appendStatusTx(ctx context.Context, tx *sqlx.Tx, grievanceID uuid.UUID, entry *domain.StatusEntry) error {
	entryQuery := `
		INSERT INTO grievance_status_history (entry_id, grievance_id, status, note)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := tx.QueryRowxContext(ctx, entryQuery,
		entry.ID, grievanceID, entry.Status, entry.Note,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert status entry: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE grievances SET status = $2, updated_at = NOW() WHERE grievance_id = $1`,
		grievanceID, entry.Status,
	)
	if err != nil {
		return fmt.Errorf("update grievance status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrGrievanceNotFound
	}
	return nil
}

func (r *grievanceRepository) RecordResponse(ctx context.Context, response *domain.Response, entry *domain.StatusEntry, notif *domain.Notification) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record response: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	responseQuery := `
		INSERT INTO grievance_responses (response_id, grievance_id, department_id, department_name, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err = tx.QueryRowxContext(ctx, responseQuery,
		response.ID, response.GrievanceID, response.DepartmentID, response.DepartmentName, response.Message,
	).Scan(&response.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert response: %w", err)
	}

	if err = appendStatusTx(ctx, tx, response.GrievanceID, entry); err != nil {
		return err
	}

	notifQuery := `
		INSERT INTO notifications (notification_id, target_role, type, title, message, grievance_id, department_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err = tx.QueryRowxContext(ctx, notifQuery,
		notif.ID, notif.TargetRole, notif.Type, notif.Title, notif.Message,
		notif.GrievanceID, notif.DepartmentID,
	).Scan(&notif.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit record response: %w", err)
	}
	return nil
}

func (r *grievanceRepository) AddAttachment(ctx context.Context, attachment *domain.Attachment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin add attachment: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
		INSERT INTO grievance_attachments (attachment_id, grievance_id, file_name, storage_path, url, file_size, mime_type, extension)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING uploaded_at`

	err = tx.QueryRowxContext(ctx, query,
		attachment.ID, attachment.GrievanceID, attachment.FileName, attachment.StoragePath,
		attachment.URL, attachment.FileSize, attachment.MimeType, attachment.Extension,
	).Scan(&attachment.UploadedAt)
	if err != nil {
		return fmt.Errorf("insert attachment: %w", err)
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE grievances SET updated_at = NOW() WHERE grievance_id = $1`,
		attachment.GrievanceID,
	); err != nil {
		return fmt.Errorf("touch grievance: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit add attachment: %w", err)
	}
	return nil
}

func (r *grievanceRepository) CountByStudent(ctx context.Context, studentID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM grievances WHERE student_id = $1`
	err := r.db.GetContext(ctx, &count, query, studentID)
	return count, err
}

func (r *grievanceRepository) CountByDepartment(ctx context.Context, department string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM grievances WHERE department = $1`
	err := r.db.GetContext(ctx, &count, query, department)
	return count, err
}

func (r *grievanceRepository) DistinctDepartments(ctx context.Context) ([]string, error) {
	var departments []string
	query := `SELECT DISTINCT department FROM grievances WHERE department <> '' ORDER BY department ASC`
	err := r.db.SelectContext(ctx, &departments, query)
	return departments, err
}

type countRow struct {
	Key   string `db:"key"`
	Count int64  `db:"count"`
}

func (r *grievanceRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	query := `SELECT status AS key, COUNT(*) AS count FROM grievances GROUP BY status`
	return r.countMap(ctx, query)
}

func (r *grievanceRepository) CountByDepartmentAll(ctx context.Context) (map[string]int64, error) {
	query := `SELECT department AS key, COUNT(*) AS count FROM grievances GROUP BY department`
	return r.countMap(ctx, query)
}

func (r *grievanceRepository) CountByMonth(ctx context.Context) (map[string]int64, error) {
	query := `SELECT to_char(created_at, 'YYYY-MM') AS key, COUNT(*) AS count FROM grievances GROUP BY 1 ORDER BY 1`
	return r.countMap(ctx, query)
}

type grievanceCountRow struct {
	GrievanceID uuid.UUID `db:"grievance_id"`
	Count       int64     `db:"count"`
}

func (r *grievanceRepository) CountResponsesPerGrievance(ctx context.Context) (map[uuid.UUID]int64, error) {
	query := `SELECT grievance_id, COUNT(*) AS count FROM grievance_responses GROUP BY grievance_id`
	return r.perGrievanceCountMap(ctx, query)
}

func (r *grievanceRepository) CountAttachmentsPerGrievance(ctx context.Context) (map[uuid.UUID]int64, error) {
	query := `SELECT grievance_id, COUNT(*) AS count FROM grievance_attachments GROUP BY grievance_id`
	return r.perGrievanceCountMap(ctx, query)
}

func (r *grievanceRepository) perGrievanceCountMap(ctx context.Context, query string) (map[uuid.UUID]int64, error) {
	var rows []grievanceCountRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.GrievanceID] = row.Count
	}
	return counts, nil
}

func (r *grievanceRepository) countMap(ctx context.Context, query string) (map[string]int64, error) {
	var rows []countRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts, nil
}
