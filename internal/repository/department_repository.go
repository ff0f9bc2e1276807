package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"grievance-portal/internal/domain"
)

type DepartmentRepository interface {
	Create(ctx context.Context, department *domain.Department) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error)
	GetByName(ctx context.Context, name string) (*domain.Department, error)
	ListAll(ctx context.Context) ([]domain.Department, error)
	Update(ctx context.Context, department *domain.Department) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}

type departmentRepository struct {
	db *sqlx.DB
}

func NewDepartmentRepository(db *sqlx.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, department *domain.Department) error {
	query := `
		INSERT INTO departments (department_id, name, description, faculty)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		department.ID, department.Name, department.Description, department.Faculty,
	).Scan(&department.CreatedAt, &department.UpdatedAt)
}

func (r *departmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	var department domain.Department
	query := `SELECT * FROM departments WHERE department_id = $1`

	err := r.db.GetContext(ctx, &department, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) GetByName(ctx context.Context, name string) (*domain.Department, error) {
	var department domain.Department
	query := `SELECT * FROM departments WHERE name = $1`

	err := r.db.GetContext(ctx, &department, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) ListAll(ctx context.Context) ([]domain.Department, error) {
	var departments []domain.Department
	query := `SELECT * FROM departments ORDER BY name ASC`
	err := r.db.SelectContext(ctx, &departments, query)
	return departments, err
}

func (r *departmentRepository) Update(ctx context.Context, department *domain.Department) error {
	query := `
		UPDATE departments
		SET name = :name, description = :description, faculty = :faculty, updated_at = NOW()
		WHERE department_id = :department_id`

	_, err := r.db.NamedExecContext(ctx, query, department)
	return err
}

func (r *departmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM departments WHERE department_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *departmentRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM departments WHERE name = $1)`
	err := r.db.GetContext(ctx, &exists, query, name)
	return exists, err
}
