package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"grievance-portal/internal/domain"
	"grievance-portal/internal/repository"
)

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrDepartmentExists   = errors.New("a department with this name already exists")
	ErrDepartmentInUse    = errors.New("department has grievances assigned and cannot be deleted")
)

const departmentListKey = "departments:list"

type DepartmentService interface {
	List(ctx context.Context) ([]domain.Department, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error)
	Create(ctx context.Context, actorID uuid.UUID, input domain.CreateDepartmentInput) (*domain.Department, error)
	Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, input domain.UpdateDepartmentInput) (*domain.Department, error)
	Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error
}

type departmentService struct {
	deptRepo      repository.DepartmentRepository
	grievanceRepo repository.GrievanceRepository
	audit         AuditService
	redis         *redis.Client
	validate      *validator.Validate
}

func NewDepartmentService(deptRepo repository.DepartmentRepository, grievanceRepo repository.GrievanceRepository, audit AuditService, redis *redis.Client) DepartmentService {
	return &departmentService{
		deptRepo:      deptRepo,
		grievanceRepo: grievanceRepo,
		audit:         audit,
		redis:         redis,
		validate:      validator.New(),
	}
}

// List returns all departments. When the table is empty it is seeded on the
// fly: names are derived from existing grievances, falling back to the
// standard department list for a fresh install.
func (s *departmentService) List(ctx context.Context) ([]domain.Department, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, departmentListKey).Result(); err == nil {
			var departments []domain.Department
			if json.Unmarshal([]byte(cached), &departments) == nil {
				return departments, nil
			}
		}
	}

	departments, err := s.deptRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if len(departments) == 0 {
		if departments, err = s.seedDepartments(ctx); err != nil {
			return nil, err
		}
	}

	if s.redis != nil {
		if deptJSON, err := json.Marshal(departments); err == nil {
			_ = s.redis.Set(ctx, departmentListKey, deptJSON, 10*time.Minute).Err()
		}
	}

	return departments, nil
}

func (s *departmentService) seedDepartments(ctx context.Context) ([]domain.Department, error) {
	names, err := s.grievanceRepo.DistinctDepartments(ctx)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		names = domain.DefaultDepartments
	}

	for _, name := range names {
		department := &domain.Department{
			ID:   uuid.New(),
			Name: name,
		}
		if err := s.deptRepo.Create(ctx, department); err != nil {
			return nil, err
		}
	}

	return s.deptRepo.ListAll(ctx)
}

func (s *departmentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	department, err := s.deptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}
	return department, nil
}

func (s *departmentService) Create(ctx context.Context, actorID uuid.UUID, input domain.CreateDepartmentInput) (*domain.Department, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)

	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	// Friendly pre-check; the unique index on name catches the race.
	exists, err := s.deptRepo.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDepartmentExists
	}

	department := &domain.Department{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Faculty:     input.Faculty,
	}

	if err := s.deptRepo.Create(ctx, department); err != nil {
		return nil, err
	}

	s.invalidateList(ctx)
	s.audit.Record(ctx, actorID, domain.AuditDepartmentCreate, "department", department.ID.String(), "created "+department.Name)

	return department, nil
}

func (s *departmentService) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, input domain.UpdateDepartmentInput) (*domain.Department, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)

	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	department, err := s.deptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	if input.Name != department.Name {
		exists, err := s.deptRepo.ExistsByName(ctx, input.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDepartmentExists
		}
	}

	department.Name = input.Name
	department.Description = input.Description
	department.Faculty = input.Faculty

	if err := s.deptRepo.Update(ctx, department); err != nil {
		return nil, err
	}

	s.invalidateList(ctx)
	s.audit.Record(ctx, actorID, domain.AuditDepartmentUpdate, "department", department.ID.String(), "updated "+department.Name)

	return department, nil
}

// Delete removes a department unless any grievance still references it by
// name.
func (s *departmentService) Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	department, err := s.deptRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if department == nil {
		return ErrDepartmentNotFound
	}

	count, err := s.grievanceRepo.CountByDepartment(ctx, department.Name)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDepartmentInUse
	}

	if err := s.deptRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateList(ctx)
	s.audit.Record(ctx, actorID, domain.AuditDepartmentDelete, "department", id.String(), "deleted "+department.Name)

	return nil
}

func (s *departmentService) invalidateList(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, departmentListKey).Err()
	}
}
