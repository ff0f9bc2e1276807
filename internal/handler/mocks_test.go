package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"grievance-portal/internal/domain"
	"grievance-portal/internal/service"
)

type mockGrievanceService struct {
	mock.Mock
}

func (m *mockGrievanceService) Submit(ctx context.Context, studentID uuid.UUID, input domain.SubmitGrievanceInput) (*domain.Grievance, error) {
	args := m.Called(ctx, studentID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Grievance), args.Error(1)
}

func (m *mockGrievanceService) Attach(ctx context.Context, grievanceID uuid.UUID, upload service.AttachmentUpload) (*domain.Attachment, error) {
	args := m.Called(ctx, grievanceID, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attachment), args.Error(1)
}

func (m *mockGrievanceService) TransitionStatus(ctx context.Context, actorID, grievanceID uuid.UUID, input domain.TransitionStatusInput) error {
	args := m.Called(ctx, actorID, grievanceID, input)
	return args.Error(0)
}

func (m *mockGrievanceService) RecordDepartmentResponse(ctx context.Context, deptUser *domain.User, grievanceID uuid.UUID, input domain.RespondInput) error {
	args := m.Called(ctx, deptUser, grievanceID, input)
	return args.Error(0)
}

func (m *mockGrievanceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Grievance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Grievance), args.Error(1)
}

func (m *mockGrievanceService) ListAll(ctx context.Context) ([]domain.Grievance, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Grievance), args.Error(1)
}

func (m *mockGrievanceService) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]domain.Grievance, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]domain.Grievance), args.Error(1)
}

func (m *mockGrievanceService) ListByDepartment(ctx context.Context, department string) ([]domain.Grievance, error) {
	args := m.Called(ctx, department)
	return args.Get(0).([]domain.Grievance), args.Error(1)
}

func (m *mockGrievanceService) ListOpen(ctx context.Context) ([]domain.Grievance, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Grievance), args.Error(1)
}

func (m *mockGrievanceService) ListResolved(ctx context.Context) ([]domain.Grievance, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Grievance), args.Error(1)
}

type mockDepartmentService struct {
	mock.Mock
}

func (m *mockDepartmentService) List(ctx context.Context) ([]domain.Department, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Department), args.Error(1)
}

func (m *mockDepartmentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *mockDepartmentService) Create(ctx context.Context, actorID uuid.UUID, input domain.CreateDepartmentInput) (*domain.Department, error) {
	args := m.Called(ctx, actorID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *mockDepartmentService) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, input domain.UpdateDepartmentInput) (*domain.Department, error) {
	args := m.Called(ctx, actorID, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *mockDepartmentService) Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, actorID, id)
	return args.Error(0)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) ListAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserService) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserService) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error) {
	args := m.Called(ctx, actorID, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserService) ResetPassword(ctx context.Context, actorID uuid.UUID, id uuid.UUID, input domain.ResetPasswordInput) error {
	args := m.Called(ctx, actorID, id, input)
	return args.Error(0)
}

func (m *mockUserService) Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	args := m.Called(ctx, actorID, id)
	return args.Error(0)
}
