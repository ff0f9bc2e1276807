package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"grievance-portal/internal/domain"
)

func newTestDepartmentService() (DepartmentService, *mockDepartmentRepo, *mockGrievanceRepo, *mockAuditLogRepo) {
	deptRepo := new(mockDepartmentRepo)
	grievanceRepo := new(mockGrievanceRepo)
	auditRepo := new(mockAuditLogRepo)

	svc := NewDepartmentService(deptRepo, grievanceRepo, NewAuditService(auditRepo), nil)
	return svc, deptRepo, grievanceRepo, auditRepo
}

func TestListSeedsFromExistingGrievanceDepartments(t *testing.T) {
	svc, deptRepo, grievanceRepo, _ := newTestDepartmentService()

	seeded := []domain.Department{
		{ID: uuid.New(), Name: "Finance Department"},
		{ID: uuid.New(), Name: "Student Housing"},
	}

	deptRepo.On("ListAll", mock.Anything).Return([]domain.Department{}, nil).Once()
	grievanceRepo.On("DistinctDepartments", mock.Anything).Return([]string{"Finance Department", "Student Housing"}, nil)
	deptRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Times(2)
	deptRepo.On("ListAll", mock.Anything).Return(seeded, nil).Once()

	departments, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, departments, 2)
	deptRepo.AssertExpectations(t)
}

func TestListSeedsDefaultsOnFreshInstall(t *testing.T) {
	svc, deptRepo, grievanceRepo, _ := newTestDepartmentService()

	deptRepo.On("ListAll", mock.Anything).Return([]domain.Department{}, nil).Once()
	grievanceRepo.On("DistinctDepartments", mock.Anything).Return([]string{}, nil)
	deptRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Times(len(domain.DefaultDepartments))

	var final []domain.Department
	for _, name := range domain.DefaultDepartments {
		final = append(final, domain.Department{ID: uuid.New(), Name: name})
	}
	deptRepo.On("ListAll", mock.Anything).Return(final, nil).Once()

	departments, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, departments, len(domain.DefaultDepartments))
}

func TestListSkipsSeedingWhenPopulated(t *testing.T) {
	svc, deptRepo, grievanceRepo, _ := newTestDepartmentService()

	deptRepo.On("ListAll", mock.Anything).Return([]domain.Department{
		{ID: uuid.New(), Name: "Finance Department"},
	}, nil)

	departments, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, departments, 1)
	grievanceRepo.AssertNotCalled(t, "DistinctDepartments", mock.Anything)
	deptRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateDepartmentRejectsDuplicateName(t *testing.T) {
	svc, deptRepo, _, _ := newTestDepartmentService()

	deptRepo.On("ExistsByName", mock.Anything, "Finance Department").Return(true, nil)

	_, err := svc.Create(context.Background(), uuid.New(), domain.CreateDepartmentInput{
		Name: "Finance Department",
	})

	assert.ErrorIs(t, err, ErrDepartmentExists)
}

func TestCreateDepartmentRecordsAudit(t *testing.T) {
	svc, deptRepo, _, auditRepo := newTestDepartmentService()

	deptRepo.On("ExistsByName", mock.Anything, "Library Services").Return(false, nil)
	deptRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(entry *domain.AuditLog) bool {
		return entry.Action == domain.AuditDepartmentCreate
	})).Return(nil)

	department, err := svc.Create(context.Background(), uuid.New(), domain.CreateDepartmentInput{
		Name:        "  Library Services  ",
		Description: "Campus libraries",
	})

	require.NoError(t, err)
	assert.Equal(t, "Library Services", department.Name)
	auditRepo.AssertExpectations(t)
}

func TestDeleteDepartmentBlockedWhileReferenced(t *testing.T) {
	svc, deptRepo, grievanceRepo, _ := newTestDepartmentService()

	deptID := uuid.New()
	deptRepo.On("GetByID", mock.Anything, deptID).Return(&domain.Department{
		ID:   deptID,
		Name: "Finance Department",
	}, nil)
	grievanceRepo.On("CountByDepartment", mock.Anything, "Finance Department").Return(int64(3), nil)

	err := svc.Delete(context.Background(), uuid.New(), deptID)

	assert.ErrorIs(t, err, ErrDepartmentInUse)
	deptRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteDepartmentUnreferenced(t *testing.T) {
	svc, deptRepo, grievanceRepo, auditRepo := newTestDepartmentService()

	deptID := uuid.New()
	deptRepo.On("GetByID", mock.Anything, deptID).Return(&domain.Department{
		ID:   deptID,
		Name: "Old Department",
	}, nil)
	grievanceRepo.On("CountByDepartment", mock.Anything, "Old Department").Return(int64(0), nil)
	deptRepo.On("Delete", mock.Anything, deptID).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := svc.Delete(context.Background(), uuid.New(), deptID)

	require.NoError(t, err)
	deptRepo.AssertExpectations(t)
}

func TestUpdateDepartmentRenameChecksUniqueness(t *testing.T) {
	svc, deptRepo, _, auditRepo := newTestDepartmentService()
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()

	deptID := uuid.New()
	deptRepo.On("GetByID", mock.Anything, deptID).Return(&domain.Department{
		ID:   deptID,
		Name: "Old Name",
	}, nil)
	deptRepo.On("ExistsByName", mock.Anything, "New Name").Return(true, nil)

	_, err := svc.Update(context.Background(), uuid.New(), deptID, domain.UpdateDepartmentInput{
		Name: "New Name",
	})

	assert.ErrorIs(t, err, ErrDepartmentExists)
}
