package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"grievance-portal/internal/domain"
	"grievance-portal/internal/repository"
)

type mockGrievanceRepo struct {
	mock.Mock
}

func (m *mockGrievanceRepo) Create(ctx context.Context, grievance *domain.Grievance, initial *domain.StatusEntry) error {
	args := m.Called(ctx, grievance, initial)
	return args.Error(0)
}

func (m *mockGrievanceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Grievance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Grievance), args.Error(1)
}

func (m *mockGrievanceRepo) ListAll(ctx context.Context) ([]domain.Grievance, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Grievance), args.Error(1)
}

func (m *mockGrievanceRepo) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]domain.Grievance, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]domain.Grievance), args.Error(1)
}

func (m *mockGrievanceRepo) ListByDepartment(ctx context.Context, department string) ([]domain.Grievance, error) {
	args := m.Called(ctx, department)
	return args.Get(0).([]domain.Grievance), args.Error(1)
}

func (m *mockGrievanceRepo) ListOpen(ctx context.Context) ([]domain.Grievance, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Grievance), args.Error(1)
}

func (m *mockGrievanceRepo) ListResolved(ctx context.Context) ([]domain.Grievance, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Grievance), args.Error(1)
}

func (m *mockGrievanceRepo) AppendStatus(ctx context.Context, grievanceID uuid.UUID, entry *domain.StatusEntry) error {
	args := m.Called(ctx, grievanceID, entry)
	return args.Error(0)
}

func (m *mockGrievanceRepo) RecordResponse(ctx context.Context, response *domain.Response, entry *domain.StatusEntry, notif *domain.Notification) error {
	args := m.Called(ctx, response, entry, notif)
	return args.Error(0)
}

func (m *mockGrievanceRepo) AddAttachment(ctx context.Context, attachment *domain.Attachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

func (m *mockGrievanceRepo) CountByStudent(ctx context.Context, studentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockGrievanceRepo) CountByDepartment(ctx context.Context, department string) (int64, error) {
	args := m.Called(ctx, department)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockGrievanceRepo) DistinctDepartments(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockGrievanceRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *mockGrievanceRepo) CountByDepartmentAll(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *mockGrievanceRepo) CountByMonth(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *mockGrievanceRepo) CountResponsesPerGrievance(ctx context.Context) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

func (m *mockGrievanceRepo) CountAttachmentsPerGrievance(ctx context.Context) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

type mockDepartmentRepo struct {
	mock.Mock
}

func (m *mockDepartmentRepo) Create(ctx context.Context, department *domain.Department) error {
	args := m.Called(ctx, department)
	return args.Error(0)
}

func (m *mockDepartmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *mockDepartmentRepo) GetByName(ctx context.Context, name string) (*domain.Department, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *mockDepartmentRepo) ListAll(ctx context.Context) ([]domain.Department, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Department), args.Error(1)
}

func (m *mockDepartmentRepo) Update(ctx context.Context, department *domain.Department) error {
	args := m.Called(ctx, department)
	return args.Error(0)
}

func (m *mockDepartmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockDepartmentRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ListAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepo) ListByRole(ctx context.Context, role string) ([]domain.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]domain.User), args.Error(1)
}

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) Create(ctx context.Context, session *repository.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*repository.Session, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Session), args.Error(1)
}

func (m *mockSessionRepo) Revoke(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSessionRepo) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockAuditLogRepo struct {
	mock.Mock
}

func (m *mockAuditLogRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *mockAuditLogRepo) ListRecent(ctx context.Context, params domain.PaginationParams) ([]domain.AuditLog, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.AuditLog), args.Get(1).(int64), args.Error(2)
}

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, notif *domain.Notification) error {
	args := m.Called(ctx, notif)
	return args.Error(0)
}

func (m *mockNotificationRepo) ListByRole(ctx context.Context, role string, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, role, unreadOnly, params)
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *mockNotificationRepo) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockNotificationRepo) MarkAllAsRead(ctx context.Context, role string) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, role string) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Available() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *mockStorage) Put(ctx context.Context, path string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, path, reader, size, contentType)
	return args.Error(0)
}

func (m *mockStorage) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *mockStorage) PublicURL(path string) string {
	args := m.Called(path)
	return args.String(0)
}

type mockEmail struct {
	mock.Mock
}

func (m *mockEmail) SendGrievanceSubmitted(ctx context.Context, toEmail, grievanceID, title string) error {
	args := m.Called(ctx, toEmail, grievanceID, title)
	return args.Error(0)
}

func (m *mockEmail) SendStatusUpdate(ctx context.Context, toEmail, grievanceID, title, statusLabel string) error {
	args := m.Called(ctx, toEmail, grievanceID, title, statusLabel)
	return args.Error(0)
}
