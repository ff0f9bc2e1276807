package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grievance-portal/internal/domain"
)

func TestDepartmentExistsByName(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDepartmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM departments WHERE name = $1)")).
		WithArgs("Finance Department").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByName(context.Background(), "Finance Department")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentGetByNameMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDepartmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM departments WHERE name = $1")).
		WillReturnRows(sqlmock.NewRows([]string{"department_id"}))

	department, err := repo.GetByName(context.Background(), "Nobody Knows")

	require.NoError(t, err)
	assert.Nil(t, department)
}

func TestDepartmentCreateReturnsTimestamps(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDepartmentRepository(db)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO departments").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	department := &domain.Department{ID: uuid.New(), Name: "Library Services"}
	err := repo.Create(context.Background(), department)

	require.NoError(t, err)
	assert.Equal(t, now, department.CreatedAt)
}
