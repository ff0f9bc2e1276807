package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"grievance-portal/internal/domain"
)

func TestGetStatsAggregatesCounts(t *testing.T) {
	grievanceRepo := new(mockGrievanceRepo)
	svc := NewDashboardService(grievanceRepo, nil)

	grievanceRepo.On("CountByStatus", mock.Anything).Return(map[string]int64{
		"pending":      3,
		"in_progress":  2,
		"under_review": 1,
		"resolved":     4,
		"closed":       2,
	}, nil)
	grievanceRepo.On("CountByDepartmentAll", mock.Anything).Return(map[string]int64{
		"Finance Department": 7,
		"Student Housing":    5,
	}, nil)
	grievanceRepo.On("CountByMonth", mock.Anything).Return(map[string]int64{
		"2026-07": 5,
		"2026-08": 7,
	}, nil)

	stats, err := svc.GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.Total)
	assert.Equal(t, int64(6), stats.OpenCount)
	assert.Equal(t, int64(6), stats.ResolvedCount)
	assert.Equal(t, int64(7), stats.ByMonth["2026-08"])
}

func TestExportCSVOneRowPerGrievance(t *testing.T) {
	grievanceRepo := new(mockGrievanceRepo)
	svc := NewDashboardService(grievanceRepo, nil)

	g1 := domain.Grievance{
		ID:         uuid.New(),
		StudentID:  uuid.New(),
		Title:      "Broken projector",
		Department: "Academic Administration",
		Status:     domain.StatusPending,
	}
	g2 := domain.Grievance{
		ID:         uuid.New(),
		StudentID:  uuid.New(),
		Title:      "Fee billed twice",
		Department: "Finance Department",
		Status:     domain.StatusResolved,
	}

	grievanceRepo.On("ListAll", mock.Anything).Return([]domain.Grievance{g1, g2}, nil)
	grievanceRepo.On("CountResponsesPerGrievance", mock.Anything).Return(map[uuid.UUID]int64{g1.ID: 1}, nil)
	grievanceRepo.On("CountAttachmentsPerGrievance", mock.Anything).Return(map[uuid.UUID]int64{g2.ID: 2}, nil)

	var buf bytes.Buffer
	err := svc.ExportCSV(context.Background(), &buf)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "grievance_id", records[0][0])
	assert.Equal(t, "Broken projector", records[1][2])
	assert.Equal(t, "1", records[1][6])
	assert.Equal(t, "0", records[1][7])
	assert.Equal(t, "Resolved", records[2][5])
	assert.Equal(t, "2", records[2][7])

	grievanceRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
