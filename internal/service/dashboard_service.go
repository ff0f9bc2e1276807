package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	"grievance-portal/internal/domain"
	"grievance-portal/internal/repository"
)

const dashboardStatsKey = "dashboard:stats"

// DashboardService aggregates grievance counts for the admin dashboard and
// produces the CSV report download.
type DashboardService interface {
	GetStats(ctx context.Context) (*domain.GrievanceStats, error)
	ExportCSV(ctx context.Context, w io.Writer) error
}

type dashboardService struct {
	grievanceRepo repository.GrievanceRepository
	redis         *redis.Client
}

func NewDashboardService(grievanceRepo repository.GrievanceRepository, redis *redis.Client) DashboardService {
	return &dashboardService{
		grievanceRepo: grievanceRepo,
		redis:         redis,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (*domain.GrievanceStats, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, dashboardStatsKey).Result(); err == nil {
			var stats domain.GrievanceStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	byStatus, err := s.grievanceRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	byDepartment, err := s.grievanceRepo.CountByDepartmentAll(ctx)
	if err != nil {
		return nil, err
	}

	byMonth, err := s.grievanceRepo.CountByMonth(ctx)
	if err != nil {
		return nil, err
	}

	var total, open, resolved int64
	for status, count := range byStatus {
		total += count
		switch domain.GrievanceStatus(status) {
		case domain.StatusResolved, domain.StatusClosed:
			resolved += count
		default:
			open += count
		}
	}

	stats := &domain.GrievanceStats{
		Total:         total,
		ByStatus:      byStatus,
		ByDepartment:  byDepartment,
		ByMonth:       byMonth,
		OpenCount:     open,
		ResolvedCount: resolved,
	}

	if s.redis != nil {
		if statsJSON, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, dashboardStatsKey, statsJSON, 5*time.Minute).Err()
		}
	}

	return stats, nil
}

// ExportCSV streams every grievance as one CSV row, newest first. Responses
// and attachments are summarised as counts so the report stays one row per
// grievance, fetched with three queries total.
func (s *dashboardService) ExportCSV(ctx context.Context, w io.Writer) error {
	grievances, err := s.grievanceRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	responseCounts, err := s.grievanceRepo.CountResponsesPerGrievance(ctx)
	if err != nil {
		return err
	}
	attachmentCounts, err := s.grievanceRepo.CountAttachmentsPerGrievance(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	header := []string{"grievance_id", "student_id", "title", "department", "status", "status_label", "responses", "attachments", "created_at", "updated_at"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i := range grievances {
		g := &grievances[i]
		row := []string{
			g.ID.String(),
			g.StudentID.String(),
			g.Title,
			g.Department,
			string(g.Status),
			g.Status.Label(),
			fmt.Sprintf("%d", responseCounts[g.ID]),
			fmt.Sprintf("%d", attachmentCounts[g.ID]),
			g.CreatedAt.UTC().Format(time.RFC3339),
			g.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
