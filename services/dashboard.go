package services

import (
	"context"
	"time"

	"wiredleaf-api/models"
)

type StatsRepository interface {
	DashboardStats(ctx context.Context, day time.Time) (models.DashboardStats, error)
}

type DashboardService struct {
	repo StatsRepository
	now  func() time.Time
}

func NewDashboardService(repo StatsRepository) *DashboardService {
	return &DashboardService{repo: repo, now: time.Now}
}

// Stats counts today's meetings against the current UTC date.
func (s *DashboardService) Stats(ctx context.Context) (models.DashboardStats, error) {
	return s.repo.DashboardStats(ctx, s.now().UTC())
}
