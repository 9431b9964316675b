package services

import (
	"context"

	"github.com/dmitrijs2005/vidtube/internal/server/models"
)

// DashboardService reports on the caller's own channel.
type DashboardService struct {
	Deps
}

func NewDashboardService(d Deps) *DashboardService {
	return &DashboardService{Deps: d}
}

func (s *DashboardService) Stats(ctx context.Context, userID string) (*models.ChannelStats, error) {
	return s.RepoManager.Videos(s.DB).ChannelStats(ctx, userID)
}

func (s *DashboardService) Videos(ctx context.Context, userID string) ([]models.DashboardVideo, error) {
	return s.RepoManager.Videos(s.DB).ListByOwner(ctx, userID)
}
