// Package videos persists videos and answers the aggregate queries built on
// them (listings, details, channel statistics).
package videos

import (
	"context"

	"github.com/dmitrijs2005/vidtube/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, v *models.Video) (*models.Video, error)
	GetByID(ctx context.Context, id string) (*models.Video, error)
	GetDetails(ctx context.Context, id, viewerID string) (*models.VideoDetails, error)
	List(ctx context.Context, q models.VideoQuery) ([]models.VideoWithOwner, int64, error)
	Update(ctx context.Context, id, title, description string, thumbnail models.MediaRef) (*models.Video, error)
	SetPublished(ctx context.Context, id string, published bool) (*models.Video, error)
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.DashboardVideo, error)
	ChannelStats(ctx context.Context, ownerID string) (*models.ChannelStats, error)
}
