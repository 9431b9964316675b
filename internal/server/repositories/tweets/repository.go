// Package tweets persists short community posts.
package tweets

import (
	"context"

	"github.com/dmitrijs2005/vidtube/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, t *models.Tweet) (*models.Tweet, error)
	GetByID(ctx context.Context, id string) (*models.Tweet, error)
	ListByOwner(ctx context.Context, ownerID, viewerID string) ([]models.TweetView, error)
	UpdateContent(ctx context.Context, id, content string) (*models.Tweet, error)
	Delete(ctx context.Context, id string) error
}
