// Package likes persists likes on videos, comments and tweets.
package likes

import (
	"context"

	"github.com/dmitrijs2005/vidtube/internal/server/models"
)

type Repository interface {
	// Toggle removes the user's like on the target if present, otherwise adds
	// it. It reports whether the target is liked afterwards.
	Toggle(ctx context.Context, target models.LikeTarget, targetID, userID string) (bool, error)
	LikedVideos(ctx context.Context, userID string) ([]models.VideoWithOwner, error)
}
