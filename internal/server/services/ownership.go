package services

import (
	"context"

	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/server/models"
)

// requireOwner loads a resource and rejects with Forbidden unless userID is
// its owner.
func requireOwner[T any](ctx context.Context, id, userID string,
	load func(context.Context, string) (T, error), owner func(T) string) (T, error) {

	var zero T
	res, err := load(ctx, id)
	if err != nil {
		return zero, err
	}
	if owner(res) != userID {
		return zero, common.Forbidden("You do not have permission to modify this resource")
	}
	return res, nil
}

// visibleVideo loads a video as seen by viewerID. Unpublished videos exist
// for their owner only.
func (d Deps) visibleVideo(ctx context.Context, id, viewerID string) (*models.Video, error) {
	v, err := d.RepoManager.Videos(d.DB).GetByID(ctx, id)
	if err != nil {
		return nil, describe(err, "Video not found")
	}
	if !v.IsPublished && v.OwnerID != viewerID {
		return nil, common.NotFound("Video not found")
	}
	return v, nil
}
