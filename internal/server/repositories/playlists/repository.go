// Package playlists persists user playlists and their video membership.
package playlists

import (
	"context"

	"github.com/dmitrijs2005/vidtube/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Playlist) (*models.Playlist, error)
	GetByID(ctx context.Context, id string) (*models.Playlist, error)
	GetDetails(ctx context.Context, id string) (*models.PlaylistDetails, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Playlist, error)
	Update(ctx context.Context, id, name, description string) (*models.Playlist, error)
	Delete(ctx context.Context, id string) error
	AddVideo(ctx context.Context, playlistID, videoID string) error
	RemoveVideo(ctx context.Context, playlistID, videoID string) error
}
