package services

import (
	"context"

	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/server/models"
)

type PlaylistService struct {
	Deps
}

func NewPlaylistService(d Deps) *PlaylistService {
	return &PlaylistService{Deps: d}
}

func (s *PlaylistService) Create(ctx context.Context, userID, name, description string) (*models.Playlist, error) {
	if common.IsBlank(name) || common.IsBlank(description) {
		return nil, common.Validation("name and description are required")
	}
	return s.RepoManager.Playlists(s.DB).Create(ctx, &models.Playlist{Name: name, Description: description, OwnerID: userID})
}

func (s *PlaylistService) Get(ctx context.Context, id string) (*models.PlaylistDetails, error) {
	p, err := s.RepoManager.Playlists(s.DB).GetDetails(ctx, id)
	return p, describe(err, "Playlist not found")
}

func (s *PlaylistService) ListByUser(ctx context.Context, ownerID string) ([]models.Playlist, error) {
	if _, err := s.RepoManager.Users(s.DB).GetByID(ctx, ownerID); err != nil {
		return nil, describe(err, "User does not exist")
	}
	return s.RepoManager.Playlists(s.DB).ListByOwner(ctx, ownerID)
}

func (s *PlaylistService) Update(ctx context.Context, id, userID, name, description string) (*models.Playlist, error) {
	if common.IsBlank(name) || common.IsBlank(description) {
		return nil, common.Validation("name and description are required")
	}
	if _, err := s.ownPlaylist(ctx, id, userID); err != nil {
		return nil, err
	}
	p, err := s.RepoManager.Playlists(s.DB).Update(ctx, id, name, description)
	return p, describe(err, "Playlist not found")
}

func (s *PlaylistService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.ownPlaylist(ctx, id, userID); err != nil {
		return err
	}
	return describe(s.RepoManager.Playlists(s.DB).Delete(ctx, id), "Playlist not found")
}

// AddVideo appends videoID to the playlist. Only the playlist owner may do
// so; the video may belong to anyone but must be visible to them. Adding a video twice is a no-op.
func (s *PlaylistService) AddVideo(ctx context.Context, videoID, playlistID, userID string) (*models.Playlist, error) {
	if _, err := s.ownPlaylist(ctx, playlistID, userID); err != nil {
		return nil, err
	}
	if _, err := s.visibleVideo(ctx, videoID, userID); err != nil {
		return nil, err
	}

	repo := s.RepoManager.Playlists(s.DB)
	if err := repo.AddVideo(ctx, playlistID, videoID); err != nil {
		return nil, err
	}
	p, err := repo.GetByID(ctx, playlistID)
	return p, describe(err, "Playlist not found")
}

// RemoveVideo drops videoID from the playlist. Removing a video that is not
// in the playlist is a no-op.
func (s *PlaylistService) RemoveVideo(ctx context.Context, videoID, playlistID, userID string) (*models.Playlist, error) {
	if _, err := s.ownPlaylist(ctx, playlistID, userID); err != nil {
		return nil, err
	}

	repo := s.RepoManager.Playlists(s.DB)
	if err := repo.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, err
	}
	p, err := repo.GetByID(ctx, playlistID)
	return p, describe(err, "Playlist not found")
}

func (s *PlaylistService) ownPlaylist(ctx context.Context, id, userID string) (*models.Playlist, error) {
	return requireOwner(ctx, id, userID,
		func(ctx context.Context, id string) (*models.Playlist, error) {
			p, err := s.RepoManager.Playlists(s.DB).GetByID(ctx, id)
			return p, describe(err, "Playlist not found")
		},
		func(p *models.Playlist) string { return p.OwnerID })
}
