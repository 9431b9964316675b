package services

import (
	"context"

	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/dbx"
	"github.com/dmitrijs2005/vidtube/internal/logging"
	"github.com/dmitrijs2005/vidtube/internal/server/media"
	"github.com/dmitrijs2005/vidtube/internal/server/models"
)

type PublishVideoInput struct {
	Title       string
	Description string
	Duration    float64
	VideoFile   *media.File
	Thumbnail   *media.File
}

type UpdateVideoInput struct {
	Title       string
	Description string
	Thumbnail   *media.File
}

type VideoService struct {
	Deps
	log logging.Logger
}

func NewVideoService(d Deps) *VideoService {
	return &VideoService{Deps: d, log: d.logger("videos")}
}

func (s *VideoService) List(ctx context.Context, q models.VideoQuery) (models.Page[models.VideoWithOwner], error) {
	if q.SortBy == "" {
		q.SortBy = "createdAt"
		q.SortDesc = true
	}
	if _, ok := models.VideoSortFields[q.SortBy]; !ok {
		return models.Page[models.VideoWithOwner]{}, common.Validation("sortBy must be one of createdAt, views, duration, title")
	}
	q.PageRequest = q.PageRequest.Normalize()

	items, total, err := s.RepoManager.Videos(s.DB).List(ctx, q)
	if err != nil {
		return models.Page[models.VideoWithOwner]{}, err
	}
	return models.NewPage(items, total, q.PageRequest), nil
}

// Publish uploads the video and its thumbnail and creates a published video
// owned by ownerID.
func (s *VideoService) Publish(ctx context.Context, ownerID string, in PublishVideoInput) (*models.Video, error) {
	if common.IsBlank(in.Title) || common.IsBlank(in.Description) {
		return nil, common.Validation("title and description are required")
	}
	if in.VideoFile == nil {
		return nil, common.Validation("Video file is required")
	}
	if in.Thumbnail == nil {
		return nil, common.Validation("Thumbnail is required")
	}
	if in.Duration < 0 {
		return nil, common.Validation("duration must not be negative")
	}

	file, err := upload(ctx, s.Media, media.FolderVideos, in.VideoFile, "Error while uploading video")
	if err != nil {
		return nil, err
	}
	thumb, err := upload(ctx, s.Media, media.FolderThumbnails, in.Thumbnail, "Error while uploading thumbnail")
	if err != nil {
		discard(ctx, s.Media, s.log, file.PublicID)
		return nil, err
	}

	v, err := s.RepoManager.Videos(s.DB).Create(ctx, &models.Video{
		VideoFile:   file,
		Thumbnail:   thumb,
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Duration:    in.Duration,
		IsPublished: true,
	})
	if err != nil {
		discard(ctx, s.Media, s.log, file.PublicID, thumb.PublicID)
		return nil, err
	}

	s.log.Info(ctx, "video published", "video_id", v.ID, "owner_id", ownerID)
	return v, nil
}

// Get returns a video as seen by viewerID, counting the view and recording
// it in the viewer's watch history. Unpublished videos are visible to their
// owner only.
func (s *VideoService) Get(ctx context.Context, id, viewerID string) (*models.VideoDetails, error) {
	if _, err := s.visibleVideo(ctx, id, viewerID); err != nil {
		return nil, err
	}

	err := dbx.WithTx(ctx, s.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.RepoManager.Videos(tx).IncrementViews(ctx, id); err != nil {
			return err
		}
		return s.RepoManager.Users(tx).AddToWatchHistory(ctx, viewerID, id)
	})
	if err != nil {
		return nil, err
	}

	d, err := s.RepoManager.Videos(s.DB).GetDetails(ctx, id, viewerID)
	if err != nil {
		return nil, describe(err, "Video not found")
	}
	return d, nil
}

// Update changes title, description and optionally the thumbnail. The
// replaced thumbnail blob is deleted best-effort.
func (s *VideoService) Update(ctx context.Context, id, userID string, in UpdateVideoInput) (*models.Video, error) {
	if common.IsBlank(in.Title) || common.IsBlank(in.Description) {
		return nil, common.Validation("title and description are required")
	}

	v, err := s.ownVideo(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	thumb := v.Thumbnail
	if in.Thumbnail != nil {
		thumb, err = upload(ctx, s.Media, media.FolderThumbnails, in.Thumbnail, "Error while uploading thumbnail")
		if err != nil {
			return nil, err
		}
	}

	updated, err := s.RepoManager.Videos(s.DB).Update(ctx, id, in.Title, in.Description, thumb)
	if err != nil {
		if in.Thumbnail != nil {
			discard(ctx, s.Media, s.log, thumb.PublicID)
		}
		return nil, describe(err, "Video not found")
	}

	if in.Thumbnail != nil {
		discard(ctx, s.Media, s.log, v.Thumbnail.PublicID)
	}
	return updated, nil
}

// Delete removes the video row, then its blobs best-effort.
func (s *VideoService) Delete(ctx context.Context, id, userID string) error {
	v, err := s.ownVideo(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.RepoManager.Videos(s.DB).Delete(ctx, id); err != nil {
		return describe(err, "Video not found")
	}
	discard(ctx, s.Media, s.log, v.VideoFile.PublicID, v.Thumbnail.PublicID)
	return nil
}

func (s *VideoService) TogglePublish(ctx context.Context, id, userID string) (*models.Video, error) {
	v, err := s.ownVideo(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	updated, err := s.RepoManager.Videos(s.DB).SetPublished(ctx, id, !v.IsPublished)
	if err != nil {
		return nil, describe(err, "Video not found")
	}
	return updated, nil
}

func (s *VideoService) ownVideo(ctx context.Context, id, userID string) (*models.Video, error) {
	return requireOwner(ctx, id, userID,
		func(ctx context.Context, id string) (*models.Video, error) {
			v, err := s.RepoManager.Videos(s.DB).GetByID(ctx, id)
			return v, describe(err, "Video not found")
		},
		func(v *models.Video) string { return v.OwnerID })
}
