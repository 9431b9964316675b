package services

import (
	"context"

	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/server/models"
)

type CommentService struct {
	Deps
}

func NewCommentService(d Deps) *CommentService {
	return &CommentService{Deps: d}
}

func (s *CommentService) List(ctx context.Context, videoID, viewerID string, page models.PageRequest) (models.Page[models.CommentView], error) {
	if _, err := s.visibleVideo(ctx, videoID, viewerID); err != nil {
		return models.Page[models.CommentView]{}, err
	}

	page = page.Normalize()
	items, total, err := s.RepoManager.Comments(s.DB).ListByVideo(ctx, videoID, viewerID, page)
	if err != nil {
		return models.Page[models.CommentView]{}, err
	}
	return models.NewPage(items, total, page), nil
}

func (s *CommentService) Add(ctx context.Context, videoID, userID, content string) (*models.Comment, error) {
	if common.IsBlank(content) {
		return nil, common.Validation("content is required")
	}
	if _, err := s.visibleVideo(ctx, videoID, userID); err != nil {
		return nil, err
	}
	return s.RepoManager.Comments(s.DB).Create(ctx, &models.Comment{Content: content, VideoID: videoID, OwnerID: userID})
}

func (s *CommentService) Update(ctx context.Context, id, userID, content string) (*models.Comment, error) {
	if common.IsBlank(content) {
		return nil, common.Validation("content is required")
	}
	if _, err := s.ownComment(ctx, id, userID); err != nil {
		return nil, err
	}
	c, err := s.RepoManager.Comments(s.DB).UpdateContent(ctx, id, content)
	return c, describe(err, "Comment not found")
}

func (s *CommentService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.ownComment(ctx, id, userID); err != nil {
		return err
	}
	return describe(s.RepoManager.Comments(s.DB).Delete(ctx, id), "Comment not found")
}

func (s *CommentService) ownComment(ctx context.Context, id, userID string) (*models.Comment, error) {
	return requireOwner(ctx, id, userID,
		func(ctx context.Context, id string) (*models.Comment, error) {
			c, err := s.RepoManager.Comments(s.DB).GetByID(ctx, id)
			return c, describe(err, "Comment not found")
		},
		func(c *models.Comment) string { return c.OwnerID })
}
