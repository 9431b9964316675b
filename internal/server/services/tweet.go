package services

import (
	"context"

	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/server/models"
)

type TweetService struct {
	Deps
}

func NewTweetService(d Deps) *TweetService {
	return &TweetService{Deps: d}
}

func (s *TweetService) Create(ctx context.Context, userID, content string) (*models.Tweet, error) {
	if common.IsBlank(content) {
		return nil, common.Validation("content is required")
	}
	return s.RepoManager.Tweets(s.DB).Create(ctx, &models.Tweet{Content: content, OwnerID: userID})
}

// ListByUser returns the tweets of ownerID, newest first, with like state
// relative to viewerID.
func (s *TweetService) ListByUser(ctx context.Context, ownerID, viewerID string) ([]models.TweetView, error) {
	if _, err := s.RepoManager.Users(s.DB).GetByID(ctx, ownerID); err != nil {
		return nil, describe(err, "User does not exist")
	}
	return s.RepoManager.Tweets(s.DB).ListByOwner(ctx, ownerID, viewerID)
}

func (s *TweetService) Update(ctx context.Context, id, userID, content string) (*models.Tweet, error) {
	if common.IsBlank(content) {
		return nil, common.Validation("content is required")
	}
	if _, err := s.ownTweet(ctx, id, userID); err != nil {
		return nil, err
	}
	t, err := s.RepoManager.Tweets(s.DB).UpdateContent(ctx, id, content)
	return t, describe(err, "Tweet not found")
}

func (s *TweetService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.ownTweet(ctx, id, userID); err != nil {
		return err
	}
	return describe(s.RepoManager.Tweets(s.DB).Delete(ctx, id), "Tweet not found")
}

func (s *TweetService) ownTweet(ctx context.Context, id, userID string) (*models.Tweet, error) {
	return requireOwner(ctx, id, userID,
		func(ctx context.Context, id string) (*models.Tweet, error) {
			t, err := s.RepoManager.Tweets(s.DB).GetByID(ctx, id)
			return t, describe(err, "Tweet not found")
		},
		func(t *models.Tweet) string { return t.OwnerID })
}
