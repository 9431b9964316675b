package services

import (
	"context"

	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/server/models"
)

// LikeState is returned by LikeService.Toggle.
type LikeState struct {
	IsLiked bool `json:"isLiked"`
}

type LikeService struct {
	Deps
}

func NewLikeService(d Deps) *LikeService {
	return &LikeService{Deps: d}
}

// Toggle likes the target, or removes the like if userID already liked it.
func (s *LikeService) Toggle(ctx context.Context, target models.LikeTarget, targetID, userID string) (*LikeState, error) {
	var err error
	switch target {
	case models.LikeVideo:
		_, err = s.visibleVideo(ctx, targetID, userID)
	case models.LikeComment:
		_, err = s.RepoManager.Comments(s.DB).GetByID(ctx, targetID)
		err = describe(err, "Comment not found")
	case models.LikeTweet:
		_, err = s.RepoManager.Tweets(s.DB).GetByID(ctx, targetID)
		err = describe(err, "Tweet not found")
	default:
		return nil, common.Validation("unknown like target")
	}
	if err != nil {
		return nil, err
	}

	liked, err := s.RepoManager.Likes(s.DB).Toggle(ctx, target, targetID, userID)
	if err != nil {
		return nil, err
	}
	return &LikeState{IsLiked: liked}, nil
}

func (s *LikeService) LikedVideos(ctx context.Context, userID string) ([]models.VideoWithOwner, error) {
	return s.RepoManager.Likes(s.DB).LikedVideos(ctx, userID)
}
