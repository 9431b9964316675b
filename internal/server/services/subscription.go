package services

import (
	"context"

	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/server/models"
)

// SubscriptionState is returned by SubscriptionService.Toggle.
type SubscriptionState struct {
	Subscribed bool `json:"subscribed"`
}

type SubscriptionService struct {
	Deps
}

func NewSubscriptionService(d Deps) *SubscriptionService {
	return &SubscriptionService{Deps: d}
}

func (s *SubscriptionService) Toggle(ctx context.Context, channelID, subscriberID string) (*SubscriptionState, error) {
	if channelID == subscriberID {
		return nil, common.Validation("You cannot subscribe to your own channel")
	}
	if _, err := s.RepoManager.Users(s.DB).GetByID(ctx, channelID); err != nil {
		return nil, describe(err, "Channel does not exist")
	}

	subscribed, err := s.RepoManager.Subscriptions(s.DB).Toggle(ctx, subscriberID, channelID)
	if err != nil {
		return nil, err
	}
	return &SubscriptionState{Subscribed: subscribed}, nil
}

func (s *SubscriptionService) Subscribers(ctx context.Context, channelID string) ([]models.ChannelSummary, error) {
	if _, err := s.RepoManager.Users(s.DB).GetByID(ctx, channelID); err != nil {
		return nil, describe(err, "Channel does not exist")
	}
	return s.RepoManager.Subscriptions(s.DB).Subscribers(ctx, channelID)
}

func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID string) ([]models.ChannelSummary, error) {
	if _, err := s.RepoManager.Users(s.DB).GetByID(ctx, subscriberID); err != nil {
		return nil, describe(err, "User does not exist")
	}
	return s.RepoManager.Subscriptions(s.DB).SubscribedChannels(ctx, subscriberID)
}
