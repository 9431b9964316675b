// Package subscriptions persists channel subscriptions between users.
package subscriptions

import (
	"context"

	"github.com/dmitrijs2005/vidtube/internal/server/models"
)

type Repository interface {
	// Toggle subscribes subscriberID to channelID, or unsubscribes if already
	// subscribed. It reports whether the subscription exists afterwards.
	Toggle(ctx context.Context, subscriberID, channelID string) (bool, error)
	Subscribers(ctx context.Context, channelID string) ([]models.ChannelSummary, error)
	SubscribedChannels(ctx context.Context, subscriberID string) ([]models.ChannelSummary, error)
}
