package rest

import (
	"github.com/dmitrijs2005/vidtube/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

func (h *handlers) toggleLike(c *fiber.Ctx, target models.LikeTarget, param string) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, param)
	if err != nil {
		return err
	}
	state, err := h.svc.Likes.Toggle(c.UserContext(), target, id, user.ID)
	if err != nil {
		return err
	}
	message := "Like removed"
	if state.IsLiked {
		message = "Liked successfully"
	}
	return respond(c, fiber.StatusOK, state, message)
}

func (h *handlers) toggleVideoLike(c *fiber.Ctx) error {
	return h.toggleLike(c, models.LikeVideo, "videoId")
}

func (h *handlers) toggleCommentLike(c *fiber.Ctx) error {
	return h.toggleLike(c, models.LikeComment, "commentId")
}

func (h *handlers) toggleTweetLike(c *fiber.Ctx) error {
	return h.toggleLike(c, models.LikeTweet, "tweetId")
}

func (h *handlers) likedVideos(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	videos, err := h.svc.Likes.LikedVideos(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, videos, "Liked videos fetched successfully")
}

func (h *handlers) toggleSubscription(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	channelID, err := idParam(c, "channelId")
	if err != nil {
		return err
	}
	state, err := h.svc.Subscriptions.Toggle(c.UserContext(), channelID, user.ID)
	if err != nil {
		return err
	}
	message := "Unsubscribed successfully"
	if state.Subscribed {
		message = "Subscribed successfully"
	}
	return respond(c, fiber.StatusOK, state, message)
}

func (h *handlers) channelSubscribers(c *fiber.Ctx) error {
	channelID, err := idParam(c, "channelId")
	if err != nil {
		return err
	}
	subs, err := h.svc.Subscriptions.Subscribers(c.UserContext(), channelID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, subs, "Subscribers fetched successfully")
}

func (h *handlers) subscribedChannels(c *fiber.Ctx) error {
	subscriberID, err := idParam(c, "subscriberId")
	if err != nil {
		return err
	}
	channels, err := h.svc.Subscriptions.SubscribedChannels(c.UserContext(), subscriberID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, channels, "Subscribed channels fetched successfully")
}

func (h *handlers) channelStats(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	stats, err := h.svc.Dashboard.Stats(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, stats, "Channel stats fetched successfully")
}

func (h *handlers) channelVideos(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	videos, err := h.svc.Dashboard.Videos(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, videos, "Channel videos fetched successfully")
}
