package rest

import (
	"github.com/gofiber/fiber/v2"
)

type contentRequest struct {
	Content string `json:"content" form:"content"`
}

type playlistRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

func (h *handlers) listComments(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	videoID, err := idParam(c, "videoId")
	if err != nil {
		return err
	}
	page, err := h.svc.Comments.List(c.UserContext(), videoID, user.ID, pageRequest(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, page, "Comments fetched successfully")
}

func (h *handlers) addComment(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	videoID, err := idParam(c, "videoId")
	if err != nil {
		return err
	}
	var req contentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	comment, err := h.svc.Comments.Add(c.UserContext(), videoID, user.ID, req.Content)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, comment, "Comment added successfully")
}

func (h *handlers) updateComment(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "commentId")
	if err != nil {
		return err
	}
	var req contentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	comment, err := h.svc.Comments.Update(c.UserContext(), id, user.ID, req.Content)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, comment, "Comment updated successfully")
}

func (h *handlers) deleteComment(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "commentId")
	if err != nil {
		return err
	}
	if err := h.svc.Comments.Delete(c.UserContext(), id, user.ID); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{}, "Comment deleted successfully")
}

func (h *handlers) createTweet(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req contentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	tweet, err := h.svc.Tweets.Create(c.UserContext(), user.ID, req.Content)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, tweet, "Tweet created successfully")
}

func (h *handlers) userTweets(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	ownerID, err := idParam(c, "userId")
	if err != nil {
		return err
	}
	tweets, err := h.svc.Tweets.ListByUser(c.UserContext(), ownerID, user.ID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, tweets, "Tweets fetched successfully")
}

func (h *handlers) updateTweet(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "tweetId")
	if err != nil {
		return err
	}
	var req contentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	tweet, err := h.svc.Tweets.Update(c.UserContext(), id, user.ID, req.Content)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, tweet, "Tweet updated successfully")
}

func (h *handlers) deleteTweet(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "tweetId")
	if err != nil {
		return err
	}
	if err := h.svc.Tweets.Delete(c.UserContext(), id, user.ID); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{}, "Tweet deleted successfully")
}

func (h *handlers) createPlaylist(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req playlistRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	p, err := h.svc.Playlists.Create(c.UserContext(), user.ID, req.Name, req.Description)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, p, "Playlist created successfully")
}

func (h *handlers) getPlaylist(c *fiber.Ctx) error {
	id, err := idParam(c, "playlistId")
	if err != nil {
		return err
	}
	p, err := h.svc.Playlists.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, p, "Playlist fetched successfully")
}

func (h *handlers) updatePlaylist(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "playlistId")
	if err != nil {
		return err
	}
	var req playlistRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	p, err := h.svc.Playlists.Update(c.UserContext(), id, user.ID, req.Name, req.Description)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, p, "Playlist updated successfully")
}

func (h *handlers) deletePlaylist(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "playlistId")
	if err != nil {
		return err
	}
	if err := h.svc.Playlists.Delete(c.UserContext(), id, user.ID); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{}, "Playlist deleted successfully")
}

func (h *handlers) addToPlaylist(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	videoID, err := idParam(c, "videoId")
	if err != nil {
		return err
	}
	playlistID, err := idParam(c, "playlistId")
	if err != nil {
		return err
	}
	p, err := h.svc.Playlists.AddVideo(c.UserContext(), videoID, playlistID, user.ID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, p, "Video added to playlist")
}

func (h *handlers) removeFromPlaylist(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	videoID, err := idParam(c, "videoId")
	if err != nil {
		return err
	}
	playlistID, err := idParam(c, "playlistId")
	if err != nil {
		return err
	}
	p, err := h.svc.Playlists.RemoveVideo(c.UserContext(), videoID, playlistID, user.ID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, p, "Video removed from playlist")
}

func (h *handlers) userPlaylists(c *fiber.Ctx) error {
	ownerID, err := idParam(c, "userId")
	if err != nil {
		return err
	}
	lists, err := h.svc.Playlists.ListByUser(c.UserContext(), ownerID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, lists, "Playlists fetched successfully")
}
