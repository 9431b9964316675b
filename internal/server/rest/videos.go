package rest

import (
	"strings"

	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/server/models"
	"github.com/dmitrijs2005/vidtube/internal/server/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type videoRequest struct {
	Title       string  `json:"title" form:"title"`
	Description string  `json:"description" form:"description"`
	Duration    float64 `json:"duration" form:"duration"`
}

// videoQuery reads the listing parameters. sortType is "asc" or "desc";
// anything else sorts descending.
func videoQuery(c *fiber.Ctx) (models.VideoQuery, error) {
	q := models.VideoQuery{
		Query:       strings.TrimSpace(c.Query("query")),
		SortBy:      c.Query("sortBy"),
		SortDesc:    !strings.EqualFold(c.Query("sortType"), "asc"),
		PageRequest: pageRequest(c),
	}
	if owner := c.Query("userId"); owner != "" {
		id, err := uuid.Parse(owner)
		if err != nil {
			return q, common.Validation("Invalid userId")
		}
		q.OwnerID = id.String()
	}
	return q, nil
}

func (h *handlers) listVideos(c *fiber.Ctx) error {
	q, err := videoQuery(c)
	if err != nil {
		return err
	}
	page, err := h.svc.Videos.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, page, "Videos fetched successfully")
}

func (h *handlers) publishVideo(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req videoRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	videoFile, closeVideo, err := formFile(c, "videoFile")
	defer closeVideo()
	if err != nil {
		return err
	}
	thumbnail, closeThumb, err := formFile(c, "thumbnail")
	defer closeThumb()
	if err != nil {
		return err
	}

	v, err := h.svc.Videos.Publish(c.UserContext(), user.ID, services.PublishVideoInput{
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, v, "Video published successfully")
}

func (h *handlers) getVideo(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "videoId")
	if err != nil {
		return err
	}
	v, err := h.svc.Videos.Get(c.UserContext(), id, user.ID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, v, "Video fetched successfully")
}

func (h *handlers) updateVideo(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "videoId")
	if err != nil {
		return err
	}
	var req videoRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	thumbnail, closeThumb, err := formFile(c, "thumbnail")
	defer closeThumb()
	if err != nil {
		return err
	}

	v, err := h.svc.Videos.Update(c.UserContext(), id, user.ID, services.UpdateVideoInput{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, v, "Video updated successfully")
}

func (h *handlers) deleteVideo(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "videoId")
	if err != nil {
		return err
	}
	if err := h.svc.Videos.Delete(c.UserContext(), id, user.ID); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{}, "Video deleted successfully")
}

func (h *handlers) togglePublish(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "videoId")
	if err != nil {
		return err
	}
	v, err := h.svc.Videos.TogglePublish(c.UserContext(), id, user.ID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, v, "Publish status toggled successfully")
}
