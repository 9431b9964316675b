package rest

import (
	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/server/auth"
	"github.com/dmitrijs2005/vidtube/internal/server/media"
	"github.com/dmitrijs2005/vidtube/internal/server/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// idParam returns the route parameter name as a canonical UUID.
func idParam(c *fiber.Ctx, name string) (string, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return "", common.Validation("Invalid " + name)
	}
	return id.String(), nil
}

// parseBody decodes a JSON, form or multipart body into out. An empty body
// leaves out untouched.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return common.WrapError(common.ErrorValidation, "Invalid request body", err)
	}
	return nil
}

// formFile opens the multipart file field. A missing field yields a nil file.
// The returned func closes the file and is always safe to call.
func formFile(c *fiber.Ctx, field string) (*media.File, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, func() {}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, common.WrapError(common.ErrorUpload, "Could not read "+field, err)
	}
	return &media.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}

// currentUser returns the identity attached by Gate.
func currentUser(c *fiber.Ctx) (*models.User, error) {
	u, ok := auth.UserFromContext(c.UserContext())
	if !ok {
		return nil, common.Unauthorized("Unauthorized request")
	}
	return u, nil
}

func pageRequest(c *fiber.Ctx) models.PageRequest {
	return models.PageRequest{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", models.DefaultPageLimit)}.Normalize()
}
