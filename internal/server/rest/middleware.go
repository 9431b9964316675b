package rest

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/logging"
	"github.com/dmitrijs2005/vidtube/internal/server/auth"
	"github.com/dmitrijs2005/vidtube/internal/server/metrics"
	"github.com/dmitrijs2005/vidtube/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

// IdentityLoader resolves the user id carried by an access token.
type IdentityLoader interface {
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
}

// accessToken returns the access token from the session cookie, or failing
// that from an "Authorization: Bearer" header.
func accessToken(c *fiber.Ctx) string {
	if token := c.Cookies(common.AccessTokenCookieName); token != "" {
		return token
	}
	header := c.Get(common.AuthorizationHeaderName)
	if strings.HasPrefix(header, common.BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, common.BearerPrefix))
	}
	return ""
}

// Gate admits a request only if it carries a valid access token whose user
// still exists. The redacted user is attached to the request context.
func Gate(tokens *auth.TokenIssuer, users IdentityLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := accessToken(c)
		if token == "" {
			return common.Unauthorized("Unauthorized request")
		}

		claims, err := tokens.VerifyAccessToken(token)
		if err != nil {
			if errors.Is(err, common.ErrorInternal) {
				return err
			}
			return common.WrapError(common.ErrorUnauthorized, "Invalid Access Token", err)
		}

		user, err := users.CurrentUser(c.UserContext(), claims.UserID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.WrapError(common.ErrorUnauthorized, "Invalid Access Token", err)
			}
			return err
		}

		c.SetUserContext(auth.ContextWithUser(c.UserContext(), user))
		c.Locals("user", user)
		return c.Next()
	}
}

// AccessLog logs every request and records it in the request metrics. The
// route label is the matched route pattern, not the raw path.
func AccessLog(log logging.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusOf(err)
		}
		route := c.Route().Path
		elapsed := time.Since(start)

		if m != nil {
			m.ObserveRequest(c.Method(), route, status, elapsed)
		}
		log.Info(c.UserContext(), "request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", elapsed,
			"request_id", c.Locals("requestid"),
		)
		return err
	}
}
