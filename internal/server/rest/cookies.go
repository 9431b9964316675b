package rest

import (
	"time"

	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/gofiber/fiber/v2"
)

func sessionCookie(name, value string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   true,
	}
}

// setSessionCookies stores both tokens as HttpOnly, Secure session cookies.
func setSessionCookies(c *fiber.Ctx, access, refresh string) {
	c.Cookie(sessionCookie(common.AccessTokenCookieName, access))
	c.Cookie(sessionCookie(common.RefreshTokenCookieName, refresh))
}

func clearSessionCookies(c *fiber.Ctx) {
	for _, name := range []string{common.AccessTokenCookieName, common.RefreshTokenCookieName} {
		ck := sessionCookie(name, "")
		ck.Expires = time.Unix(0, 0)
		c.Cookie(ck)
	}
}
