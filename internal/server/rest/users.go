package rest

import (
	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	FullName string `json:"fullName" form:"fullName"`
	Password string `json:"password" form:"password"`
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" form:"refreshToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" form:"oldPassword"`
	NewPassword string `json:"newPassword" form:"newPassword"`
}

type updateAccountRequest struct {
	FullName string `json:"fullName" form:"fullName"`
	Email    string `json:"email" form:"email"`
}

func (h *handlers) healthcheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Everything is Ok"})
}

func (h *handlers) register(c *fiber.Ctx) error {
	var req registerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	avatar, closeAvatar, err := formFile(c, "avatar")
	defer closeAvatar()
	if err != nil {
		return err
	}
	cover, closeCover, err := formFile(c, "coverImage")
	defer closeCover()
	if err != nil {
		return err
	}

	user, err := h.svc.Users.Register(c.UserContext(), services.RegisterInput{
		Username:   req.Username,
		Email:      req.Email,
		FullName:   req.FullName,
		Password:   req.Password,
		Avatar:     avatar,
		CoverImage: cover,
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, user, "User registered Successfully")
}

func (h *handlers) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	sess, err := h.svc.Users.Login(c.UserContext(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}
	setSessionCookies(c, sess.AccessToken, sess.RefreshToken)
	return respond(c, fiber.StatusOK, sess, "User logged In Successfully")
}

func (h *handlers) logout(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.svc.Users.Logout(c.UserContext(), user.ID); err != nil {
		return err
	}
	clearSessionCookies(c)
	return respond(c, fiber.StatusOK, fiber.Map{}, "User logged Out")
}

// refreshToken accepts the refresh token from its cookie or, failing that,
// from the request body.
func (h *handlers) refreshToken(c *fiber.Ctx) error {
	token := c.Cookies(common.RefreshTokenCookieName)
	if token == "" {
		var req refreshRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}
		token = req.RefreshToken
	}

	pair, err := h.svc.Users.RefreshAccessToken(c.UserContext(), token)
	if err != nil {
		return err
	}
	setSessionCookies(c, pair.AccessToken, pair.RefreshToken)
	return respond(c, fiber.StatusOK, pair, "Access token refreshed")
}

func (h *handlers) changePassword(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.svc.Users.ChangePassword(c.UserContext(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{}, "Password changed successfully")
}

func (h *handlers) currentUser(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, user, "User fetched successfully")
}

func (h *handlers) updateAccount(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req updateAccountRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	updated, err := h.svc.Users.UpdateAccount(c.UserContext(), user.ID, req.FullName, req.Email)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, updated, "Account details updated successfully")
}

func (h *handlers) updateAvatar(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	avatar, closeAvatar, err := formFile(c, "avatar")
	defer closeAvatar()
	if err != nil {
		return err
	}
	updated, err := h.svc.Users.UpdateAvatar(c.UserContext(), user.ID, avatar)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, updated, "Avatar image updated successfully")
}

func (h *handlers) updateCoverImage(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	cover, closeCover, err := formFile(c, "coverImage")
	defer closeCover()
	if err != nil {
		return err
	}
	updated, err := h.svc.Users.UpdateCoverImage(c.UserContext(), user.ID, cover)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, updated, "Cover image updated successfully")
}

func (h *handlers) channelProfile(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	username := c.Params("username")
	if common.IsBlank(username) {
		return common.Validation("username is missing")
	}
	profile, err := h.svc.Users.ChannelProfile(c.UserContext(), username, user.ID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, profile, "User channel fetched successfully")
}

func (h *handlers) watchHistory(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	history, err := h.svc.Users.WatchHistory(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, history, "Watch history fetched successfully")
}
