package services

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/logging"
	"github.com/dmitrijs2005/vidtube/internal/server/media"
	"github.com/dmitrijs2005/vidtube/internal/server/models"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Session is the result of a successful login.
type Session struct {
	User *models.User `json:"user"`
	TokenPair
}

type RegisterInput struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	Avatar     *media.File
	CoverImage *media.File
}

// UserService is the session manager plus the profile operations of the
// authenticated user.
type UserService struct {
	Deps
	log logging.Logger
}

func NewUserService(d Deps) *UserService {
	return &UserService{Deps: d, log: d.logger("users")}
}

// Register creates an identity. The password is hashed before it is stored
// and the returned user carries no credentials.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (u *models.User, err error) {
	defer func() { s.Metrics.AuthEvent("register", err) }()

	if common.IsBlank(in.Username) || common.IsBlank(in.Email) || common.IsBlank(in.FullName) || common.IsBlank(in.Password) {
		return nil, common.Validation("All fields are required")
	}

	username := common.NormalizeIdentifier(in.Username)
	email := common.NormalizeIdentifier(in.Email)

	repo := s.RepoManager.Users(s.DB)
	exists, err := repo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.Conflict("User with email or username already exists")
	}

	if in.Avatar == nil {
		return nil, common.Validation("Avatar file is required")
	}

	avatar, err := upload(ctx, s.Media, media.FolderAvatars, in.Avatar, "Error while uploading avatar")
	if err != nil {
		return nil, err
	}

	var cover *models.MediaRef
	if in.CoverImage != nil {
		ref, err := upload(ctx, s.Media, media.FolderCovers, in.CoverImage, "Error while uploading cover image")
		if err != nil {
			discard(ctx, s.Media, s.log, avatar.PublicID)
			return nil, err
		}
		cover = &ref
	}

	user := &models.User{
		Username:   username,
		Email:      email,
		FullName:   in.FullName,
		Avatar:     avatar,
		CoverImage: cover,
	}
	user.SetPassword(in.Password)
	if err := s.hashIfModified(user); err != nil {
		return nil, err
	}

	created, err := repo.Create(ctx, user)
	if err != nil {
		ids := []string{avatar.PublicID}
		if cover != nil {
			ids = append(ids, cover.PublicID)
		}
		discard(ctx, s.Media, s.log, ids...)
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.WrapError(common.ErrorConflict, "User with email or username already exists", err)
		}
		return nil, err
	}

	s.log.Info(ctx, "user registered", "user_id", created.ID)
	return created.Redacted(), nil
}

// Login checks the password of the user named by username or email and
// starts a session. The stored refresh token is overwritten, which ends any
// previous session.
func (s *UserService) Login(ctx context.Context, username, email, password string) (sess *Session, err error) {
	defer func() { s.Metrics.AuthEvent("login", err) }()

	if common.IsBlank(username) && common.IsBlank(email) {
		return nil, common.Validation("username or email is required")
	}

	repo := s.RepoManager.Users(s.DB)
	user, err := repo.GetByLogin(ctx, common.NormalizeIdentifier(username), common.NormalizeIdentifier(email))
	if err != nil {
		return nil, describe(err, "User does not exist")
	}

	if !s.Hasher.Verify(password, user.PasswordHash) {
		return nil, common.Unauthorized("Invalid user credentials")
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}
	if err := repo.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user logged in", "user_id", user.ID)
	return &Session{User: user.Redacted(), TokenPair: *pair}, nil
}

// Logout clears the stored refresh token. Logging out twice is not an error.
func (s *UserService) Logout(ctx context.Context, userID string) (err error) {
	defer func() { s.Metrics.AuthEvent("logout", err) }()

	err = s.RepoManager.Users(s.DB).SetRefreshToken(ctx, userID, "")
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return nil
}

// RefreshAccessToken rotates a refresh token. The presented token must be
// the one currently stored for its user; the swap to the new token is
// conditional on that, so of two concurrent refreshes with the same token at
// most one succeeds.
func (s *UserService) RefreshAccessToken(ctx context.Context, token string) (pair *TokenPair, err error) {
	defer func() { s.Metrics.AuthEvent("refresh", err) }()

	if common.IsBlank(token) {
		return nil, common.WrapError(common.ErrorUnauthorized, "unauthorized request", common.ErrRefreshTokenMissing)
	}

	claims, err := s.Tokens.VerifyRefreshToken(token)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, common.WrapError(common.ErrorUnauthorized, "Refresh token is expired", err)
		}
		if errors.Is(err, common.ErrorInternal) {
			return nil, err
		}
		return nil, common.WrapError(common.ErrorUnauthorized, "Invalid refresh token", err)
	}

	repo := s.RepoManager.Users(s.DB)
	user, err := repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.WrapError(common.ErrorUnauthorized, "Invalid refresh token", err)
		}
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(user.RefreshToken), []byte(token)) != 1 {
		s.log.Warn(ctx, "refresh token mismatch", "user_id", user.ID)
		return nil, common.WrapError(common.ErrorUnauthorized, "Refresh token is expired or used", common.ErrRefreshTokenReused)
	}

	pair, err = s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	swapped, err := repo.RotateRefreshToken(ctx, user.ID, token, pair.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !swapped {
		s.log.Warn(ctx, "refresh token rotated concurrently", "user_id", user.ID)
		return nil, common.WrapError(common.ErrorUnauthorized, "Refresh token is expired or used", common.ErrRefreshTokenReused)
	}

	return pair, nil
}

// ChangePassword replaces the password after checking the old one. Issued
// tokens stay valid.
func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) (err error) {
	defer func() { s.Metrics.AuthEvent("change_password", err) }()

	if oldPassword == "" || common.IsBlank(newPassword) {
		return common.Validation("oldPassword and newPassword are required")
	}

	repo := s.RepoManager.Users(s.DB)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return describe(err, "User does not exist")
	}

	if !s.Hasher.Verify(oldPassword, user.PasswordHash) {
		return common.Unauthorized("Invalid old password")
	}

	user.SetPassword(newPassword)
	if err := s.hashIfModified(user); err != nil {
		return err
	}
	return repo.UpdatePassword(ctx, user.ID, user.PasswordHash)
}

func (s *UserService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.RepoManager.Users(s.DB).GetByID(ctx, userID)
	if err != nil {
		return nil, describe(err, "User does not exist")
	}
	return user.Redacted(), nil
}

// UpdateAccount changes full name and/or email. An omitted field keeps its
// current value.
func (s *UserService) UpdateAccount(ctx context.Context, userID, fullName, email string) (*models.User, error) {
	if common.IsBlank(fullName) && common.IsBlank(email) {
		return nil, common.Validation("fullName or email is required")
	}

	repo := s.RepoManager.Users(s.DB)
	current, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, describe(err, "User does not exist")
	}

	if common.IsBlank(fullName) {
		fullName = current.FullName
	}
	if common.IsBlank(email) {
		email = current.Email
	}

	updated, err := repo.UpdateAccount(ctx, userID, fullName, common.NormalizeIdentifier(email))
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.WrapError(common.ErrorConflict, "Email is already in use", err)
		}
		return nil, describe(err, "User does not exist")
	}
	return updated.Redacted(), nil
}

// UpdateAvatar stores a new avatar and then deletes the old blob. A failed
// delete leaves an orphan and is only logged.
func (s *UserService) UpdateAvatar(ctx context.Context, userID string, f *media.File) (*models.User, error) {
	if f == nil {
		return nil, common.Validation("Avatar file is missing")
	}

	repo := s.RepoManager.Users(s.DB)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, describe(err, "User does not exist")
	}

	ref, err := upload(ctx, s.Media, media.FolderAvatars, f, "Error while uploading avatar")
	if err != nil {
		return nil, err
	}
	if err := repo.UpdateAvatar(ctx, userID, ref); err != nil {
		discard(ctx, s.Media, s.log, ref.PublicID)
		return nil, err
	}

	discard(ctx, s.Media, s.log, user.Avatar.PublicID)
	user.Avatar = ref
	return user.Redacted(), nil
}

func (s *UserService) UpdateCoverImage(ctx context.Context, userID string, f *media.File) (*models.User, error) {
	if f == nil {
		return nil, common.Validation("Cover image file is missing")
	}

	repo := s.RepoManager.Users(s.DB)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, describe(err, "User does not exist")
	}

	ref, err := upload(ctx, s.Media, media.FolderCovers, f, "Error while uploading cover image")
	if err != nil {
		return nil, err
	}
	if err := repo.UpdateCoverImage(ctx, userID, ref); err != nil {
		discard(ctx, s.Media, s.log, ref.PublicID)
		return nil, err
	}

	if user.CoverImage != nil {
		discard(ctx, s.Media, s.log, user.CoverImage.PublicID)
	}
	user.CoverImage = &ref
	return user.Redacted(), nil
}

// ChannelProfile returns the public profile of username as seen by viewerID.
func (s *UserService) ChannelProfile(ctx context.Context, username, viewerID string) (*models.ChannelProfile, error) {
	if common.IsBlank(username) {
		return nil, common.Validation("username is missing")
	}
	p, err := s.RepoManager.Users(s.DB).GetChannelProfile(ctx, common.NormalizeIdentifier(username), viewerID)
	if err != nil {
		return nil, describe(err, "Channel does not exist")
	}
	return p, nil
}

func (s *UserService) WatchHistory(ctx context.Context, userID string) ([]models.VideoWithOwner, error) {
	return s.RepoManager.Users(s.DB).WatchHistory(ctx, userID)
}

// --- helpers below ---

// hashIfModified replaces a pending plaintext password with its hash. Users
// whose password was not set since loading are left untouched.
func (s *UserService) hashIfModified(u *models.User) error {
	if !u.PasswordModified() {
		return nil
	}
	hash, err := s.Hasher.Hash(u.PendingPassword())
	if err != nil {
		return common.WrapError(common.ErrorInternal, "Something went wrong while hashing the password", err)
	}
	u.ApplyPasswordHash(hash)
	return nil
}

func (s *UserService) issueTokens(u *models.User) (*TokenPair, error) {
	access, err := s.Tokens.IssueAccessToken(u)
	if err != nil {
		return nil, common.WrapError(common.ErrorInternal, "Something went wrong while generating tokens", err)
	}
	refresh, err := s.Tokens.IssueRefreshToken(u)
	if err != nil {
		return nil, common.WrapError(common.ErrorInternal, "Something went wrong while generating tokens", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
