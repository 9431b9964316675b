// Package auth implements session token issuance and verification, password
// hashing, and the request-context carrier for the authenticated identity.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errNoSecret = errors.New("token signing secret is not configured")

// AccessClaims is the payload of an access token.
type AccessClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// RefreshClaims is the payload of a refresh token.
type RefreshClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"_id"`
}

// TokenIssuer signs and verifies access and refresh tokens (HS256). The two
// token kinds use separate secrets, so one can never pass for the other.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func (i *TokenIssuer) registered(ttl time.Duration) jwt.RegisteredClaims {
	now := i.now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

// IssueAccessToken signs {id, email, username, fullName} with the access secret.
func (i *TokenIssuer) IssueAccessToken(u *models.User) (string, error) {
	claims := AccessClaims{
		RegisteredClaims: i.registered(i.accessTTL),
		UserID:           u.ID,
		Email:            u.Email,
		Username:         u.Username,
		FullName:         u.FullName,
	}
	return sign(claims, i.accessSecret)
}

// IssueRefreshToken signs {id} with the refresh secret. Every call yields a
// distinct token, even within the same second.
func (i *TokenIssuer) IssueRefreshToken(u *models.User) (string, error) {
	claims := RefreshClaims{
		RegisteredClaims: i.registered(i.refreshTTL),
		UserID:           u.ID,
	}
	return sign(claims, i.refreshSecret)
}

// VerifyAccessToken returns the claims of a valid access token, or
// common.ErrTokenExpired / common.ErrInvalidToken.
func (i *TokenIssuer) VerifyAccessToken(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := verify(token, i.accessSecret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyRefreshToken is VerifyAccessToken for refresh tokens.
func (i *TokenIssuer) VerifyRefreshToken(token string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := verify(token, i.refreshSecret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func sign(claims jwt.Claims, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("%w: %w", common.ErrorInternal, errNoSecret)
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func verify(token string, secret []byte, claims jwt.Claims) error {
	if len(secret) == 0 {
		return fmt.Errorf("%w: %w", common.ErrorInternal, errNoSecret)
	}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return common.ErrTokenExpired
		}
		return common.ErrInvalidToken
	}

	if !parsed.Valid {
		return common.ErrInvalidToken
	}

	return nil
}
