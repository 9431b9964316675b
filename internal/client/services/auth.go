// Package services contains application services for the vidtube CLI.
// This file defines the session service: login, whoami, token refresh and
// logout, with the session kept in the local database between runs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vidtube/internal/client/client"
	"github.com/dmitrijs2005/vidtube/internal/client/repositories/session"
	"github.com/dmitrijs2005/vidtube/internal/dbx"
)

// AuthService defines the session operations of the CLI.
//
// Contract:
//   - Login: authenticate and persist the returned token pair.
//   - WhoAmI: fetch the current identity, refreshing an expired access token once.
//   - Refresh: rotate the stored token pair.
//   - Logout: end the server session and forget the local one.
//   - Username: the user of the stored session, "" when logged out.
type AuthService interface {
	Login(ctx context.Context, identifier string, password []byte) (*client.User, error)
	WhoAmI(ctx context.Context) (*client.User, error)
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
	Username(ctx context.Context) (string, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
}

func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getSessionRepo() session.Repository {
	return session.NewSQLiteRepository(a.db)
}

func (a *authService) Login(ctx context.Context, identifier string, password []byte) (*client.User, error) {
	s, err := a.client.Login(ctx, identifier, string(password))
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	if err := a.saveSession(ctx, s.User.Username, s.TokenPair); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return &s.User, nil
}

// saveSession stores the username (when given) and both tokens in a single
// transaction.
func (a *authService) saveSession(ctx context.Context, username string, pair client.TokenPair) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := session.NewSQLiteRepository(tx)
		if username != "" {
			if err := repo.Set(ctx, session.KeyUsername, username); err != nil {
				return err
			}
		}
		if err := repo.Set(ctx, session.KeyAccessToken, pair.AccessToken); err != nil {
			return err
		}
		return repo.Set(ctx, session.KeyRefreshToken, pair.RefreshToken)
	})
}

func (a *authService) token(ctx context.Context, key string) (string, error) {
	v, ok, err := a.getSessionRepo().Get(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok || v == "" {
		return "", client.ErrNotLoggedIn
	}
	return v, nil
}

func (a *authService) WhoAmI(ctx context.Context) (*client.User, error) {
	access, err := a.token(ctx, session.KeyAccessToken)
	if err != nil {
		return nil, err
	}

	u, err := a.client.CurrentUser(ctx, access)
	if !errors.Is(err, client.ErrUnauthorized) {
		return u, err
	}

	// access token expired, rotate and retry once
	if err := a.Refresh(ctx); err != nil {
		return nil, err
	}
	access, err = a.token(ctx, session.KeyAccessToken)
	if err != nil {
		return nil, err
	}
	return a.client.CurrentUser(ctx, access)
}

// Refresh rotates the stored token pair. A rejected refresh token ends the
// local session.
func (a *authService) Refresh(ctx context.Context) error {
	refresh, err := a.token(ctx, session.KeyRefreshToken)
	if err != nil {
		return err
	}

	pair, err := a.client.Refresh(ctx, refresh)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			if clearErr := a.getSessionRepo().Clear(ctx); clearErr != nil {
				return errors.Join(err, clearErr)
			}
		}
		return fmt.Errorf("refresh error: %w", err)
	}

	return a.saveSession(ctx, "", *pair)
}

// Logout ends the server session. The local session is forgotten unless the
// server could not be reached.
func (a *authService) Logout(ctx context.Context) error {
	access, err := a.token(ctx, session.KeyAccessToken)
	if err != nil {
		return err
	}

	err = a.client.Logout(ctx, access)
	if errors.Is(err, client.ErrUnavailable) {
		return err
	}

	if clearErr := a.getSessionRepo().Clear(ctx); clearErr != nil {
		return clearErr
	}
	if err != nil && !errors.Is(err, client.ErrUnauthorized) {
		return err
	}
	return nil
}

func (a *authService) Username(ctx context.Context) (string, error) {
	v, _, err := a.getSessionRepo().Get(ctx, session.KeyUsername)
	return v, err
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
