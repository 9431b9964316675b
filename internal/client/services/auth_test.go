package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/vidtube/internal/client/client"
	"github.com/dmitrijs2005/vidtube/internal/client/repositories/session"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  key        TEXT PRIMARY KEY,
  value      TEXT NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`)
	require.NoError(t, err)
	return db
}

func getSession(t *testing.T, db *sql.DB, k string) string {
	t.Helper()
	v, _, err := session.NewSQLiteRepository(db).Get(context.Background(), k)
	require.NoError(t, err)
	return v
}

func seedSession(t *testing.T, db *sql.DB, username, access, refresh string) {
	t.Helper()
	repo := session.NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, session.KeyUsername, username))
	require.NoError(t, repo.Set(ctx, session.KeyAccessToken, access))
	require.NoError(t, repo.Set(ctx, session.KeyRefreshToken, refresh))
}

// ---- fake client ----

type fakeClient struct {
	LoginRet *client.Session
	LoginErr error

	// CurrentUser succeeds only for ValidAccess.
	ValidAccess string
	User        client.User

	RefreshRet *client.TokenPair
	RefreshErr error

	LogoutErr error
	PingErr   error
	CloseErr  error

	LastLoginIdentifier string
	LastLoginPassword   string
	LastRefreshToken    string
	LastLogoutToken     string
	CurrentUserCalls    int
}

func (f *fakeClient) Close() error { return f.CloseErr }

func (f *fakeClient) Login(ctx context.Context, identifier, password string) (*client.Session, error) {
	f.LastLoginIdentifier = identifier
	f.LastLoginPassword = password
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) CurrentUser(ctx context.Context, accessToken string) (*client.User, error) {
	f.CurrentUserCalls++
	if accessToken != f.ValidAccess {
		return nil, &client.APIError{Status: 401, Message: "Invalid Access Token"}
	}
	u := f.User
	return &u, nil
}

func (f *fakeClient) Refresh(ctx context.Context, refreshToken string) (*client.TokenPair, error) {
	f.LastRefreshToken = refreshToken
	return f.RefreshRet, f.RefreshErr
}

func (f *fakeClient) Logout(ctx context.Context, accessToken string) error {
	f.LastLogoutToken = accessToken
	return f.LogoutErr
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

// ---- TESTS ----

func TestLogin_PersistsSession(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{LoginRet: &client.Session{
		User:      client.User{ID: "u1", Username: "alice"},
		TokenPair: client.TokenPair{AccessToken: "acc", RefreshToken: "ref"},
	}}
	svc := NewAuthService(fc, db)

	u, err := svc.Login(context.Background(), "alice@example.com", []byte("pw"))
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)
	require.Equal(t, "alice@example.com", fc.LastLoginIdentifier)
	require.Equal(t, "pw", fc.LastLoginPassword)

	require.Equal(t, "alice", getSession(t, db, session.KeyUsername))
	require.Equal(t, "acc", getSession(t, db, session.KeyAccessToken))
	require.Equal(t, "ref", getSession(t, db, session.KeyRefreshToken))
}

func TestLogin_ErrorWrapped_NothingStored(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{LoginErr: &client.APIError{Status: 401, Message: "Invalid user credentials"}}
	svc := NewAuthService(fc, db)

	_, err := svc.Login(context.Background(), "alice", []byte("bad"))
	require.ErrorIs(t, err, client.ErrUnauthorized)
	require.ErrorContains(t, err, "login error:")

	name, err := svc.Username(context.Background())
	require.NoError(t, err)
	require.Empty(t, name)
}

func TestWhoAmI_NotLoggedIn(t *testing.T) {
	svc := NewAuthService(&fakeClient{}, setupDB(t))

	_, err := svc.WhoAmI(context.Background())
	require.ErrorIs(t, err, client.ErrNotLoggedIn)
}

func TestWhoAmI_ValidToken(t *testing.T) {
	db := setupDB(t)
	seedSession(t, db, "alice", "acc", "ref")
	fc := &fakeClient{ValidAccess: "acc", User: client.User{Username: "alice"}}
	svc := NewAuthService(fc, db)

	u, err := svc.WhoAmI(context.Background())
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)
	require.Equal(t, 1, fc.CurrentUserCalls)
}

func TestWhoAmI_RefreshesExpiredAccessToken(t *testing.T) {
	db := setupDB(t)
	seedSession(t, db, "alice", "expired", "ref")
	fc := &fakeClient{
		ValidAccess: "acc2",
		User:        client.User{Username: "alice"},
		RefreshRet:  &client.TokenPair{AccessToken: "acc2", RefreshToken: "ref2"},
	}
	svc := NewAuthService(fc, db)

	u, err := svc.WhoAmI(context.Background())
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)
	require.Equal(t, "ref", fc.LastRefreshToken)
	require.Equal(t, 2, fc.CurrentUserCalls)
	require.Equal(t, "acc2", getSession(t, db, session.KeyAccessToken))
	require.Equal(t, "ref2", getSession(t, db, session.KeyRefreshToken))
	require.Equal(t, "alice", getSession(t, db, session.KeyUsername))
}

func TestRefresh_RejectedTokenClearsSession(t *testing.T) {
	db := setupDB(t)
	seedSession(t, db, "alice", "acc", "reused")
	fc := &fakeClient{RefreshErr: &client.APIError{Status: 401, Message: "Refresh token is expired or used"}}
	svc := NewAuthService(fc, db)

	err := svc.Refresh(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)

	name, err := svc.Username(context.Background())
	require.NoError(t, err)
	require.Empty(t, name)
}

func TestRefresh_UnavailableKeepsSession(t *testing.T) {
	db := setupDB(t)
	seedSession(t, db, "alice", "acc", "ref")
	fc := &fakeClient{RefreshErr: client.ErrUnavailable}
	svc := NewAuthService(fc, db)

	require.ErrorIs(t, svc.Refresh(context.Background()), client.ErrUnavailable)
	require.Equal(t, "ref", getSession(t, db, session.KeyRefreshToken))
}

func TestLogout(t *testing.T) {
	tests := []struct {
		name       string
		logoutErr  error
		wantErr    error
		wantKeepTo bool
	}{
		{name: "success", logoutErr: nil},
		{name: "already expired on server", logoutErr: &client.APIError{Status: 401, Message: "Invalid Access Token"}},
		{name: "server down", logoutErr: client.ErrUnavailable, wantErr: client.ErrUnavailable, wantKeepTo: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupDB(t)
			seedSession(t, db, "alice", "acc", "ref")
			fc := &fakeClient{LogoutErr: tt.logoutErr}
			svc := NewAuthService(fc, db)

			err := svc.Logout(context.Background())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, "acc", fc.LastLogoutToken)

			name, err := svc.Username(context.Background())
			require.NoError(t, err)
			if tt.wantKeepTo {
				require.Equal(t, "alice", name)
			} else {
				require.Empty(t, name)
			}
		})
	}
}

func TestPingAndClose_Proxy(t *testing.T) {
	fc := &fakeClient{PingErr: errors.New("down"), CloseErr: errors.New("close")}
	svc := NewAuthService(fc, setupDB(t))

	require.EqualError(t, svc.Ping(context.Background()), "down")
	require.EqualError(t, svc.Close(context.Background()), "close")
}
