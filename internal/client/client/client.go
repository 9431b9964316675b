package client

import (
	"context"
)

// User is the identity returned by the server.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Session is the login response.
type Session struct {
	User User `json:"user"`
	TokenPair
}

type Client interface {
	Close() error
	Login(ctx context.Context, identifier, password string) (*Session, error)
	CurrentUser(ctx context.Context, accessToken string) (*User, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, accessToken string) error
	Ping(ctx context.Context) error
}
