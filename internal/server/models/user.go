// Package models defines server-side data models persisted in the database
// and the read views assembled from them.
package models

import "time"

// MediaRef points at a blob held by the media store.
type MediaRef struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// User is a registered identity. PasswordHash and RefreshToken never leave
// the server: they are excluded from JSON and cleared by Redacted.
type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	Avatar       MediaRef  `json:"avatar"`
	CoverImage   *MediaRef `json:"coverImage"`
	PasswordHash string    `json:"-"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	pendingPassword *string
}

// SetPassword marks the password as modified. The plaintext is held only
// until the next save, when it is replaced by its hash.
func (u *User) SetPassword(plain string) {
	u.pendingPassword = &plain
}

// PasswordModified reports whether SetPassword was called since the last
// ApplyPasswordHash.
func (u *User) PasswordModified() bool {
	return u.pendingPassword != nil
}

// PendingPassword returns the plaintext set by SetPassword.
func (u *User) PendingPassword() string {
	if u.pendingPassword == nil {
		return ""
	}
	return *u.pendingPassword
}

// ApplyPasswordHash stores hash and forgets the pending plaintext.
func (u *User) ApplyPasswordHash(hash string) {
	u.PasswordHash = hash
	u.pendingPassword = nil
}

// Redacted returns a copy without credentials or token state.
func (u *User) Redacted() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.PasswordHash = ""
	c.RefreshToken = ""
	c.pendingPassword = nil
	return &c
}

// Summary returns the public owner card of u.
func (u *User) Summary() OwnerSummary {
	return OwnerSummary{ID: u.ID, Username: u.Username, FullName: u.FullName, Avatar: u.Avatar.URL}
}
