package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_PasswordLifecycle(t *testing.T) {
	u := &User{PasswordHash: "old-hash"}
	assert.False(t, u.PasswordModified())

	u.SetPassword("s3cret")
	assert.True(t, u.PasswordModified())
	assert.Equal(t, "s3cret", u.PendingPassword())

	u.ApplyPasswordHash("new-hash")
	assert.False(t, u.PasswordModified())
	assert.Empty(t, u.PendingPassword())
	assert.Equal(t, "new-hash", u.PasswordHash)
}

func TestUser_RedactedAndJSON(t *testing.T) {
	u := &User{ID: "u1", Username: "alice", PasswordHash: "hash", RefreshToken: "rt"}
	u.SetPassword("plain")

	r := u.Redacted()
	assert.Empty(t, r.PasswordHash)
	assert.Empty(t, r.RefreshToken)
	assert.False(t, r.PasswordModified())
	assert.Equal(t, "hash", u.PasswordHash, "original must be untouched")

	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hash")
	assert.NotContains(t, string(b), "plain")
	assert.NotContains(t, string(b), `"rt"`)

	var nilUser *User
	assert.Nil(t, nilUser.Redacted())
}

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		in   PageRequest
		want PageRequest
	}{
		{PageRequest{}, PageRequest{Page: 1, Limit: DefaultPageLimit}},
		{PageRequest{Page: 3, Limit: 500}, PageRequest{Page: 3, Limit: MaxPageLimit}},
		{PageRequest{Page: -1, Limit: 5}, PageRequest{Page: 1, Limit: 5}},
		{PageRequest{Page: math.MaxInt, Limit: 100}, PageRequest{Page: MaxPage, Limit: 100}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Normalize())
	}
	assert.Equal(t, 20, PageRequest{Page: 3, Limit: 10}.Offset())

	for _, limit := range []int{1, DefaultPageLimit, MaxPageLimit, 1000} {
		off := PageRequest{Page: math.MaxInt, Limit: limit}.Normalize().Offset()
		assert.GreaterOrEqual(t, off, 0, "limit %d", limit)
	}
}

func TestNewPage(t *testing.T) {
	p := NewPage[string](nil, 21, PageRequest{Page: 2, Limit: 10})
	assert.NotNil(t, p.Docs)
	assert.Equal(t, int64(3), p.TotalPages)
	assert.Equal(t, 2, p.Page)
}
