package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ---------- WipeByteArray ----------

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

// ---------- NormalizeIdentifier / IsBlank ----------

func TestNormalizeIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Alice ", "alice"},
		{"BOB@Example.COM", "bob@example.com"},
		{"", ""},
		{"\tcarol\n", "carol"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeIdentifier(tt.in), "input %q", tt.in)
	}
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   \t"))
	assert.False(t, IsBlank(" x "))
}

// ---------- AppError ----------

func TestAppError_IsKindAndCause(t *testing.T) {
	cause := errors.New("s3 down")
	err := WrapError(ErrorUpload, "Error while uploading avatar", cause)

	assert.ErrorIs(t, err, ErrorUpload)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrorValidation)
	assert.Equal(t, "Error while uploading avatar: s3 down", err.Error())
}

func TestAppError_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("service: %w", Forbidden("not the owner"))

	assert.ErrorIs(t, err, ErrorForbidden)
	assert.Equal(t, "not the owner", MessageOf(err))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "token expired", MessageOf(fmt.Errorf("x: %w", ErrTokenExpired)))
	assert.Equal(t, "Something went wrong", MessageOf(errors.New("boom")))
	assert.Equal(t, "bad", MessageOf(Validation("bad")))
}
