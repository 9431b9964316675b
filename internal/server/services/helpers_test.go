package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/vidtube/internal/logging"
	"github.com/dmitrijs2005/vidtube/internal/server/auth"
	"github.com/dmitrijs2005/vidtube/internal/server/media"
	"github.com/dmitrijs2005/vidtube/internal/server/metrics"
	"github.com/dmitrijs2005/vidtube/internal/server/models"
	"github.com/dmitrijs2005/vidtube/internal/server/testsupport"
	"golang.org/x/crypto/bcrypt"
)

// ghostUser is never stored.
var ghostUser = models.User{ID: "4b0c8e1c-0000-4000-8000-000000000000", Username: "ghost"}

type fixture struct {
	deps  Deps
	store *testsupport.MemoryStore
	media *testsupport.MediaStub
	mock  sqlmock.Sqlmock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := testsupport.NewMemoryStore()
	ms := testsupport.NewMediaStub()
	return &fixture{
		deps: Deps{
			DB:          db,
			RepoManager: store,
			Tokens:      auth.NewTokenIssuer("access-secret", "refresh-secret", time.Minute, time.Hour),
			Hasher:      auth.NewBcryptHasher(bcrypt.MinCost),
			Media:       ms,
			Metrics:     metrics.New(),
			Logger:      logging.Nop(),
		},
		store: store,
		media: ms,
		mock:  mock,
	}
}

func file(name string) *media.File {
	data := []byte("content of " + name)
	return &media.File{Name: name, ContentType: "application/octet-stream", Size: int64(len(data)), Body: bytes.NewReader(data)}
}

func registerInput(username, email string) RegisterInput {
	return RegisterInput{
		Username: username,
		Email:    email,
		FullName: "Some One",
		Password: "secret",
		Avatar:   file("avatar.png"),
	}
}

// expectTx registers one begin/commit pair on the sqlmock database.
func (f *fixture) expectTx() {
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
}
