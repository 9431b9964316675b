package testsupport

import (
	"context"
	"errors"
	"io"
	"path"
	"sync"

	"github.com/dmitrijs2005/vidtube/internal/server/models"
	"github.com/google/uuid"
)

// MediaStub is an in-memory media.Store. Uploads into a folder listed in
// FailFolders fail; deletes of ids listed in FailDeletes fail.
type MediaStub struct {
	mu          sync.Mutex
	Objects     map[string][]byte
	Deleted     []string
	FailFolders map[string]bool
	FailDeletes map[string]bool
}

func NewMediaStub() *MediaStub {
	return &MediaStub{
		Objects:     map[string][]byte{},
		FailFolders: map[string]bool{},
		FailDeletes: map[string]bool{},
	}
}

func (s *MediaStub) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader, size int64) (models.MediaRef, error) {
	s.mu.Lock()
	fail := s.FailFolders[folder]
	s.mu.Unlock()
	if fail {
		return models.MediaRef{}, errors.New("upload to " + folder + " failed")
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return models.MediaRef{}, err
	}

	key := folder + "/" + uuid.NewString() + path.Ext(filename)
	s.mu.Lock()
	s.Objects[key] = data
	s.mu.Unlock()
	return models.MediaRef{PublicID: key, URL: "http://media.test/" + key}, nil
}

func (s *MediaStub) Delete(ctx context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deleted = append(s.Deleted, publicID)
	if s.FailDeletes[publicID] {
		return errors.New("delete failed")
	}
	delete(s.Objects, publicID)
	return nil
}

// Has reports whether publicID is stored.
func (s *MediaStub) Has(publicID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Objects[publicID]
	return ok
}

// Count returns the number of stored objects.
func (s *MediaStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Objects)
}
