// Package media stores uploaded blobs (avatars, covers, videos, thumbnails)
// in an S3-compatible bucket and hands back their public id and URL.
package media

import (
	"context"
	"io"

	"github.com/dmitrijs2005/vidtube/internal/server/models"
)

// Folders blobs are grouped under.
const (
	FolderAvatars    = "avatars"
	FolderCovers     = "covers"
	FolderVideos     = "videos"
	FolderThumbnails = "thumbnails"
)

// Store is the media-hosting collaborator.
type Store interface {
	Upload(ctx context.Context, folder, filename, contentType string, body io.Reader, size int64) (models.MediaRef, error)
	Delete(ctx context.Context, publicID string) error
}

// File is an upload received from a client, ready to be handed to a Store.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Put uploads f into folder of s.
func Put(ctx context.Context, s Store, folder string, f *File) (models.MediaRef, error) {
	return s.Upload(ctx, folder, f.Name, f.ContentType, f.Body, f.Size)
}
