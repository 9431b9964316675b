// Package services contains server-side business logic: the session manager
// (UserService) and the resource services built on the repositories.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/logging"
	"github.com/dmitrijs2005/vidtube/internal/server/auth"
	"github.com/dmitrijs2005/vidtube/internal/server/media"
	"github.com/dmitrijs2005/vidtube/internal/server/metrics"
	"github.com/dmitrijs2005/vidtube/internal/server/models"
	"github.com/dmitrijs2005/vidtube/internal/server/repositories/repomanager"
)

// Deps are the collaborators shared by every service.
type Deps struct {
	DB          *sql.DB
	RepoManager repomanager.RepositoryManager
	Tokens      *auth.TokenIssuer
	Hasher      auth.PasswordHasher
	Media       media.Store
	Metrics     *metrics.Metrics
	Logger      logging.Logger
}

func (d Deps) logger(module string) logging.Logger {
	if d.Logger == nil {
		return logging.Nop()
	}
	return d.Logger.With("module", module)
}

// describe attaches a client-facing message to a not-found error from a
// repository. Other errors pass through unchanged.
func describe(err error, notFound string) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.WrapError(common.ErrorNotFound, notFound, err)
	}
	return err
}

func upload(ctx context.Context, store media.Store, folder string, f *media.File, message string) (models.MediaRef, error) {
	ref, err := media.Put(ctx, store, folder, f)
	if err != nil {
		return models.MediaRef{}, common.WrapError(common.ErrorUpload, message, err)
	}
	return ref, nil
}

// discard deletes blobs that are no longer referenced. Failures are only
// logged; the caller's operation has already succeeded.
func discard(ctx context.Context, store media.Store, log logging.Logger, publicIDs ...string) {
	for _, id := range publicIDs {
		if id == "" {
			continue
		}
		if err := store.Delete(ctx, id); err != nil {
			log.Warn(ctx, "blob delete failed", "public_id", id, "error", err)
		}
	}
}
