package likes

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func TestToggle(t *testing.T) {
	tests := []struct {
		target models.LikeTarget
		column string
	}{
		{models.LikeVideo, "video_id"},
		{models.LikeComment, "comment_id"},
		{models.LikeTweet, "tweet_id"},
	}

	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()
			ctx := context.Background()

			del := `^DELETE\s+FROM\s+likes\s+WHERE\s+` + tt.column + `\s*=\s*\$1\s+AND\s+liked_by\s*=\s*\$2$`
			ins := `^INSERT\s+INTO\s+likes\s+\(` + tt.column + `,\s*liked_by\)`

			mock.ExpectExec(del).WithArgs("x-1", "u-1").WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec(ins).WithArgs("x-1", "u-1").WillReturnResult(sqlmock.NewResult(0, 1))
			liked, err := repo.Toggle(ctx, tt.target, "x-1", "u-1")
			require.NoError(t, err)
			assert.True(t, liked)

			mock.ExpectExec(del).WithArgs("x-1", "u-1").WillReturnResult(sqlmock.NewResult(0, 1))
			liked, err = repo.Toggle(ctx, tt.target, "x-1", "u-1")
			require.NoError(t, err)
			assert.False(t, liked)

			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestToggle_UnknownTarget(t *testing.T) {
	repo, _, db := newRepoWithMock(t)
	defer db.Close()

	_, err := repo.Toggle(context.Background(), models.LikeTarget("playlist"), "x", "u")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestLikedVideos(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()
	now := time.Now()

	mock.ExpectQuery(`(?s)FROM\s+likes\s+l\s+JOIN\s+videos\s+v.*WHERE\s+l\.liked_by\s*=\s*\$1\s+AND\s+v\.is_published`).WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "video_url", "video_public_id", "thumbnail_url", "thumbnail_public_id",
			"owner_id", "title", "description", "duration", "views", "is_published", "created_at", "updated_at",
			"o_id", "o_username", "o_full_name", "o_avatar"}).
			AddRow("v-1", "http://v", "videos/1", "http://t", "thumbs/1", "u-2", "T", "D", 1.0, int64(3), true, now, now,
				"u-2", "bob", "Bob", "http://b"))

	items, err := repo.LikedVideos(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "bob", items[0].Owner.Username)
}
