package likes

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/dbx"
	"github.com/dmitrijs2005/vidtube/internal/server/models"
	"github.com/dmitrijs2005/vidtube/internal/server/repositories/videos"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var targetColumns = map[models.LikeTarget]string{
	models.LikeVideo:   "video_id",
	models.LikeComment: "comment_id",
	models.LikeTweet:   "tweet_id",
}

func (r *PostgresRepository) Toggle(ctx context.Context, target models.LikeTarget, targetID, userID string) (bool, error) {
	col, ok := targetColumns[target]
	if !ok {
		return false, fmt.Errorf("%w: unknown like target %q", common.ErrorValidation, target)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE `+col+` = $1 AND liked_by = $2`, targetID, userID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	query := `INSERT INTO likes (` + col + `, liked_by) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, targetID, userID); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}

// LikedVideos lists published videos liked by userID, most recent like first.
func (r *PostgresRepository) LikedVideos(ctx context.Context, userID string) ([]models.VideoWithOwner, error) {
	query := `SELECT ` + videos.WithOwnerColumns + `
		 FROM likes l
		 JOIN videos v ON v.id = l.video_id
		 JOIN users o ON o.id = v.owner_id
		 WHERE l.liked_by = $1 AND v.is_published
		 ORDER BY l.created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.VideoWithOwner{}
	for rows.Next() {
		item, err := videos.ScanWithOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
