package comments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/dbx"
	"github.com/dmitrijs2005/vidtube/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const columns = `c.id, c.content, c.video_id, c.owner_id, c.created_at, c.updated_at`

func scanComment(row interface{ Scan(...any) error }, extra ...any) (*models.Comment, error) {
	c := &models.Comment{}
	dest := append([]any{&c.ID, &c.Content, &c.VideoID, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return c, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	query :=
		`INSERT INTO comments (content, video_id, owner_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	if err := r.db.QueryRowContext(ctx, query, c.Content, c.VideoID, c.OwnerID).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := `SELECT ` + columns + ` FROM comments c
		 WHERE c.id = $1
		 `

	c, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return c, nil
}

// ListByVideo returns one page of a video's comments, newest first, with
// owner cards and like counters relative to viewerID.
func (r *PostgresRepository) ListByVideo(ctx context.Context, videoID, viewerID string, page models.PageRequest) ([]models.CommentView, int64, error) {
	page = page.Normalize()

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE video_id = $1`, videoID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := `SELECT ` + columns + `,
		 o.id, o.username, o.full_name, o.avatar_url,
		 (SELECT COUNT(*) FROM likes l WHERE l.comment_id = c.id),
		 EXISTS (SELECT 1 FROM likes l WHERE l.comment_id = c.id AND l.liked_by::text = $2)
		 FROM comments c
		 JOIN users o ON o.id = c.owner_id
		 WHERE c.video_id = $1
		 ORDER BY c.created_at DESC, c.id
		 LIMIT $3 OFFSET $4`

	rows, err := r.db.QueryContext(ctx, query, videoID, viewerID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.CommentView{}
	for rows.Next() {
		var view models.CommentView
		o := &view.Owner
		c, err := scanComment(rows, &o.ID, &o.Username, &o.FullName, &o.Avatar, &view.LikesCount, &view.IsLiked)
		if err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		view.Comment = *c
		out = append(out, view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return out, total, nil
}

func (r *PostgresRepository) UpdateContent(ctx context.Context, id, content string) (*models.Comment, error) {
	query :=
		`UPDATE comments c SET content = $2, updated_at = now()
		 WHERE c.id = $1
		 RETURNING ` + columns

	c, err := scanComment(r.db.QueryRowContext(ctx, query, id, content))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return c, nil
}

// Delete removes the comment; its likes cascade.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireAffected(res)
}
