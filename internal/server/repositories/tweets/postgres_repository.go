package tweets

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

const columns = `t.id, t.content, t.owner_id, t.created_at, t.updated_at`

func scanTweet(row interface{ Scan(...any) error }, extra ...any) (*models.Tweet, error) {
	t := &models.Tweet{}
	if err := row.Scan(append([]any{&t.ID, &t.Content, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt}, extra...)...); err != nil {
		return nil, err
	}
	return t, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Create(ctx context.Context, t *models.Tweet) (*models.Tweet, error) {
	query :=
		`INSERT INTO tweets (content, owner_id)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at
		 `

	if err := r.db.QueryRowContext(ctx, query, t.Content, t.OwnerID).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Tweet, error) {
	t, err := scanTweet(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM tweets t WHERE t.id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return t, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID, viewerID string) ([]models.TweetView, error) {
	query := `SELECT ` + columns + `,
		 o.id, o.username, o.full_name, o.avatar_url,
		 (SELECT COUNT(*) FROM likes l WHERE l.tweet_id = t.id),
		 EXISTS (SELECT 1 FROM likes l WHERE l.tweet_id = t.id AND l.liked_by::text = $2)
		 FROM tweets t
		 JOIN users o ON o.id = t.owner_id
		 WHERE t.owner_id = $1
		 ORDER BY t.created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.TweetView{}
	for rows.Next() {
		var view models.TweetView
		o := &view.Owner
		t, err := scanTweet(rows, &o.ID, &o.Username, &o.FullName, &o.Avatar, &view.LikesCount, &view.IsLiked)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		view.Tweet = *t
		out = append(out, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) UpdateContent(ctx context.Context, id, content string) (*models.Tweet, error) {
	query :=
		`UPDATE tweets t SET content = $2, updated_at = now()
		 WHERE t.id = $1
		 RETURNING ` + columns

	t, err := scanTweet(r.db.QueryRowContext(ctx, query, id, content))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tweets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireAffected(res)
}
