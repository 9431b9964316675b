package users

import (
	"context"
	"database/sql"
	"errors"
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

const userColumns = `id, username, email, full_name, avatar_url, avatar_public_id,
		 cover_image_url, cover_image_public_id, password_hash, COALESCE(refresh_token, ''),
		 created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var coverURL, coverID sql.NullString
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.Avatar.URL, &u.Avatar.PublicID,
		&coverURL, &coverID, &u.PasswordHash, &u.RefreshToken, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if coverURL.Valid && coverURL.String != "" {
		u.CoverImage = &models.MediaRef{URL: coverURL.String, PublicID: coverID.String}
	}
	return u, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	return dbx.WrapError(err)
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (username, email, full_name, avatar_url, avatar_public_id,
		 cover_image_url, cover_image_public_id, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at
		 `

	var coverURL, coverID string
	if user.CoverImage != nil {
		coverURL, coverID = user.CoverImage.URL, user.CoverImage.PublicID
	}

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.FullName, user.Avatar.URL, user.Avatar.PublicID,
		nullable(coverURL), nullable(coverID), user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, dbx.WrapError(err)
	}

	return user, nil
}

func (r *PostgresRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	query :=
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, username, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		 WHERE id = $1
		 `

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return u, nil
}

// GetByLogin finds a user by username or email; an empty argument does not
// match anything.
func (r *PostgresRepository) GetByLogin(ctx context.Context, username, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		 WHERE ($1 <> '' AND username = $1) OR ($2 <> '' AND email = $2)
		 LIMIT 1
		 `

	u, err := scanUser(r.db.QueryRowContext(ctx, query, username, email))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return u, nil
}

func (r *PostgresRepository) GetChannelProfile(ctx context.Context, username, viewerID string) (*models.ChannelProfile, error) {
	query :=
		`SELECT u.id, u.username, u.email, u.full_name, u.avatar_url, u.avatar_public_id,
		 u.cover_image_url, u.cover_image_public_id,
		 (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id),
		 (SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id),
		 EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id::text = $2)
		 FROM users u
		 WHERE u.username = $1
		 `

	p := &models.ChannelProfile{}
	var coverURL, coverID sql.NullString
	err := r.db.QueryRowContext(ctx, query, username, viewerID).Scan(
		&p.ID, &p.Username, &p.Email, &p.FullName, &p.Avatar.URL, &p.Avatar.PublicID,
		&coverURL, &coverID, &p.SubscribersCount, &p.ChannelsSubscribedToCount, &p.IsSubscribed)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if coverURL.Valid && coverURL.String != "" {
		p.CoverImage = &models.MediaRef{URL: coverURL.String, PublicID: coverID.String}
	}
	return p, nil
}

// SetRefreshToken overwrites the stored refresh token. An empty token clears it.
func (r *PostgresRepository) SetRefreshToken(ctx context.Context, id, token string) error {
	query :=
		`UPDATE users SET refresh_token = $2, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, nullable(token))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireAffected(res)
}

// RotateRefreshToken replaces presented with next only if presented is still
// the stored value. It reports whether the swap happened.
func (r *PostgresRepository) RotateRefreshToken(ctx context.Context, id, presented, next string) (bool, error) {
	query :=
		`UPDATE users SET refresh_token = $3, updated_at = now()
		 WHERE id = $1 AND refresh_token = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, presented, next)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n == 1, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	query :=
		`UPDATE users SET password_hash = $2, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, hash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireAffected(res)
}

func (r *PostgresRepository) UpdateAccount(ctx context.Context, id, fullName, email string) (*models.User, error) {
	query :=
		`UPDATE users SET full_name = $2, email = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id, fullName, email))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return u, nil
}

func (r *PostgresRepository) UpdateAvatar(ctx context.Context, id string, ref models.MediaRef) error {
	query :=
		`UPDATE users SET avatar_url = $2, avatar_public_id = $3, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, ref.URL, ref.PublicID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireAffected(res)
}

func (r *PostgresRepository) UpdateCoverImage(ctx context.Context, id string, ref models.MediaRef) error {
	query :=
		`UPDATE users SET cover_image_url = $2, cover_image_public_id = $3, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, ref.URL, ref.PublicID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireAffected(res)
}

// AddToWatchHistory records that userID opened videoID; reopening moves it
// to the front.
func (r *PostgresRepository) AddToWatchHistory(ctx context.Context, userID, videoID string) error {
	query :=
		`INSERT INTO watch_history (user_id, video_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = now()
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, videoID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) WatchHistory(ctx context.Context, userID string) ([]models.VideoWithOwner, error) {
	query := `SELECT ` + videos.WithOwnerColumns + `
		 FROM watch_history w
		 JOIN videos v ON v.id = w.video_id
		 JOIN users o ON o.id = v.owner_id
		 WHERE w.user_id = $1
		 ORDER BY w.watched_at DESC
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
