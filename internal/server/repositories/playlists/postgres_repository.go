package playlists

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vidtube/internal/common"
	"github.com/dmitrijs2005/vidtube/internal/dbx"
	"github.com/dmitrijs2005/vidtube/internal/server/models"
	"github.com/dmitrijs2005/vidtube/internal/server/repositories/videos"
	"github.com/jackc/pgx/v5/pgtype"
)

type PostgresRepository struct {
	db    dbx.DBTX
	types *pgtype.Map
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, types: pgtype.NewMap()}
}

// columns selects a playlist aliased as p with its video ids in insertion order.
const columns = `p.id, p.name, p.description, p.owner_id, p.created_at, p.updated_at,
		 COALESCE((SELECT array_agg(pv.video_id::text ORDER BY pv.added_at)
		           FROM playlist_videos pv WHERE pv.playlist_id = p.id), '{}')`

func (r *PostgresRepository) scanPlaylist(row interface{ Scan(...any) error }) (*models.Playlist, error) {
	p := &models.Playlist{}
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
		r.types.SQLScanner(&p.Videos)); err != nil {
		return nil, err
	}
	if p.Videos == nil {
		p.Videos = []string{}
	}
	return p, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Playlist) (*models.Playlist, error) {
	query :=
		`INSERT INTO playlists (name, description, owner_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	if err := r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.OwnerID).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if p.Videos == nil {
		p.Videos = []string{}
	}
	return p, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Playlist, error) {
	query := `SELECT ` + columns + ` FROM playlists p
		 WHERE p.id = $1
		 `

	p, err := r.scanPlaylist(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return p, nil
}

// GetDetails loads the playlist, its owner card and its published videos.
func (r *PostgresRepository) GetDetails(ctx context.Context, id string) (*models.PlaylistDetails, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	d := &models.PlaylistDetails{Playlist: *p, VideoItems: []models.VideoWithOwner{}}

	o := &d.Owner
	err = r.db.QueryRowContext(ctx, `SELECT id, username, full_name, avatar_url FROM users WHERE id = $1`, p.OwnerID).
		Scan(&o.ID, &o.Username, &o.FullName, &o.Avatar)
	if err != nil {
		return nil, notFoundOr(err)
	}

	query := `SELECT ` + videos.WithOwnerColumns + `
		 FROM playlist_videos pv
		 JOIN videos v ON v.id = pv.video_id
		 JOIN users o ON o.id = v.owner_id
		 WHERE pv.playlist_id = $1 AND v.is_published
		 ORDER BY pv.added_at
		 `

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := videos.ScanWithOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		d.VideoItems = append(d.VideoItems, item)
		d.TotalViews += item.Views
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	d.TotalVideos = len(d.VideoItems)
	return d, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Playlist, error) {
	query := `SELECT ` + columns + ` FROM playlists p
		 WHERE p.owner_id = $1
		 ORDER BY p.created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.Playlist{}
	for rows.Next() {
		p, err := r.scanPlaylist(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id, name, description string) (*models.Playlist, error) {
	query :=
		`UPDATE playlists p SET name = $2, description = $3, updated_at = now()
		 WHERE p.id = $1
		 RETURNING ` + columns

	p, err := r.scanPlaylist(r.db.QueryRowContext(ctx, query, id, name, description))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireAffected(res)
}

// AddVideo appends videoID; adding a video twice is a no-op.
func (r *PostgresRepository) AddVideo(ctx context.Context, playlistID, videoID string) error {
	query :=
		`INSERT INTO playlist_videos (playlist_id, video_id) VALUES ($1, $2)
		 ON CONFLICT (playlist_id, video_id) DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, playlistID, videoID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// RemoveVideo drops videoID; removing an absent video is a no-op.
func (r *PostgresRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) error {
	query := `DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`

	if _, err := r.db.ExecContext(ctx, query, playlistID, videoID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
