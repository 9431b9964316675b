package videos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

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

func notFoundOr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Create(ctx context.Context, v *models.Video) (*models.Video, error) {
	query :=
		`INSERT INTO videos (video_url, video_public_id, thumbnail_url, thumbnail_public_id,
		 owner_id, title, description, duration, is_published)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, views, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		v.VideoFile.URL, v.VideoFile.PublicID, v.Thumbnail.URL, v.Thumbnail.PublicID,
		v.OwnerID, v.Title, v.Description, v.Duration, v.IsPublished).
		Scan(&v.ID, &v.Views, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Video, error) {
	query := `SELECT ` + Columns + ` FROM videos v
		 WHERE v.id = $1
		 `

	v, err := Scan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return v, nil
}

// GetDetails loads a video with its owner's channel card and like counters
// relative to viewerID.
func (r *PostgresRepository) GetDetails(ctx context.Context, id, viewerID string) (*models.VideoDetails, error) {
	query := `SELECT ` + WithOwnerColumns + `,
		 (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = o.id),
		 EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = o.id AND s.subscriber_id::text = $2),
		 (SELECT COUNT(*) FROM likes l WHERE l.video_id = v.id),
		 EXISTS (SELECT 1 FROM likes l WHERE l.video_id = v.id AND l.liked_by::text = $2)
		 FROM videos v
		 JOIN users o ON o.id = v.owner_id
		 WHERE v.id = $1
		 `

	d := &models.VideoDetails{}
	dest := append(videoDest(&d.Video), ownerDest(&d.Owner.OwnerSummary)...)
	dest = append(dest, &d.Owner.SubscribersCount, &d.Owner.IsSubscribed, &d.LikesCount, &d.IsLiked)
	if err := r.db.QueryRowContext(ctx, query, id, viewerID).Scan(dest...); err != nil {
		return nil, notFoundOr(err)
	}
	return d, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// List returns one page of published videos matching q and the total count.
func (r *PostgresRepository) List(ctx context.Context, q models.VideoQuery) ([]models.VideoWithOwner, int64, error) {
	page := q.PageRequest.Normalize()

	sortCol, ok := models.VideoSortFields[q.SortBy]
	if !ok {
		sortCol = models.VideoSortFields["createdAt"]
	}
	dir := "ASC"
	if q.SortDesc {
		dir = "DESC"
	}

	where := `WHERE v.is_published
		 AND ($1 = '' OR v.title ILIKE '%' || $1 || '%' ESCAPE '\' OR v.description ILIKE '%' || $1 || '%' ESCAPE '\')
		 AND ($2 = '' OR v.owner_id::text = $2)`

	search := escapeLike(q.Query)

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM videos v `+where, search, q.OwnerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := `SELECT ` + WithOwnerColumns + ` FROM videos v
		 JOIN users o ON o.id = v.owner_id
		 ` + where + `
		 ORDER BY ` + sortCol + ` ` + dir + `, v.id
		 LIMIT $3 OFFSET $4`

	rows, err := r.db.QueryContext(ctx, query, search, q.OwnerID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.VideoWithOwner{}
	for rows.Next() {
		item, err := ScanWithOwner(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	return out, total, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id, title, description string, thumbnail models.MediaRef) (*models.Video, error) {
	query :=
		`UPDATE videos v SET title = $2, description = $3, thumbnail_url = $4, thumbnail_public_id = $5, updated_at = now()
		 WHERE v.id = $1
		 RETURNING ` + Columns

	v, err := Scan(r.db.QueryRowContext(ctx, query, id, title, description, thumbnail.URL, thumbnail.PublicID))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return v, nil
}

func (r *PostgresRepository) SetPublished(ctx context.Context, id string, published bool) (*models.Video, error) {
	query :=
		`UPDATE videos v SET is_published = $2, updated_at = now()
		 WHERE v.id = $1
		 RETURNING ` + Columns

	v, err := Scan(r.db.QueryRowContext(ctx, query, id, published))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return v, nil
}

// Delete removes the video; comments, likes and playlist entries cascade.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireAffected(res)
}

func (r *PostgresRepository) IncrementViews(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE videos SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.RequireAffected(res)
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.DashboardVideo, error) {
	query := `SELECT ` + Columns + `,
		 (SELECT COUNT(*) FROM likes l WHERE l.video_id = v.id)
		 FROM videos v
		 WHERE v.owner_id = $1
		 ORDER BY v.created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.DashboardVideo{}
	for rows.Next() {
		var likes int64
		v, err := Scan(rows, &likes)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, models.DashboardVideo{Video: *v, LikesCount: likes})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) ChannelStats(ctx context.Context, ownerID string) (*models.ChannelStats, error) {
	query :=
		`SELECT
		 (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = $1),
		 (SELECT COUNT(*) FROM likes l JOIN videos v ON v.id = l.video_id WHERE v.owner_id = $1),
		 (SELECT COUNT(*) FROM videos v WHERE v.owner_id = $1),
		 (SELECT COALESCE(SUM(v.views), 0) FROM videos v WHERE v.owner_id = $1)
		 `

	s := &models.ChannelStats{}
	if err := r.db.QueryRowContext(ctx, query, ownerID).
		Scan(&s.TotalSubscribers, &s.TotalLikes, &s.TotalVideos, &s.TotalViews); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}
