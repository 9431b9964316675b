package videos

import "github.com/dmitrijs2005/vidtube/internal/server/models"

// Columns selects a video aliased as v.
const Columns = `v.id, v.video_url, v.video_public_id, v.thumbnail_url, v.thumbnail_public_id,
		 v.owner_id, v.title, v.description, v.duration, v.views, v.is_published, v.created_at, v.updated_at`

// WithOwnerColumns is Columns plus the owner card of a user aliased as o.
const WithOwnerColumns = Columns + `,
		 o.id, o.username, o.full_name, o.avatar_url`

// Scanner is implemented by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

func videoDest(v *models.Video) []any {
	return []any{&v.ID, &v.VideoFile.URL, &v.VideoFile.PublicID, &v.Thumbnail.URL, &v.Thumbnail.PublicID,
		&v.OwnerID, &v.Title, &v.Description, &v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt}
}

func ownerDest(o *models.OwnerSummary) []any {
	return []any{&o.ID, &o.Username, &o.FullName, &o.Avatar}
}

// Scan reads a row selected with Columns, followed by extra destinations.
func Scan(row Scanner, extra ...any) (*models.Video, error) {
	v := &models.Video{}
	if err := row.Scan(append(videoDest(v), extra...)...); err != nil {
		return nil, err
	}
	return v, nil
}

// ScanWithOwner reads a row selected with WithOwnerColumns.
func ScanWithOwner(row Scanner) (models.VideoWithOwner, error) {
	var item models.VideoWithOwner
	dest := append(videoDest(&item.Video), ownerDest(&item.Owner)...)
	if err := row.Scan(dest...); err != nil {
		return models.VideoWithOwner{}, err
	}
	return item, nil
}
