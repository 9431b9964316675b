package models

import "time"

type Video struct {
	ID          string    `json:"_id"`
	VideoFile   MediaRef  `json:"videoFile"`
	Thumbnail   MediaRef  `json:"thumbnail"`
	OwnerID     string    `json:"owner"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Sortable video columns accepted by listing endpoints.
var VideoSortFields = map[string]string{
	"createdAt": "v.created_at",
	"views":     "v.views",
	"duration":  "v.duration",
	"title":     "v.title",
}

// VideoQuery filters and orders a page of published videos.
type VideoQuery struct {
	Query    string
	SortBy   string
	SortDesc bool
	OwnerID  string
	PageRequest
}
