package city

import "time"

type City struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Slug         string    `db:"slug" json:"slug"`
	ThumbnailURL *string   `db:"thumbnail_url" json:"thumbnailUrl"`
	GymCount     int       `db:"gym_count" json:"gymCount"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

type CityRequest struct {
	Name         string `json:"name"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// PublicCity is the storefront city card.
type PublicCity struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ThumbnailURL string `json:"thumbnailUrl"`
	GymCount     int    `json:"gymCount"`
}
