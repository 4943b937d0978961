package testimonial

import "time"

type Testimonial struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Role      string    `db:"role" json:"role"`
	Text      string    `db:"text" json:"text"`
	ImageURL  *string   `db:"image_url" json:"imageUrl"`
	GymID     *string   `db:"gym_id" json:"gymId"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	SortOrder int       `db:"sort_order" json:"sortOrder"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	GymName   *string   `db:"gym_name" json:"-"`
	GymSlug   *string   `db:"gym_slug" json:"-"`
	Gym       *GymRef   `db:"-" json:"gym"`
}

type GymRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type TestimonialRequest struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Text      string `json:"text"`
	ImageURL  string `json:"imageUrl"`
	GymID     string `json:"gymId"`
	IsActive  *bool  `json:"isActive"`
	SortOrder int    `json:"sortOrder"`
}

type PublicTestimonial struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	Text     string  `json:"text"`
	ImageURL *string `json:"imageUrl"`
}
