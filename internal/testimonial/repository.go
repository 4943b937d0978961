package testimonial

import (
	"context"
	"database/sql"

	"github.com/fuazim/fitcamp/internal/db"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const selectTestimonials = `
	SELECT t.id, t.name, t.role, t.text, t.image_url, t.gym_id, t.is_active, t.sort_order,
		t.created_at, t.updated_at, g.name AS gym_name, g.slug AS gym_slug
	FROM testimonials t
	LEFT JOIN gyms g ON g.id = t.gym_id`

const testimonialOrder = ` ORDER BY t.sort_order ASC, t.created_at DESC`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Testimonial, error) {
	items := []Testimonial{}
	if err := db.Conn(ctx, r.db).SelectContext(ctx, &items, selectTestimonials+testimonialOrder); err != nil {
		return nil, err
	}
	for i := range items {
		attachGym(&items[i])
	}
	return items, nil
}

// ListActiveByGymSlug yields an empty list for an unknown slug.
func (r *repository) ListActiveByGymSlug(ctx context.Context, gymSlug string) ([]Testimonial, error) {
	items := []Testimonial{}
	query := selectTestimonials + ` WHERE g.slug = $1 AND t.is_active = TRUE` + testimonialOrder
	if err := db.Conn(ctx, r.db).SelectContext(ctx, &items, query, gymSlug); err != nil {
		return nil, err
	}
	for i := range items {
		attachGym(&items[i])
	}
	return items, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Testimonial, error) {
	var t Testimonial
	if err := db.Conn(ctx, r.db).GetContext(ctx, &t, selectTestimonials+` WHERE t.id = $1`, id); err != nil {
		return nil, err
	}
	attachGym(&t)
	return &t, nil
}

func (r *repository) Create(ctx context.Context, t *Testimonial) (string, error) {
	query := `
		INSERT INTO testimonials (id, name, role, text, image_url, gym_id, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id string
	err := db.Conn(ctx, r.db).GetContext(ctx, &id, query,
		uuid.NewString(), t.Name, t.Role, t.Text, t.ImageURL, t.GymID, t.IsActive, t.SortOrder)
	return id, err
}

func (r *repository) Update(ctx context.Context, t *Testimonial) error {
	query := `
		UPDATE testimonials
		SET name = $2, role = $3, text = $4, image_url = $5, gym_id = $6, is_active = $7, sort_order = $8, updated_at = NOW()
		WHERE id = $1
	`

	res, err := db.Conn(ctx, r.db).ExecContext(ctx, query,
		t.ID, t.Name, t.Role, t.Text, t.ImageURL, t.GymID, t.IsActive, t.SortOrder)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func attachGym(t *Testimonial) {
	if t.GymID == nil || t.GymName == nil {
		return
	}
	t.Gym = &GymRef{ID: *t.GymID, Name: *t.GymName, Slug: *t.GymSlug}
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
