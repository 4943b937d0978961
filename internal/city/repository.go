package city

import (
	"context"
	"database/sql"

	"github.com/fuazim/fitcamp/internal/db"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const selectCities = `
	SELECT c.id, c.name, c.slug, c.thumbnail_url, c.created_at, c.updated_at,
		(SELECT COUNT(*) FROM gyms g WHERE g.city_id = c.id) AS gym_count
	FROM cities c`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]City, error) {
	cities := []City{}
	err := db.Conn(ctx, r.db).SelectContext(ctx, &cities, selectCities+` ORDER BY c.name ASC`)
	return cities, err
}

func (r *repository) ListWithThumbnail(ctx context.Context) ([]City, error) {
	cities := []City{}
	err := db.Conn(ctx, r.db).SelectContext(ctx, &cities, selectCities+` WHERE c.thumbnail_url IS NOT NULL ORDER BY c.name ASC`)
	return cities, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*City, error) {
	var c City
	if err := db.Conn(ctx, r.db).GetContext(ctx, &c, selectCities+` WHERE c.id = $1`, id); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*City, error) {
	var c City
	if err := db.Conn(ctx, r.db).GetContext(ctx, &c, selectCities+` WHERE c.slug = $1`, slug); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	return db.Exists(ctx, db.Conn(ctx, r.db),
		`SELECT EXISTS(SELECT 1 FROM cities WHERE slug = $1 AND id <> $2)`, slug, excludeID)
}

func (r *repository) Create(ctx context.Context, name, slug, thumbnailURL string) (*City, error) {
	query := `
		INSERT INTO cities (id, name, slug, thumbnail_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, slug, thumbnail_url, created_at, updated_at, 0 AS gym_count
	`

	var c City
	if err := db.Conn(ctx, r.db).GetContext(ctx, &c, query, uuid.NewString(), name, slug, thumbnailURL); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Update(ctx context.Context, id, name, slug, thumbnailURL string) (*City, error) {
	query := `
		UPDATE cities SET name = $2, slug = $3, thumbnail_url = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, slug, thumbnail_url, created_at, updated_at,
			(SELECT COUNT(*) FROM gyms g WHERE g.city_id = cities.id) AS gym_count
	`

	var c City
	if err := db.Conn(ctx, r.db).GetContext(ctx, &c, query, id, name, slug, thumbnailURL); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM cities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
