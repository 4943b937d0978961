package gym

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fuazim/fitcamp/internal/db"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/lo"
)

const gymColumns = `id, name, slug, location_text, address, city_id, main_image_url, thumbnail_url,
	is_popular, opening_start_time, opening_end_time, contact_person_name, contact_person_phone,
	latitude, longitude, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Gym, error) {
	gyms := []Gym{}
	query := `SELECT ` + gymColumns + ` FROM gyms ORDER BY created_at DESC`
	if err := db.Conn(ctx, r.db).SelectContext(ctx, &gyms, query); err != nil {
		return nil, err
	}
	return gyms, r.loadRelations(ctx, gyms)
}

// Search filters by city and a case-insensitive match on name, location
// or address. Popular gyms come first.
func (r *repository) Search(ctx context.Context, cityID, q string) ([]Gym, error) {
	query := `SELECT ` + gymColumns + ` FROM gyms WHERE TRUE`
	var args []interface{}

	if cityID != "" {
		args = append(args, cityID)
		query += fmt.Sprintf(` AND city_id = $%d`, len(args))
	}
	if q != "" {
		args = append(args, "%"+likeEscaper.Replace(q)+"%")
		n := len(args)
		query += fmt.Sprintf(` AND (name ILIKE $%d OR location_text ILIKE $%d OR address ILIKE $%d)`, n, n, n)
	}
	query += ` ORDER BY is_popular DESC, created_at DESC`

	gyms := []Gym{}
	if err := db.Conn(ctx, r.db).SelectContext(ctx, &gyms, query, args...); err != nil {
		return nil, err
	}
	return gyms, r.loadRelations(ctx, gyms)
}

func (r *repository) FindByID(ctx context.Context, id string) (*Gym, error) {
	return r.findOne(ctx, `id = $1`, id)
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*Gym, error) {
	return r.findOne(ctx, `slug = $1`, slug)
}

func (r *repository) findOne(ctx context.Context, where string, arg interface{}) (*Gym, error) {
	var g Gym
	query := `SELECT ` + gymColumns + ` FROM gyms WHERE ` + where
	if err := db.Conn(ctx, r.db).GetContext(ctx, &g, query, arg); err != nil {
		return nil, err
	}

	gyms := []Gym{g}
	if err := r.loadRelations(ctx, gyms); err != nil {
		return nil, err
	}
	return &gyms[0], nil
}

func (r *repository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	return db.Exists(ctx, db.Conn(ctx, r.db),
		`SELECT EXISTS(SELECT 1 FROM gyms WHERE slug = $1 AND id <> $2)`, slug, excludeID)
}

func (r *repository) Create(ctx context.Context, g *Gym) (*Gym, error) {
	query := `
		INSERT INTO gyms (id, name, slug, location_text, address, city_id, main_image_url, thumbnail_url,
			is_popular, opening_start_time, opening_end_time, contact_person_name, contact_person_phone,
			latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + gymColumns

	var created Gym
	err := db.Conn(ctx, r.db).GetContext(ctx, &created, query,
		uuid.NewString(), g.Name, g.Slug, g.LocationText, g.Address, g.CityID, g.MainImageURL, g.ThumbnailURL,
		g.IsPopular, g.OpeningStartTime, g.OpeningEndTime, g.ContactPersonName, g.ContactPersonPhone,
		g.Latitude, g.Longitude)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) Update(ctx context.Context, g *Gym) error {
	query := `
		UPDATE gyms SET name = $2, slug = $3, location_text = $4, address = $5, city_id = $6,
			main_image_url = $7, thumbnail_url = $8, is_popular = $9, opening_start_time = $10,
			opening_end_time = $11, contact_person_name = $12, contact_person_phone = $13,
			latitude = $14, longitude = $15, updated_at = NOW()
		WHERE id = $1
	`

	res, err := db.Conn(ctx, r.db).ExecContext(ctx, query,
		g.ID, g.Name, g.Slug, g.LocationText, g.Address, g.CityID, g.MainImageURL, g.ThumbnailURL,
		g.IsPopular, g.OpeningStartTime, g.OpeningEndTime, g.ContactPersonName, g.ContactPersonPhone,
		g.Latitude, g.Longitude)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *repository) ReplaceFacilities(ctx context.Context, gymID string, facilityIDs []string) error {
	q := db.Conn(ctx, r.db)
	if _, err := q.ExecContext(ctx, `DELETE FROM gym_facilities WHERE gym_id = $1`, gymID); err != nil {
		return err
	}
	for _, facilityID := range lo.Uniq(facilityIDs) {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO gym_facilities (gym_id, facility_id) VALUES ($1, $2)`, gymID, facilityID); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) ReplaceImages(ctx context.Context, gymID string, images []Image) error {
	q := db.Conn(ctx, r.db)
	if _, err := q.ExecContext(ctx, `DELETE FROM gym_images WHERE gym_id = $1`, gymID); err != nil {
		return err
	}
	for _, img := range images {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO gym_images (id, gym_id, url, sort_order) VALUES ($1, $2, $3, $4)`,
			uuid.NewString(), gymID, img.URL, img.SortOrder); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM gyms WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// loadRelations fills city, images and facilities with one query each.
func (r *repository) loadRelations(ctx context.Context, gyms []Gym) error {
	if len(gyms) == 0 {
		return nil
	}
	q := db.Conn(ctx, r.db)

	gymIDs := lo.Map(gyms, func(g Gym, _ int) string { return g.ID })
	cityIDs := lo.Uniq(lo.Map(gyms, func(g Gym, _ int) string { return g.CityID }))

	var cities []CityRef
	if err := q.SelectContext(ctx, &cities,
		`SELECT id, name, slug FROM cities WHERE id = ANY($1)`, pq.Array(cityIDs)); err != nil {
		return fmt.Errorf("load gym cities: %w", err)
	}

	var images []Image
	if err := q.SelectContext(ctx, &images,
		`SELECT id, gym_id, url, sort_order FROM gym_images WHERE gym_id = ANY($1) ORDER BY sort_order ASC`,
		pq.Array(gymIDs)); err != nil {
		return fmt.Errorf("load gym images: %w", err)
	}

	var facilities []Facility
	if err := q.SelectContext(ctx, &facilities, `
		SELECT gf.gym_id, f.id, f.name, f.description, f.icon_url
		FROM gym_facilities gf
		JOIN facilities f ON f.id = gf.facility_id
		WHERE gf.gym_id = ANY($1)
		ORDER BY f.name ASC`, pq.Array(gymIDs)); err != nil {
		return fmt.Errorf("load gym facilities: %w", err)
	}

	cityByID := lo.KeyBy(cities, func(c CityRef) string { return c.ID })
	imagesByGym := lo.GroupBy(images, func(i Image) string { return i.GymID })
	facilitiesByGym := lo.GroupBy(facilities, func(f Facility) string { return f.GymID })

	for i := range gyms {
		if c, ok := cityByID[gyms[i].CityID]; ok {
			gyms[i].City = &c
		}
		gyms[i].Images = append([]Image{}, imagesByGym[gyms[i].ID]...)
		gyms[i].Facilities = append([]Facility{}, facilitiesByGym[gyms[i].ID]...)
	}
	return nil
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
