package facility

import (
	"context"
	"database/sql"

	"github.com/fuazim/fitcamp/internal/db"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const gymCount = `(SELECT COUNT(*) FROM gym_facilities gf WHERE gf.facility_id = facilities.id) AS gym_count`

const facilityColumns = `id, name, description, icon_url, created_at, updated_at, ` + gymCount

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Facility, error) {
	facilities := []Facility{}
	query := `SELECT ` + facilityColumns + ` FROM facilities ORDER BY name ASC`
	err := db.Conn(ctx, r.db).SelectContext(ctx, &facilities, query)
	return facilities, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Facility, error) {
	var f Facility
	query := `SELECT ` + facilityColumns + ` FROM facilities WHERE id = $1`
	if err := db.Conn(ctx, r.db).GetContext(ctx, &f, query, id); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repository) Create(ctx context.Context, name string, description, iconURL *string) (*Facility, error) {
	query := `
		INSERT INTO facilities (id, name, description, icon_url)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + facilityColumns

	var f Facility
	if err := db.Conn(ctx, r.db).GetContext(ctx, &f, query, uuid.NewString(), name, description, iconURL); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repository) Update(ctx context.Context, id, name string, description, iconURL *string) (*Facility, error) {
	query := `
		UPDATE facilities SET name = $2, description = $3, icon_url = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + facilityColumns

	var f Facility
	if err := db.Conn(ctx, r.db).GetContext(ctx, &f, query, id, name, description, iconURL); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM facilities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
