package user

import (
	"context"

	"github.com/fuazim/fitcamp/internal/auth"
	"github.com/fuazim/fitcamp/internal/db"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const userColumns = `id, name, email, phone, role, password_hash, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user User
	if err := db.Conn(ctx, r.db).GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user User
	if err := db.Conn(ctx, r.db).GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertCustomer creates a USER on first checkout and refreshes name and
// phone on later ones. The role of an existing row is left alone.
func (r *repository) UpsertCustomer(ctx context.Context, name, email, phone string) (*User, error) {
	query := `
		INSERT INTO users (id, name, email, phone, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name, phone = EXCLUDED.phone, updated_at = NOW()
		RETURNING ` + userColumns

	var user User
	err := db.Conn(ctx, r.db).GetContext(ctx, &user, query, uuid.NewString(), name, email, phone, auth.RoleUser)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) UpsertAdmin(ctx context.Context, name, email, passwordHash string) (*User, error) {
	query := `
		INSERT INTO users (id, name, email, role, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name, role = EXCLUDED.role, password_hash = EXCLUDED.password_hash, updated_at = NOW()
		RETURNING ` + userColumns

	var user User
	err := db.Conn(ctx, r.db).GetContext(ctx, &user, query, uuid.NewString(), name, email, auth.RoleAdmin, passwordHash)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
