package promo

import (
	"context"
	"database/sql"

	"github.com/fuazim/fitcamp/internal/db"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const promoColumns = `id, code, description, discount_percent, discount_cents, min_purchase_cents,
	max_discount_cents, usage_limit, used_count, is_active, valid_from, valid_until, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]PromoCode, error) {
	promos := []PromoCode{}
	query := `SELECT ` + promoColumns + ` FROM promo_codes ORDER BY created_at DESC`
	err := db.Conn(ctx, r.db).SelectContext(ctx, &promos, query)
	return promos, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*PromoCode, error) {
	var p PromoCode
	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE id = $1`
	if err := db.Conn(ctx, r.db).GetContext(ctx, &p, query, id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (*PromoCode, error) {
	var p PromoCode
	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE code = $1`
	if err := db.Conn(ctx, r.db).GetContext(ctx, &p, query, code); err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByCodeForUpdate locks the row until the surrounding transaction ends,
// so concurrent checkouts see each other's usage increments.
func (r *repository) FindByCodeForUpdate(ctx context.Context, code string) (*PromoCode, error) {
	var p PromoCode
	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE code = $1 FOR UPDATE`
	if err := db.Conn(ctx, r.db).GetContext(ctx, &p, query, code); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) CodeExists(ctx context.Context, code, excludeID string) (bool, error) {
	return db.Exists(ctx, db.Conn(ctx, r.db),
		`SELECT EXISTS(SELECT 1 FROM promo_codes WHERE code = $1 AND id <> $2)`, code, excludeID)
}

func (r *repository) Create(ctx context.Context, p *PromoCode) (*PromoCode, error) {
	query := `
		INSERT INTO promo_codes (id, code, description, discount_percent, discount_cents, min_purchase_cents,
			max_discount_cents, usage_limit, is_active, valid_from, valid_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + promoColumns

	var created PromoCode
	err := db.Conn(ctx, r.db).GetContext(ctx, &created, query,
		uuid.NewString(), p.Code, p.Description, p.DiscountPercent, p.DiscountCents, p.MinPurchaseCents,
		p.MaxDiscountCents, p.UsageLimit, p.IsActive, p.ValidFrom, p.ValidUntil)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) Update(ctx context.Context, p *PromoCode) (*PromoCode, error) {
	query := `
		UPDATE promo_codes
		SET code = $2, description = $3, discount_percent = $4, discount_cents = $5, min_purchase_cents = $6,
			max_discount_cents = $7, usage_limit = $8, is_active = $9, valid_from = $10, valid_until = $11,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + promoColumns

	var updated PromoCode
	err := db.Conn(ctx, r.db).GetContext(ctx, &updated, query,
		p.ID, p.Code, p.Description, p.DiscountPercent, p.DiscountCents, p.MinPurchaseCents,
		p.MaxDiscountCents, p.UsageLimit, p.IsActive, p.ValidFrom, p.ValidUntil)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *repository) IncrementUsage(ctx context.Context, id string) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx,
		`UPDATE promo_codes SET used_count = used_count + 1, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM promo_codes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
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
