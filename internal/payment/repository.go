package payment

import (
	"context"
	"database/sql"

	"github.com/fuazim/fitcamp/internal/db"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
)

const paymentColumns = `id, order_id, status, method, amount_cents, proof_url, created_at, updated_at`

const joinedSelect = `
	SELECT p.id, p.order_id, p.status, p.method, p.amount_cents, p.proof_url, p.created_at, p.updated_at,
		o.booking_code, o.status AS order_status, u.name AS customer_name, u.email AS customer_email,
		u.phone AS customer_phone, sp.name AS plan_name
	FROM payments p
	LEFT JOIN orders o ON o.id = p.order_id
	LEFT JOIN users u ON u.id = o.user_id
	LEFT JOIN subscription_plans sp ON sp.id = o.plan_id`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payment, error) {
	var p Payment
	if err := db.Conn(ctx, r.db).GetContext(ctx, &p, joinedSelect+` WHERE p.id = $1`, id); err != nil {
		return nil, err
	}
	attachOrder(&p)
	return &p, nil
}

// FindByIDForUpdate locks the payment row for the rest of the transaction.
func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Payment, error) {
	var p Payment
	err := db.Conn(ctx, r.db).GetContext(ctx, &p,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByOrderID(ctx context.Context, orderID string) (*Payment, error) {
	var p Payment
	err := db.Conn(ctx, r.db).GetContext(ctx, &p,
		`SELECT `+paymentColumns+` FROM payments WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns payments newest first. An empty status means all payments.
func (r *repository) List(ctx context.Context, status Status) ([]Payment, error) {
	payments := []Payment{}
	query := joinedSelect
	args := []interface{}{}
	if status != "" {
		query += ` WHERE p.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY p.created_at DESC`

	if err := db.Conn(ctx, r.db).SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, err
	}
	for i := range payments {
		attachOrder(&payments[i])
	}
	return payments, nil
}

func (r *repository) Create(ctx context.Context, p *Payment) (*Payment, error) {
	var created Payment
	err := db.Conn(ctx, r.db).GetContext(ctx, &created, `
		INSERT INTO payments (id, order_id, status, method, amount_cents, proof_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+paymentColumns,
		uuid.NewString(), p.OrderID, StatusWaitingProof, p.Method, p.AmountCents, p.ProofURL)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Resubmit replaces the proof and puts the payment back in review.
func (r *repository) Resubmit(ctx context.Context, id, method, proofURL string) (*Payment, error) {
	var updated Payment
	err := db.Conn(ctx, r.db).GetContext(ctx, &updated, `
		UPDATE payments
		SET method = $2, proof_url = $3, status = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+paymentColumns,
		id, method, proofURL, StatusWaitingProof)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *repository) SetStatus(ctx context.Context, id string, status Status) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx,
		`UPDATE payments SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
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

func attachOrder(p *Payment) {
	if p.BookingCode == nil {
		return
	}
	p.Order = &OrderRef{
		BookingCode:   *p.BookingCode,
		Status:        lo.FromPtr(p.OrderStatus),
		CustomerName:  lo.FromPtr(p.CustomerName),
		CustomerEmail: lo.FromPtr(p.CustomerEmail),
		CustomerPhone: p.CustomerPhone,
		PlanName:      lo.FromPtr(p.PlanName),
	}
}
