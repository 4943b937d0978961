package order

import (
	"context"
	"database/sql"
	"time"

	"github.com/fuazim/fitcamp/internal/db"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/lo"
)

const orderColumns = `id, booking_code, user_id, plan_id, gym_id, promo_code_id, status, subtotal_cents,
	discount_cents, total_cents, payment_method, paid_at, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) LatestBookingCode(ctx context.Context) (string, error) {
	var code string
	err := db.Conn(ctx, r.db).GetContext(ctx, &code, `
		SELECT booking_code FROM orders
		WHERE booking_code LIKE 'FITCAMP-%'
		ORDER BY created_at DESC
		LIMIT 1`)
	return code, err
}

func (r *repository) BookingCodeExists(ctx context.Context, code string) (bool, error) {
	return db.Exists(ctx, db.Conn(ctx, r.db),
		`SELECT EXISTS(SELECT 1 FROM orders WHERE booking_code = $1)`, code)
}

func (r *repository) Create(ctx context.Context, o *Order) (*Order, error) {
	query := `
		INSERT INTO orders (id, booking_code, user_id, plan_id, gym_id, promo_code_id, status,
			subtotal_cents, discount_cents, total_cents, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + orderColumns

	var created Order
	err := db.Conn(ctx, r.db).GetContext(ctx, &created, query,
		uuid.NewString(), o.BookingCode, o.UserID, o.PlanID, o.GymID, o.PromoCodeID, o.Status,
		o.SubtotalCents, o.DiscountCents, o.TotalCents, o.PaymentMethod)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Order, error) {
	return r.findOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (r *repository) FindByBookingCode(ctx context.Context, code string) (*Order, error) {
	return r.findOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE booking_code = $1`, code)
}

func (r *repository) findOne(ctx context.Context, query string, arg string) (*Order, error) {
	var o Order
	if err := db.Conn(ctx, r.db).GetContext(ctx, &o, query, arg); err != nil {
		return nil, err
	}

	orders := []Order{o}
	if err := r.loadRelations(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// List returns orders newest first. An empty status means all orders.
func (r *repository) List(ctx context.Context, status Status) ([]Order, error) {
	orders := []Order{}
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	if err := db.Conn(ctx, r.db).SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// MarkPaid only moves a PENDING order.
func (r *repository) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx, `
		UPDATE orders SET status = 'PAID', paid_at = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'PENDING'`, id, paidAt)
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

func (r *repository) loadRelations(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}
	q := db.Conn(ctx, r.db)

	orderIDs := lo.Map(orders, func(o Order, _ int) string { return o.ID })
	userIDs := lo.Uniq(lo.Map(orders, func(o Order, _ int) string { return o.UserID }))
	planIDs := lo.Uniq(lo.Map(orders, func(o Order, _ int) string { return o.PlanID }))
	gymIDs := lo.Uniq(lo.FilterMap(orders, func(o Order, _ int) (string, bool) {
		return lo.FromPtr(o.GymID), o.GymID != nil
	}))

	var users []Customer
	if err := q.SelectContext(ctx, &users,
		`SELECT id, name, email, phone FROM users WHERE id = ANY($1)`, pq.Array(userIDs)); err != nil {
		return err
	}
	var plans []PlanRef
	if err := q.SelectContext(ctx, &plans,
		`SELECT id, name, price_cents, currency, period_months FROM subscription_plans WHERE id = ANY($1)`,
		pq.Array(planIDs)); err != nil {
		return err
	}
	var gyms []GymRef
	if len(gymIDs) > 0 {
		if err := q.SelectContext(ctx, &gyms,
			`SELECT id, name, slug, address FROM gyms WHERE id = ANY($1)`, pq.Array(gymIDs)); err != nil {
			return err
		}
	}
	var payments []PaymentRef
	if err := q.SelectContext(ctx, &payments, `
		SELECT id, order_id, status, method, amount_cents, proof_url, created_at
		FROM payments WHERE order_id = ANY($1)`, pq.Array(orderIDs)); err != nil {
		return err
	}

	usersByID := lo.KeyBy(users, func(u Customer) string { return u.ID })
	plansByID := lo.KeyBy(plans, func(p PlanRef) string { return p.ID })
	gymsByID := lo.KeyBy(gyms, func(g GymRef) string { return g.ID })
	paymentsByOrder := lo.KeyBy(payments, func(p PaymentRef) string { return p.OrderID })

	for i := range orders {
		o := &orders[i]
		if u, ok := usersByID[o.UserID]; ok {
			o.User = &u
		}
		if p, ok := plansByID[o.PlanID]; ok {
			o.Plan = &p
		}
		if o.GymID != nil {
			if g, ok := gymsByID[*o.GymID]; ok {
				o.Gym = &g
			}
		}
		if p, ok := paymentsByOrder[o.ID]; ok {
			o.Payment = &p
		}
	}
	return nil
}
