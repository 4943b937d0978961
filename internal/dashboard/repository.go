package dashboard

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Stats(ctx context.Context) (*Stats, error)
	Backlog(ctx context.Context) (*Backlog, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Stats(ctx context.Context) (*Stats, error) {
	var orders struct {
		OrderCounts
		RevenueCents int64 `db:"revenue_cents"`
	}
	err := r.db.GetContext(ctx, &orders, `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'PENDING') AS pending,
			COUNT(*) FILTER (WHERE status = 'PAID') AS paid,
			COUNT(*) FILTER (WHERE status = 'CANCELLED') AS cancelled,
			COUNT(*) FILTER (WHERE status = 'EXPIRED') AS expired,
			COALESCE(SUM(total_cents) FILTER (WHERE status = 'PAID'), 0) AS revenue_cents
		FROM orders`)
	if err != nil {
		return nil, err
	}

	var rest struct {
		Backlog
		Gyms   int64 `db:"gyms"`
		Cities int64 `db:"cities"`
	}
	err = r.db.GetContext(ctx, &rest, `
		SELECT
			(SELECT COUNT(*) FROM orders WHERE status = 'PENDING') AS pending_orders,
			(SELECT COUNT(*) FROM payments WHERE status = 'WAITING_PROOF') AS payments_waiting,
			(SELECT COUNT(*) FROM tickets WHERE status = 'ACTIVE' AND ends_at > NOW()) AS active_tickets,
			(SELECT COUNT(*) FROM gyms) AS gyms,
			(SELECT COUNT(*) FROM cities) AS cities`)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Orders:          orders.OrderCounts,
		RevenueCents:    orders.RevenueCents,
		PaymentsWaiting: rest.PaymentsWaiting,
		ActiveTickets:   rest.ActiveTickets,
		Gyms:            rest.Gyms,
		Cities:          rest.Cities,
	}, nil
}

func (r *repository) Backlog(ctx context.Context) (*Backlog, error) {
	var b Backlog
	err := r.db.GetContext(ctx, &b, `
		SELECT
			(SELECT COUNT(*) FROM orders WHERE status = 'PENDING') AS pending_orders,
			(SELECT COUNT(*) FROM payments WHERE status = 'WAITING_PROOF') AS payments_waiting,
			(SELECT COUNT(*) FROM tickets WHERE status = 'ACTIVE' AND ends_at > NOW()) AS active_tickets`)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
