package ticket

import (
	"context"

	"github.com/fuazim/fitcamp/internal/db"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const ticketColumns = `id, order_id, starts_at, ends_at, status, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Ticket) (*Ticket, error) {
	status := t.Status
	if status == "" {
		status = StatusActive
	}

	var created Ticket
	err := db.Conn(ctx, r.db).GetContext(ctx, &created, `
		INSERT INTO tickets (id, order_id, starts_at, ends_at, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+ticketColumns,
		uuid.NewString(), t.OrderID, t.StartsAt, t.EndsAt, status)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) ListByOrderIDs(ctx context.Context, orderIDs []string) ([]Ticket, error) {
	tickets := []Ticket{}
	if len(orderIDs) == 0 {
		return tickets, nil
	}
	err := db.Conn(ctx, r.db).SelectContext(ctx, &tickets,
		`SELECT `+ticketColumns+` FROM tickets WHERE order_id = ANY($1)`, pq.Array(orderIDs))
	return tickets, err
}
