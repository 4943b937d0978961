package ticket

import "context"

type Repository interface {
	Create(ctx context.Context, t *Ticket) (*Ticket, error)
	ListByOrderIDs(ctx context.Context, orderIDs []string) ([]Ticket, error)
}
