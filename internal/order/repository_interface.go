package order

import (
	"context"
	"time"
)

type Repository interface {
	CodeStore
	Create(ctx context.Context, o *Order) (*Order, error)
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByBookingCode(ctx context.Context, code string) (*Order, error)
	List(ctx context.Context, status Status) ([]Order, error)
	MarkPaid(ctx context.Context, id string, paidAt time.Time) error
}
