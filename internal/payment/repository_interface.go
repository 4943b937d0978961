package payment

import "context"

type Repository interface {
	FindByID(ctx context.Context, id string) (*Payment, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Payment, error)
	FindByOrderID(ctx context.Context, orderID string) (*Payment, error)
	List(ctx context.Context, status Status) ([]Payment, error)
	Create(ctx context.Context, p *Payment) (*Payment, error)
	Resubmit(ctx context.Context, id, method, proofURL string) (*Payment, error)
	SetStatus(ctx context.Context, id string, status Status) error
}
