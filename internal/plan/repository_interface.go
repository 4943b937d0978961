package plan

import "context"

type Repository interface {
	ListActive(ctx context.Context) ([]Plan, error)
	FindByID(ctx context.Context, id string) (*Plan, error)
}
