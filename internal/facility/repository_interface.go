package facility

import "context"

type Repository interface {
	List(ctx context.Context) ([]Facility, error)
	FindByID(ctx context.Context, id string) (*Facility, error)
	Create(ctx context.Context, name string, description, iconURL *string) (*Facility, error)
	Update(ctx context.Context, id, name string, description, iconURL *string) (*Facility, error)
	Delete(ctx context.Context, id string) error
}
