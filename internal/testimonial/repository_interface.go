package testimonial

import "context"

type Repository interface {
	List(ctx context.Context) ([]Testimonial, error)
	ListActiveByGymSlug(ctx context.Context, gymSlug string) ([]Testimonial, error)
	FindByID(ctx context.Context, id string) (*Testimonial, error)
	Create(ctx context.Context, t *Testimonial) (string, error)
	Update(ctx context.Context, t *Testimonial) error
	Delete(ctx context.Context, id string) error
}
