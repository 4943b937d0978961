package gym

import "context"

type Repository interface {
	List(ctx context.Context) ([]Gym, error)
	Search(ctx context.Context, cityID, query string) ([]Gym, error)
	FindByID(ctx context.Context, id string) (*Gym, error)
	FindBySlug(ctx context.Context, slug string) (*Gym, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, g *Gym) (*Gym, error)
	Update(ctx context.Context, g *Gym) error
	ReplaceFacilities(ctx context.Context, gymID string, facilityIDs []string) error
	ReplaceImages(ctx context.Context, gymID string, images []Image) error
	Delete(ctx context.Context, id string) error
}
