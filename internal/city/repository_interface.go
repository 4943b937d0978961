package city

import "context"

type Repository interface {
	List(ctx context.Context) ([]City, error)
	ListWithThumbnail(ctx context.Context) ([]City, error)
	FindByID(ctx context.Context, id string) (*City, error)
	FindBySlug(ctx context.Context, slug string) (*City, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, name, slug, thumbnailURL string) (*City, error)
	Update(ctx context.Context, id, name, slug, thumbnailURL string) (*City, error)
	Delete(ctx context.Context, id string) error
}
