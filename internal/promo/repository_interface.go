package promo

import "context"

type Repository interface {
	List(ctx context.Context) ([]PromoCode, error)
	FindByID(ctx context.Context, id string) (*PromoCode, error)
	FindByCode(ctx context.Context, code string) (*PromoCode, error)
	FindByCodeForUpdate(ctx context.Context, code string) (*PromoCode, error)
	CodeExists(ctx context.Context, code, excludeID string) (bool, error)
	Create(ctx context.Context, p *PromoCode) (*PromoCode, error)
	Update(ctx context.Context, p *PromoCode) (*PromoCode, error)
	IncrementUsage(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
