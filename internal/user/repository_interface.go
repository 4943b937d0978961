package user

import "context"

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	UpsertCustomer(ctx context.Context, name, email, phone string) (*User, error)
	UpsertAdmin(ctx context.Context, name, email, passwordHash string) (*User, error)
}
