package repository

import (
	"context"

	"dispatch/entities"
)

type UserRepository interface {
	Create(ctx context.Context, u *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	List(ctx context.Context) ([]entities.User, error)
	Update(ctx context.Context, id string, fields map[string]any) (*entities.User, error)
	// Delete is idempotent: a missing row is not an error.
	Delete(ctx context.Context, id string) error
}
