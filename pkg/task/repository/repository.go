package repository

import (
	"context"
	"time"

	"dispatch/entities"
)

type Repo interface {
	Create(ctx context.Context, t *entities.Task) error
	Update(ctx context.Context, t *entities.Task) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*entities.Task, error)
	// List joins the owner and orders by start time; nil bounds are open.
	List(ctx context.Context, from, to *time.Time) ([]entities.Task, error)
	CountByMethod(ctx context.Context, from, to *time.Time) (map[string]int64, error)
}
