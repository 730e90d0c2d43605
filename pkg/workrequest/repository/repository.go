package repository

import (
	"context"

	"dispatch/entities"
)

type Repo interface {
	Create(ctx context.Context, w *entities.WorkRequest) error
	// FindByID and LatestForTask preload the task and its owner.
	FindByID(ctx context.Context, id uint) (*entities.WorkRequest, error)
	LatestForTask(ctx context.Context, taskID uint) (*entities.WorkRequest, error)
}
