package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"dispatch/entities"
	"dispatch/pkg/workrequest/repository"
)

type sqliteRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.Repo { return &sqliteRepo{db: db} }

func (r *sqliteRepo) Create(ctx context.Context, w *entities.WorkRequest) error {
	return r.db.WithContext(ctx).Omit("Task").Create(w).Error
}

func (r *sqliteRepo) FindByID(ctx context.Context, id uint) (*entities.WorkRequest, error) {
	var out entities.WorkRequest
	if err := r.joined(ctx).First(&out, id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// LatestForTask picks the newest row; a task may have several requests.
func (r *sqliteRepo) LatestForTask(ctx context.Context, taskID uint) (*entities.WorkRequest, error) {
	var out entities.WorkRequest
	err := r.joined(ctx).
		Where("task_id = ?", taskID).
		Order("created_at DESC, id DESC").
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *sqliteRepo) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Task").Preload("Task.Owner")
}
