package repositoryImp

import (
	"context"
	"time"

	"gorm.io/gorm"

	"dispatch/entities"
	"dispatch/pkg/schedule/repository"
)

type schedRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.DayLister { return &schedRepo{db} }

func (r *schedRepo) ListConstrainedOnDay(ctx context.Context, from, to time.Time, methods []string, excludeID uint) ([]entities.Task, error) {
	var out []entities.Task
	q := r.db.WithContext(ctx).
		Select("id", "start_datetime", "end_datetime", "transport_method").
		Where("start_datetime >= ? AND start_datetime < ?", from.UTC(), to.UTC()).
		Where("transport_method IN ?", methods)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Order("start_datetime ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
