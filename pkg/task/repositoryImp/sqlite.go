package repositoryImp

import (
	"context"
	"time"

	"gorm.io/gorm"

	"dispatch/entities"
	"dispatch/pkg/task/repository"
)

type sqliteRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.Repo { return &sqliteRepo{db: db} }

func (r *sqliteRepo) Create(ctx context.Context, t *entities.Task) error {
	return r.db.WithContext(ctx).Omit("Owner").Create(t).Error
}

func (r *sqliteRepo) Update(ctx context.Context, t *entities.Task) error {
	return r.db.WithContext(ctx).Omit("Owner").Save(t).Error
}

func (r *sqliteRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Task{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *sqliteRepo) FindByID(ctx context.Context, id uint) (*entities.Task, error) {
	var out entities.Task
	if err := r.db.WithContext(ctx).Preload("Owner").First(&out, id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *sqliteRepo) List(ctx context.Context, from, to *time.Time) ([]entities.Task, error) {
	var list []entities.Task
	q := window(r.db.WithContext(ctx).Model(&entities.Task{}), from, to)
	return list, q.Preload("Owner").Order("start_datetime asc, id asc").Find(&list).Error
}

func (r *sqliteRepo) CountByMethod(ctx context.Context, from, to *time.Time) (map[string]int64, error) {
	var rows []struct {
		TransportMethod string
		N               int64
	}
	q := window(r.db.WithContext(ctx).Model(&entities.Task{}), from, to)
	if err := q.Select("transport_method, COUNT(*) AS n").Group("transport_method").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.TransportMethod] = row.N
	}
	return out, nil
}

// window bounds start_datetime to [from, to).
func window(q *gorm.DB, from, to *time.Time) *gorm.DB {
	if from != nil {
		q = q.Where("start_datetime >= ?", from.UTC())
	}
	if to != nil {
		q = q.Where("start_datetime < ?", to.UTC())
	}
	return q
}
