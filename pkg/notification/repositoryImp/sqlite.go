package repositoryImp

import (
	"context"
	"time"

	"gorm.io/gorm"

	"dispatch/entities"
	"dispatch/pkg/notification/repository"
)

type sqliteRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.Repo { return &sqliteRepo{db: db} }

func (r *sqliteRepo) Append(ctx context.Context, n *entities.NotificationItem) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *sqliteRepo) MarkOutcome(ctx context.Context, id uint, sentAt *time.Time, errMsg *string) error {
	upd := map[string]any{"sent_at": sentAt, "error_message": errMsg}
	if sentAt != nil {
		t := sentAt.UTC()
		upd["sent_at"] = &t
	}
	return r.db.WithContext(ctx).Model(&entities.NotificationItem{}).Where("id = ?", id).Updates(upd).Error
}

func (r *sqliteRepo) Latest(ctx context.Context, limit int) ([]entities.NotificationItem, error) {
	var out []entities.NotificationItem
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (r *sqliteRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.NotificationItem{}).Where("created_at >= ?", since.UTC()).Count(&n).Error
	return n, err
}

func (r *sqliteRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.NotificationItem{}).Count(&n).Error
	return n, err
}
