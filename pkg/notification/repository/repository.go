package repository

import (
	"context"
	"time"

	"dispatch/entities"
)

type Repo interface {
	Append(ctx context.Context, n *entities.NotificationItem) error
	// MarkOutcome is the single write after an append: when the mail went
	// out, or why it did not.
	MarkOutcome(ctx context.Context, id uint, sentAt *time.Time, errMsg *string) error
	Latest(ctx context.Context, limit int) ([]entities.NotificationItem, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}
