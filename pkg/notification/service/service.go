package service

import (
	"context"
	"time"

	"dispatch/entities"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
	// UnreadWindow is how far back "unread" looks when nothing was read yet.
	UnreadWindow = 24 * time.Hour
)

type Stats struct {
	Total  int64 `json:"total"`
	Today  int64 `json:"today"`
	Unread int64 `json:"unread"`
}

type Service interface {
	// Record appends the event and mails the configured recipients. The
	// returned error is informational; the event row is kept either way.
	Record(ctx context.Context, action entities.NotificationAction, t *entities.Task, actorName string) error
	List(ctx context.Context, limit int) ([]entities.NotificationItem, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	Stats(ctx context.Context) (*Stats, error)
}
