package repository

import (
	"context"
	"time"

	"dispatch/entities"
)

// DayLister loads tasks of the given stored transport values whose start
// falls in [from, to).
type DayLister interface {
	ListConstrainedOnDay(ctx context.Context, from, to time.Time, methods []string, excludeID uint) ([]entities.Task, error)
}
