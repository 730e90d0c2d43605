package service

import (
	"context"
	"errors"
	"time"

	"dispatch/entities"
)

var (
	ErrNotFound  = errors.New("予定が見つかりません")
	ErrForbidden = errors.New("この予定を変更する権限がありません")
)

// Actor is the caller as resolved by the role gate.
type Actor struct {
	UserID   string
	FullName string
	Admin    bool
}

// TaskInput is the calendar form: a day plus same-day clock readings.
type TaskInput struct {
	Date                string                        `json:"date" validate:"required"` // YYYY-MM-DD
	StartTime           string                        `json:"start_time"`               // HH:MM
	EndTime             string                        `json:"end_time"`                 // HH:MM or ""
	CustomerName        string                        `json:"customer_name" validate:"required"`
	SiteName            string                        `json:"site_name"`
	SiteAddress         string                        `json:"site_address"`
	GoodsDescription    string                        `json:"goods_description"`
	IsStaffAccompanied  bool                          `json:"is_staff_accompanied"`
	HasPartTimer        bool                          `json:"has_part_timer"`
	PartTimerCount      *int                          `json:"part_timer_count" validate:"omitempty,min=0"`
	PartTimerDuration   *string                       `json:"part_timer_duration"`
	TransportMethod     string                        `json:"transport_method" validate:"required"`
	TransportCategories *entities.TransportCategories `json:"transport_categories"`
	Remarks             *string                       `json:"remarks"`
}

// Notifier records a task event; failures never reach the caller of a write.
type Notifier interface {
	Record(ctx context.Context, action entities.NotificationAction, t *entities.Task, actorName string) error
}

type Stats struct {
	Total     int64 `json:"total"`
	MWork     int64 `json:"m_work"`
	Separate  int64 `json:"separate"`
	StaffOnly int64 `json:"staff_only"`
	Other     int64 `json:"other"`
}

type Service interface {
	List(ctx context.Context, from, to *time.Time) ([]entities.Task, error)
	Get(ctx context.Context, id uint) (*entities.Task, error)
	Create(ctx context.Context, actor Actor, in TaskInput) (*entities.Task, error)
	Update(ctx context.Context, actor Actor, id uint, in TaskInput) (*entities.Task, error)
	Delete(ctx context.Context, actor Actor, id uint) error
	Stats(ctx context.Context, from, to *time.Time) (*Stats, error)
}
