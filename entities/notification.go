package entities

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationAction string

const (
	ActionCreated NotificationAction = "created"
	ActionUpdated NotificationAction = "updated"
	ActionDeleted NotificationAction = "deleted"
)

// Label is the subject fragment used in e-mails.
func (a NotificationAction) Label() string {
	switch a {
	case ActionCreated:
		return "新規登録"
	case ActionUpdated:
		return "更新"
	case ActionDeleted:
		return "削除"
	}
	return string(a)
}

// TaskSnapshot is the denormalized copy of a task kept with each event.
type TaskSnapshot struct {
	CustomerName    string     `json:"customer_name"`
	SiteName        string     `json:"site_name"`
	SiteAddress     string     `json:"site_address"`
	StartAt         time.Time  `json:"start_datetime"`
	EndAt           *time.Time `json:"end_datetime,omitempty"`
	TransportMethod string     `json:"transport_method"`
}

func SnapshotOf(t *Task) TaskSnapshot {
	return TaskSnapshot{
		CustomerName:    t.CustomerName,
		SiteName:        t.SiteName,
		SiteAddress:     t.SiteAddress,
		StartAt:         t.StartAt,
		EndAt:           t.EndAt,
		TransportMethod: string(t.TransportMethod),
	}
}

// NotificationItem is an append-only event log row.
type NotificationItem struct {
	ID           uint                             `gorm:"primaryKey" json:"id"`
	TaskID       *uint                            `gorm:"index" json:"task_id"`
	ActionType   NotificationAction               `gorm:"size:16;not null" json:"action_type"`
	TaskData     datatypes.JSONType[TaskSnapshot] `json:"task_data"`
	UserName     string                           `json:"user_name"`
	CreatedAt    time.Time                        `gorm:"index" json:"created_at"`
	SentAt       *time.Time                       `json:"sent_at,omitempty"`
	ErrorMessage *string                          `json:"error_message,omitempty"`
}

func (NotificationItem) TableName() string { return "task_notifications" }
