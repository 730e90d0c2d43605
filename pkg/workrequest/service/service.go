package service

import (
	"context"
	"errors"

	"dispatch/entities"
)

var (
	ErrNotFound     = errors.New("work request not found")
	ErrTaskNotFound = errors.New("予定が見つかりません")
)

type NewRequest struct {
	TaskID                uint                     `json:"task_id" validate:"required"`
	MeetingTime           string                   `json:"meeting_time" validate:"required"`
	MeetingPlace          string                   `json:"meeting_place" validate:"required"`
	CustomerContactPerson string                   `json:"customer_contact_person"`
	CustomerPhone         string                   `json:"customer_phone"`
	WorkContent           string                   `json:"work_content"`
	Equipment             entities.Equipment       `json:"equipment"`
	CartCount             int                      `json:"cart_count" validate:"min=0"`
	AbacusCount           int                      `json:"abacus_count" validate:"min=0"`
	MaterialLoading       entities.MaterialLoading `json:"material_loading"`
	AdditionalRemarks     string                   `json:"additional_remarks"`
}

type Service interface {
	Create(ctx context.Context, userID string, in NewRequest) (*entities.WorkRequest, error)
	LatestForTask(ctx context.Context, taskID uint) (*entities.WorkRequest, error)
	// RenderPDF returns the document bytes for a stored request.
	RenderPDF(ctx context.Context, id uint) ([]byte, error)
}
