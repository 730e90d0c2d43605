package entities

import "time"

type Equipment struct {
	Helmet          bool `json:"helmet"`
	SafetyBelt      bool `json:"safety_belt"`
	SafetyShoes     bool `json:"safety_shoes"`
	LongSleeveShirt bool `json:"long_sleeve_shirt"`
	LiftingGear     bool `json:"lifting_gear"`
	Forklift        bool `json:"forklift"`
	Sling           bool `json:"sling"`
}

type MaterialLoading struct {
	PreviousDay bool `json:"previous_day"`
	SameDay     bool `json:"same_day"`
	Morning     bool `json:"morning"`
	Afternoon   bool `json:"afternoon"`
}

// WorkRequest is created once per "generate request" action and never edited.
type WorkRequest struct {
	ID                    uint            `gorm:"primaryKey" json:"id"`
	TaskID                uint            `gorm:"index;not null" json:"task_id"`
	Task                  *Task           `gorm:"foreignKey:TaskID" json:"tasks,omitempty"`
	UserID                string          `gorm:"index;size:64" json:"user_id"`
	MeetingTime           string          `json:"meeting_time"`
	MeetingPlace          string          `json:"meeting_place"`
	CustomerContactPerson string          `json:"customer_contact_person"`
	CustomerPhone         string          `json:"customer_phone"`
	WorkContent           string          `json:"work_content"`
	Equipment             Equipment       `gorm:"serializer:json" json:"equipment"`
	CartCount             int             `json:"cart_count"`
	AbacusCount           int             `json:"abacus_count"`
	MaterialLoading       MaterialLoading `gorm:"serializer:json" json:"material_loading"`
	AdditionalRemarks     string          `json:"additional_remarks"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}
