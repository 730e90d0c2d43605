package entities

import "time"

// TransportCategories is the pickup / carrier detail captured with a task.
type TransportCategories struct {
	Aswan           bool    `json:"aswan"`
	Charter         bool    `json:"charter"`
	CharterCount    *int    `json:"charterCount,omitempty"`
	ShippingCompany bool    `json:"shippingCompany"`
	SelectedCompany *string `json:"selectedCompany,omitempty"`
	CustomCompany   *string `json:"customCompany,omitempty"`
	BranchName      *string `json:"branchName,omitempty"`
	NoPickup        bool    `json:"noPickup"`
}

// AnySelected reports whether at least one of the four pickup flags is set.
func (c *TransportCategories) AnySelected() bool {
	return c != nil && (c.Aswan || c.Charter || c.ShippingCompany || c.NoPickup)
}

type Task struct {
	ID                  uint                 `gorm:"primaryKey" json:"id"`
	UserID              string               `gorm:"index;size:64" json:"user_id"`
	Owner               *User                `gorm:"foreignKey:UserID;references:ID" json:"owner,omitempty"`
	CustomerName        string               `json:"customer_name"`
	SiteName            string               `json:"site_name"`
	SiteAddress         string               `json:"site_address"`
	StartAt             time.Time            `gorm:"column:start_datetime;index;not null" json:"start_datetime"`
	EndAt               *time.Time           `gorm:"column:end_datetime" json:"end_datetime"`
	GoodsDescription    string               `json:"goods_description"`
	IsStaffAccompanied  bool                 `json:"is_staff_accompanied"`
	HasPartTimer        bool                 `json:"has_part_timer"`
	PartTimerCount      *int                 `json:"part_timer_count"`
	PartTimerDuration   *string              `json:"part_timer_duration"`
	TransportMethod     TransportMethod      `gorm:"index;size:32" json:"transport_method"`
	TransportCategories *TransportCategories `gorm:"serializer:json" json:"transport_categories"`
	Remarks             *string              `json:"remarks"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}
