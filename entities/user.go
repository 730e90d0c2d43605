package entities

import "time"

// User is the profile row; ID is shared with the identity record.
type User struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	FullName  string    `json:"full_name"`
	Role      Role      `gorm:"size:16;not null;default:user" json:"role"`
	Email     *string   `gorm:"size:255" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// Credential backs the local identity provider only.
type Credential struct {
	ID           string `gorm:"primaryKey;size:64"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Credential) TableName() string { return "identity_credentials" }
