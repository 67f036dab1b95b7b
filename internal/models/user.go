package models

import "time"

// User status values.
const (
	UserStatusActive    = "ACTIVE"
	UserStatusSuspended = "SUSPENDED"
)

// User is a hosting customer account.
type User struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"` // UUID primary key.

	FullName string `gorm:"type:varchar(255);not null" json:"fullName"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Phone    string `gorm:"type:varchar(32)" json:"phone"`
	Password string `gorm:"type:text" json:"-"` // Bcrypt hash, never serialized.

	Plan     string `gorm:"type:varchar(64);not null;default:Basic" json:"plan"`
	Verified bool   `gorm:"not null;default:false" json:"verified"`
	Status   string `gorm:"type:varchar(16);not null;default:ACTIVE" json:"status"`

	Tickets []Ticket `gorm:"foreignKey:UserID" json:"tickets,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
