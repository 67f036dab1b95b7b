package models

import "time"

// Admin currency preferences.
const (
	CurrencyINR    = "INR"
	CurrencyDollar = "DOLLAR"
)

// Admin represents a panel administrator account.
type Admin struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Username string `gorm:"type:varchar(255);not null;uniqueIndex" json:"username"` // Unique login name.
	Password string `gorm:"type:text;not null" json:"-"`                            // Bcrypt hash.

	Currency string `gorm:"type:varchar(16);not null;default:DOLLAR" json:"currency"` // INR or DOLLAR.

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
