package models

import "time"

// TaxSingletonID is the fixed primary key of the panel's only tax row.
const TaxSingletonID = "single"

// Tax holds the panel-wide tax configuration. Exactly one row exists.
type Tax struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	Name  string `gorm:"type:varchar(64);not null" json:"name"`  // e.g. VAT, GST.
	Value string `gorm:"type:varchar(16);not null" json:"value"` // Percentage as a decimal string.

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
