package models

import (
	"time"

	"gorm.io/datatypes"
)

// Setting stores a key/value panel configuration entry in the database.
type Setting struct {
	Key       string         `gorm:"type:varchar(255);primaryKey" json:"key"` // Configuration key.
	Value     datatypes.JSON `gorm:"type:jsonb" json:"value"`                 // JSON-encoded value.
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
