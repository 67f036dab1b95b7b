package models

import "time"

// Registrar status values.
const (
	RegistrarStatusActive   = "ACTIVE"
	RegistrarStatusInactive = "INACTIVE"
)

// Registrar is a domain registrar the panel resells TLDs through.
type Registrar struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Website string `gorm:"type:varchar(255);not null" json:"website"`

	APIEndpoint        string `gorm:"type:varchar(255);not null" json:"apiEndpoint"`
	SandboxAPIEndpoint string `gorm:"type:varchar(255)" json:"sandboxApiEndpoint"` // Defaults to APIEndpoint when omitted.
	APIKey             string `gorm:"type:text" json:"apiKey"`
	SandboxMode        bool   `gorm:"not null;default:false" json:"sandboxMode"`

	CommissionPercentage *float64 `json:"commissionPercentage"`

	Status       string     `gorm:"type:varchar(16);not null;default:ACTIVE" json:"status"`
	LastSyncDate *time.Time `json:"lastSyncDate"` // Set by connection tests and manual syncs.

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// Endpoint returns the API endpoint honoring sandbox mode.
func (r *Registrar) Endpoint() string {
	if r.SandboxMode && r.SandboxAPIEndpoint != "" {
		return r.SandboxAPIEndpoint
	}
	return r.APIEndpoint
}
