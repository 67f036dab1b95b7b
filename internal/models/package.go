package models

import "time"

// Billing cycle values for a package row.
const (
	BillingCycleMonthly   = "MONTHLY"
	BillingCycleQuarterly = "QUARTERLY"
	BillingCycleYearly    = "YEARLY"
)

// Package status values.
const (
	PackageStatusActive   = "ACTIVE"
	PackageStatusInactive = "INACTIVE"
)

// UnlimitedBandwidth is the sentinel stored when bandwidth is unlimited.
const UnlimitedBandwidth int64 = -1

// Package is one persisted billing-cycle row of a hosting plan. A logical
// plan is the set of rows sharing (name, server_id); rows in a group differ
// only in billing cycle and price.
type Package struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"` // UUID primary key.

	Name                string `gorm:"type:varchar(255);not null;index:idx_packages_group" json:"name"` // Plan name, half of the grouping key.
	ProviderPackageName string `gorm:"type:varchar(255)" json:"providerPackageName"`                    // Optional upstream control-panel package name.
	Description         string `gorm:"type:text" json:"description"`

	DiskSpace     int    `gorm:"not null;default:0" json:"diskSpace"`     // GB.
	Bandwidth     int64  `gorm:"not null;default:0" json:"bandwidth"`     // GB, -1 = unlimited.
	Domains       int    `gorm:"not null;default:0" json:"domains"`       // Addon domain quota.
	EmailAccounts int    `gorm:"not null;default:0" json:"emailAccounts"` // Mailbox quota.
	Databases     int    `gorm:"not null;default:0" json:"databases"`     // Database quota.
	Features      string `gorm:"type:text" json:"features"`               // Comma-separated labels.

	BillingCycle string  `gorm:"type:varchar(16);not null" json:"billingCycle"` // MONTHLY, QUARTERLY or YEARLY.
	Price        float64 `gorm:"not null" json:"price"`                         // Period-specific price, one currency unit.

	Status string `gorm:"type:varchar(16);not null;default:INACTIVE" json:"status"` // ACTIVE or INACTIVE.

	ServerID string  `gorm:"type:varchar(36);not null;index:idx_packages_group" json:"serverId"` // Other half of the grouping key.
	Server   *Server `gorm:"foreignKey:ServerID" json:"server,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// Unlimited reports whether this row carries the unlimited bandwidth sentinel.
func (p *Package) Unlimited() bool {
	return p.Bandwidth == UnlimitedBandwidth
}
