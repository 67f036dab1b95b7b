package models

import "time"

// Tld holds resale pricing for one top-level domain extension.
// Prices are stored as decimal strings the way the billing UI submits them.
type Tld struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"` // UUID primary key.

	TldExtension string `gorm:"type:varchar(64);not null;uniqueIndex" json:"tldExtension"` // e.g. ".com".
	Category     string `gorm:"type:varchar(64);not null;default:generic" json:"category"`
	BillingCycle string `gorm:"type:varchar(32);not null;default:annually" json:"billingCycle"`

	RegistrationPrice string `gorm:"type:varchar(32);not null" json:"registrationPrice"`
	RenewalPrice      string `gorm:"type:varchar(32);not null" json:"renewalPrice"`
	TransferPrice     string `gorm:"type:varchar(32);not null;default:'0.00'" json:"transferPrice"`
	RedemptionPrice   string `gorm:"type:varchar(32);not null;default:'0.00'" json:"redemptionPrice"`

	MinimumYears int `gorm:"not null;default:1" json:"minimumYears"`
	MaximumYears int `gorm:"not null;default:10" json:"maximumYears"`

	Status        bool `gorm:"not null;default:true" json:"status"`
	AutoRenewal   bool `gorm:"not null;default:true" json:"autoRenewal"`
	WhoisPrivacy  bool `gorm:"not null;default:true" json:"whoisPrivacy"`
	DnssecPrivacy bool `gorm:"not null;default:true" json:"dnssecPrivacy"`

	RegistrarID uint64     `gorm:"not null;index" json:"registrarId"`
	Registrar   *Registrar `gorm:"foreignKey:RegistrarID" json:"registrar,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
