package models

import "time"

// Control panel types supported for managed servers.
const (
	ControlPanelCPanel      = "CPANEL"
	ControlPanelPlesk       = "PLESK"
	ControlPanelDirectAdmin = "DIRECTADMIN"
	ControlPanelCyberPanel  = "CYBERPANEL"
)

// Server status values.
const (
	ServerStatusActive      = "ACTIVE"
	ServerStatusInactive    = "INACTIVE"
	ServerStatusMaintenance = "MAINTENANCE"
)

// Server is a managed hosting server reachable through its control panel API.
type Server struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"` // UUID primary key.

	HostName  string `gorm:"type:varchar(255);not null;uniqueIndex" json:"hostName"`
	IPAddress string `gorm:"type:varchar(45);not null;uniqueIndex" json:"ipAddress"`
	Location  string `gorm:"type:varchar(255)" json:"location"`

	APIKey       string `gorm:"type:text;not null" json:"apiKey"`                              // Control panel API token.
	ControlPanel string `gorm:"type:varchar(16);not null;default:CPANEL" json:"controlPanel"` // CPANEL, PLESK, DIRECTADMIN or CYBERPANEL.

	Status string `gorm:"type:varchar(16);not null;default:ACTIVE" json:"status"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// ValidControlPanel reports whether the given value is a known control panel.
func ValidControlPanel(panel string) bool {
	switch panel {
	case ControlPanelCPanel, ControlPanelPlesk, ControlPanelDirectAdmin, ControlPanelCyberPanel:
		return true
	default:
		return false
	}
}
