package models

import "time"

// Ticket status values.
const (
	TicketStatusOpen     = "OPEN"
	TicketStatusResolved = "RESOLVED"
)

// Message sender values.
const (
	MessageSenderUser  = "USER"
	MessageSenderAdmin = "ADMIN"
)

// Ticket is a customer support request.
type Ticket struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"` // UUID primary key.

	TicketCode string `gorm:"type:varchar(32);not null;uniqueIndex" json:"ticketId"` // Human-facing reference, e.g. TKT-4F2A9C.
	Subject    string `gorm:"type:varchar(255);not null" json:"subject"`
	Category   string `gorm:"type:varchar(64);not null;default:GENERAL" json:"category"`
	Status     string `gorm:"type:varchar(16);not null;default:OPEN" json:"status"` // OPEN or RESOLVED.

	Date time.Time `gorm:"not null" json:"date"` // When the ticket was raised.

	UserID string `gorm:"type:varchar(36);not null;index" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Messages []Message `gorm:"foreignKey:TicketID" json:"messages,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// Message is one entry in a ticket conversation.
type Message struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"` // UUID primary key.

	Content string `gorm:"type:text;not null" json:"content"`
	Sender  string `gorm:"type:varchar(16);not null" json:"sender"` // USER or ADMIN.

	Timestamp time.Time `gorm:"not null;autoCreateTime" json:"timestamp"`

	TicketID string `gorm:"type:varchar(36);not null;index" json:"ticketId"`
}
