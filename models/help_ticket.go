package models

import "time"

const (
	TicketOpen     = "open"
	TicketResolved = "resolved"
)

var TicketCategories = []string{"website", "machine", "spaces", "training"}

// HelpTicket is a user support request. Resolved tickets disappear
// from the open-ticket list.
type HelpTicket struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null" json:"user_id"`
	User        User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Category    string `gorm:"type:varchar(20);not null;default:'website'" json:"category"`
	Subject     string `gorm:"type:varchar(200);not null" json:"subject"`
	Description string `gorm:"type:text;not null" json:"description"`
	Status      string `gorm:"type:varchar(20);not null;default:'open'" json:"status"`

	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	ResolvedByID *uint      `json:"resolved_by_id,omitempty"`
	ResolvedBy   *User      `gorm:"foreignKey:ResolvedByID;constraint:OnDelete:SET NULL" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Resolve marks the ticket resolved by the given admin.
func (t *HelpTicket) Resolve(adminID uint, at time.Time) {
	t.Status = TicketResolved
	t.ResolvedAt = &at
	t.ResolvedByID = &adminID
}
