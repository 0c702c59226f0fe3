package models

import (
	"time"
)

// AccessEvent is an append-only record of one redirect. Rows are never
// updated; deleting a Link cascades to its events.
type AccessEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	LinkID     uint      `gorm:"not null;index" json:"link_id"`
	IPAddress  string    `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent  string    `gorm:"size:255" json:"user_agent,omitempty"`
	Referrer   string    `gorm:"size:255;default:'Direct'" json:"referrer"`
	Browser    string    `gorm:"size:50" json:"browser"`
	OS         string    `gorm:"size:100" json:"os"`
	DeviceType string    `gorm:"size:50" json:"device_type"`
	AccessedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"accessed_at"`
}

func (AccessEvent) TableName() string {
	return "access_events"
}
