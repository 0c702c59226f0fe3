package models

import (
	"time"
)

type Link struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ShortCode      string     `gorm:"unique;not null;size:20;index" json:"short_code"`
	OriginalURL    string     `gorm:"not null;type:text" json:"original_url"`
	Clicks         int64      `gorm:"default:0" json:"clicks"`
	CreatedAt      time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty"`

	Events []AccessEvent `gorm:"foreignKey:LinkID;constraint:OnDelete:CASCADE" json:"events,omitempty"`
}

func (Link) TableName() string {
	return "links"
}
