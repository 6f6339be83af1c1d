package models

import (
	"time"
)

// Notification is an append-only in-app notification for an organization.
type Notification struct {
	ID    uint      `gorm:"primaryKey" json:"-"`
	Type  string    `json:"type"`
	OrgID string    `gorm:"index" json:"orgId"`
	Data  string    `json:"data"`
	Stamp time.Time `json:"stamp"`
}
