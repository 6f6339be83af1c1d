package models

import (
	"time"
)

// Organization is an organizer account. PW holds the bcrypt hash.
type Organization struct {
	ID        string `gorm:"primaryKey" json:"id"`
	Fn        string `json:"fn"`
	Ln        string `json:"ln"`
	Email     string `gorm:"uniqueIndex" json:"email"`
	PW        string `json:"-"`
	OrgName   string `json:"org_name"`
	Country   string `json:"country"`
	Website   string `json:"website"`
	Logo      string `json:"logo"`
	LogoPubID string `json:"-"`

	CreatedAt time.Time `json:"-"`
}
