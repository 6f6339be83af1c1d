package models

import (
	"time"
)

// Event is an ordinary (non-biz-match) event uploaded by an organization.
// Timestamps are unix seconds; Offset is the organizer's UTC offset in
// minutes as reported by the browser (positive west of UTC).
type Event struct {
	ID             string `gorm:"primaryKey" json:"id"`
	Name           string `json:"name"`
	Location       string `json:"location"`
	OrganizedBy    string `json:"organizedBy"`
	Description    string `json:"description"`
	Offset         int    `json:"offset"`
	Date           int64  `json:"date"`
	StartT         int64  `json:"startT"`
	EndT           int64  `json:"endT"`
	AllowWalkIn    bool   `json:"allowWalkIn"`
	AtendeeLim     int    `json:"atendeeLim"`
	OrganizationID string `gorm:"index" json:"organizationId"`
	CoverFile      string `json:"coverFile"`
	CoverFilePubID string `json:"coverFilePubId"`

	CreatedAt time.Time `json:"-"`
}
