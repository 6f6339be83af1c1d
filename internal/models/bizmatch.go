package models

import (
	"time"
)

// BizMatch is a business-matchmaking event with supplier showcases and
// fixed-width meeting timeslots.
type BizMatch struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	Name           string    `json:"name"`
	Date           int64     `json:"date"`
	StartT         int64     `json:"startT"`
	EndT           int64     `json:"endT"`
	OrganizationID string    `gorm:"index" json:"organizationId"`
	Lim            int       `json:"lim"`
	Offset         int       `json:"offset"`
	TimeslotsCount int       `json:"timeslotsCount"`
	SuppliersCount int       `json:"suppliersCount"`
	UplOn          time.Time `json:"upl_on"`
}

// Supplier is a showcased supplier of a biz-match event. Timeslots references
// the supplier's TimeslotSheet.
type Supplier struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	Description string `json:"description"`
	Website     string `json:"website"`
	URL         string `json:"url"`
	BizMatchID  string `gorm:"index" json:"bizMatchId"`
	Timeslots   string `json:"timeslots"`
}

// TimeslotSheet stores a supplier's meeting slots as a JSON document, keyed
// by the uuid referenced from Supplier.Timeslots.
type TimeslotSheet struct {
	ID    string `gorm:"primaryKey" json:"id"`
	Slots string `json:"slots"`
}

// Timeslot is one fixed-width meeting interval inside a TimeslotSheet.
type Timeslot struct {
	Start          int64    `json:"start"`
	End            int64    `json:"end"`
	SlotsAvailable int      `json:"slotsAvailable"`
	SlotsSet       int      `json:"slotsSet"`
	Atendee        []string `json:"atendee"`
}
