package models

import (
	"time"
)

// Attendee is a registrant of an ordinary event. The primary key doubles as
// the credential payload encoded in the QR image sent to the registrant.
type Attendee struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Name         string    `json:"name"`
	Email        string    `gorm:"index" json:"email"`
	OrgN         string    `json:"orgN"`
	OrgP         string    `json:"orgP"`
	PhoneNumber  string    `json:"phoneNumber"`
	Salutations  string    `json:"salutations"`
	Addr         string    `json:"addr"`
	EvID         string    `gorm:"index" json:"evId"`
	RegisteredOn time.Time `json:"registeredOn"`
	PublicIDQR   string    `json:"public_id_qr"`
	QRSecureURL  string    `json:"qrId_secUrl"`
	Attended     bool      `json:"attended"`
}
