package notifier

import (
	"time"

	"github.com/charliecatxph/eventra-backend/internal/models"
	"gorm.io/gorm"
)

// Notifier appends in-app notifications for an organization.
type Notifier interface {
	Notify(typ, orgID, message string) error
}

// DBNotifier stores notifications in the notifications table.
type DBNotifier struct {
	db *gorm.DB
}

func NewDBNotifier(db *gorm.DB) *DBNotifier {
	return &DBNotifier{db: db}
}

func (n *DBNotifier) Notify(typ, orgID, message string) error {
	return n.db.Create(&models.Notification{
		Type:  typ,
		OrgID: orgID,
		Data:  message,
		Stamp: time.Now(),
	}).Error
}
