// Package notify delivers offer announcements to students. The store-backed
// implementation writes the whole fan-out as batched inserts so a popular
// campus does not turn one offer into thousands of round trips; swapping in a
// push-notification service only requires another Notifier.
package notify

import (
	"gorm.io/gorm"

	"foodshare-api/models"
)

// BatchSize caps how many notification rows go into a single insert.
const BatchSize = 200

// Notifier broadcasts a message to a set of users.
type Notifier interface {
	Broadcast(userIDs []uint, title, message string) error
}

// StoreNotifier persists notifications to the relational store.
type StoreNotifier struct {
	DB *gorm.DB
}

func NewStoreNotifier(db *gorm.DB) *StoreNotifier {
	return &StoreNotifier{DB: db}
}

func (n *StoreNotifier) Broadcast(userIDs []uint, title, message string) error {
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]models.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, models.Notification{
			UserID:  id,
			Title:   title,
			Message: message,
		})
	}
	return n.DB.CreateInBatches(&rows, BatchSize).Error
}
