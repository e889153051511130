package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/eventlocator/backend/internal/domain/entity"
)

type NotificationStorage struct {
	db *gorm.DB
}

func NewNotificationStorage(db *gorm.DB) *NotificationStorage {
	return &NotificationStorage{
		db: db,
	}
}

// Create records the terminal outcome of a reminder.
func (s *NotificationStorage) Create(ctx context.Context, log *entity.ReminderLog) error {
	return s.db.WithContext(ctx).Create(log).Error
}

// Delivered reports whether a reminder with the given key was already
// delivered. Used by the delivery worker to suppress duplicate sends after a
// crash leaves an already-delivered reminder in the queue.
func (s *NotificationStorage) Delivered(ctx context.Context, eventID string, userID uint, offset string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entity.ReminderLog{}).
		Where("event_id = ? AND user_id = ? AND offset_label = ? AND status = ?",
			eventID, userID, offset, entity.ReminderStatusDelivered).
		Count(&count).Error
	return count > 0, err
}
