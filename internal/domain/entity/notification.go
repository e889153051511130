package entity

import "time"

type ReminderStatus string

const (
	ReminderStatusDelivered ReminderStatus = "delivered"
	ReminderStatusFailed    ReminderStatus = "failed"
)

// ReminderLog records the terminal outcome of a reminder. A delivered row
// suppresses re-delivery of the same (event, user, offset) after a crash.
type ReminderLog struct {
	ID        string         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	EventID   string         `gorm:"not null;index;type:uuid"`
	UserID    uint           `gorm:"not null;index"`
	Offset    string         `gorm:"column:offset_label;not null"`
	Status    ReminderStatus `gorm:"not null"`
	Error     string
	CreatedAt time.Time `gorm:"not null"`
}
