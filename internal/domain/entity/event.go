package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Event struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
	Title       string `gorm:"not null"`
	Description string
	Address     string
	Latitude    float64   `gorm:"not null"`
	Longitude   float64   `gorm:"not null"`
	StartTime   time.Time `gorm:"not null"`
	EndTime     time.Time
	CreatorID   uint          `gorm:"not null;index"`
	Creator     User          `gorm:"foreignKey:CreatorID"`
	CategoryIDs pq.Int64Array `gorm:"type:integer[]"`
}

// HasStarted reports whether the event's start time has passed.
func (e *Event) HasStarted(now time.Time) bool {
	return !e.StartTime.After(now)
}
