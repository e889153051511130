package entity

import "time"

type Review struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_user_event_review"`
	EventID   string `gorm:"not null;type:uuid;uniqueIndex:idx_user_event_review"`
	Rating    int    `gorm:"not null"`
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time

	User  User  `gorm:"foreignKey:UserID"`
	Event Event `gorm:"foreignKey:EventID"`
}
