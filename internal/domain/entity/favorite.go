package entity

import "time"

type Favorite struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_user_event_favorite"`
	EventID   string `gorm:"not null;type:uuid;uniqueIndex:idx_user_event_favorite"`
	CreatedAt time.Time

	User  User  `gorm:"foreignKey:UserID"`
	Event Event `gorm:"foreignKey:EventID"`
}
