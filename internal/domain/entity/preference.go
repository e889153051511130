package entity

import "time"

// UserPreference marks a user as interested in a category. Preferences are
// replaced wholesale when the user updates them, never edited in place.
type UserPreference struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"not null;uniqueIndex:idx_user_category"`
	CategoryID uint `gorm:"not null;uniqueIndex:idx_user_category"`
	// RadiusKM limits discovery for this category; zero means no limit.
	RadiusKM   float64
	EmailOptIn bool `gorm:"not null;default:true"`
	CreatedAt  time.Time

	User     User     `gorm:"foreignKey:UserID"`
	Category Category `gorm:"foreignKey:CategoryID"`
}
