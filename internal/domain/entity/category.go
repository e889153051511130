package entity

import "time"

// Category is immutable reference data; Name is the locale catalog key
// used to render the display name in the user's language.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
