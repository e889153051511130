package entity

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username string `gorm:"not null"`
	Email    string `gorm:"not null;uniqueIndex"`
	Language string `gorm:"not null;default:en"`

	// Home location, used as the default center for nearby searches.
	Latitude  float64
	Longitude float64
}
