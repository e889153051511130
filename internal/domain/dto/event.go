package dto

import (
	"time"

	"github.com/eventlocator/backend/internal/domain/entity"
)

// EventCreate carries validated input for event creation.
type EventCreate struct {
	Title       string    `validate:"required,min=3,max=120"`
	Description string    `validate:"max=2000"`
	Address     string    `validate:"max=300"`
	Latitude    float64   `validate:"latitude"`
	Longitude   float64   `validate:"longitude"`
	StartTime   time.Time `validate:"required"`
	EndTime     time.Time
	CategoryIDs []int64 `validate:"dive,gt=0"`
}

// EventUpdate carries validated input for event updates. Nil fields are left
// unchanged.
type EventUpdate struct {
	Title       *string    `validate:"omitempty,min=3,max=120"`
	Description *string    `validate:"omitempty,max=2000"`
	Address     *string    `validate:"omitempty,max=300"`
	Latitude    *float64   `validate:"omitempty,latitude"`
	Longitude   *float64   `validate:"omitempty,longitude"`
	StartTime   *time.Time `validate:"omitempty"`
	EndTime     *time.Time
	CategoryIDs *[]int64 `validate:"omitempty,dive,gt=0"`
}

// NearbyEvent is an event with its distance in meters from the search point.
type NearbyEvent struct {
	entity.Event
	Distance float64
}

// EventRating aggregates an event's reviews.
type EventRating struct {
	Average float64
	Count   int64
}

// EventDetails is an event with its categories and review aggregate.
type EventDetails struct {
	entity.Event
	Categories []entity.Category
	Rating     EventRating
}
