package postgres

import "github.com/eventlocator/backend/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.User{},
	&entity.Category{},
	&entity.Event{},
	&entity.UserPreference{},
	&entity.Favorite{},
	&entity.Review{},
	&entity.ReminderLog{},
}
