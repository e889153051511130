package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eventlocator/backend/internal/domain/entity"
)

type FavoriteStorage struct {
	db *gorm.DB
}

func NewFavoriteStorage(db *gorm.DB) *FavoriteStorage {
	return &FavoriteStorage{
		db: db,
	}
}

// Add is a function that marks an event as a favorite of a user. Adding the
// same favorite twice is a no-op.
func (s *FavoriteStorage) Add(ctx context.Context, favorite *entity.Favorite) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(favorite).Error
}

// Remove is a function that removes a favorite of a user.
func (s *FavoriteStorage) Remove(ctx context.Context, userID uint, eventID string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&entity.Favorite{}).Error
}

// GetForUser is a function that gets the favorite events of a user.
func (s *FavoriteStorage) GetForUser(ctx context.Context, userID uint, limit, offset int) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).
		Model(&entity.Event{}).
		Joins("JOIN favorites ON favorites.event_id = events.id").
		Where("favorites.user_id = ?", userID).
		Order("events.start_time").
		Offset(offset).Limit(limit).
		Find(&events).Error
	return events, err
}
