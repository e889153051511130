package postgres

import (
	"context"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/eventlocator/backend/internal/domain/entity"
)

type PreferenceStorage struct {
	db *gorm.DB
}

func NewPreferenceStorage(db *gorm.DB) *PreferenceStorage {
	return &PreferenceStorage{
		db: db,
	}
}

// GetForUser is a function that gets all category preferences of a user.
func (s *PreferenceStorage) GetForUser(ctx context.Context, userID uint) ([]entity.UserPreference, error) {
	var preferences []entity.UserPreference
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("category_id").
		Find(&preferences).Error
	return preferences, err
}

// ReplaceForUser atomically replaces the user's preference set: existing rows
// are dropped and the new set inserted in one transaction.
func (s *PreferenceStorage) ReplaceForUser(ctx context.Context, userID uint, preferences []entity.UserPreference) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&entity.UserPreference{}).Error; err != nil {
			return err
		}
		if len(preferences) == 0 {
			return nil
		}
		for i := range preferences {
			preferences[i].UserID = userID
		}
		return tx.Create(&preferences).Error
	})
}

// DeleteForUser is a function that removes all preferences of a user.
func (s *PreferenceStorage) DeleteForUser(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.UserPreference{}).Error
}

// UsersByCategories returns the distinct users whose email-opted-in
// preferences intersect the given category ids.
func (s *PreferenceStorage) UsersByCategories(ctx context.Context, categoryIDs []int64) ([]entity.User, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	var users []entity.User
	err := s.db.WithContext(ctx).
		Model(&entity.User{}).
		Distinct("users.*").
		Joins("JOIN user_preferences ON user_preferences.user_id = users.id").
		Where("user_preferences.category_id = ANY(?)", pq.Int64Array(categoryIDs)).
		Where("user_preferences.email_opt_in").
		Find(&users).Error
	return users, err
}
