package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/eventlocator/backend/internal/domain/dto"
	"github.com/eventlocator/backend/internal/domain/entity"
)

type PreferenceStorage interface {
	GetForUser(ctx context.Context, userID uint) ([]entity.UserPreference, error)
	ReplaceForUser(ctx context.Context, userID uint, preferences []entity.UserPreference) error
	UsersByCategories(ctx context.Context, categoryIDs []int64) ([]entity.User, error)
}

type PreferenceService struct {
	preferenceStorage PreferenceStorage
	validate          *validator.Validate
}

func NewPreferenceService(storage PreferenceStorage) *PreferenceService {
	return &PreferenceService{
		preferenceStorage: storage,
		validate:          validator.New(),
	}
}

func (s *PreferenceService) Get(ctx context.Context, userID uint) ([]entity.UserPreference, error) {
	return s.preferenceStorage.GetForUser(ctx, userID)
}

// Set replaces the user's category preferences wholesale.
func (s *PreferenceService) Set(ctx context.Context, userID uint, preferences []dto.Preference) error {
	rows := make([]entity.UserPreference, 0, len(preferences))
	for _, p := range preferences {
		if err := s.validate.Struct(p); err != nil {
			return err
		}
		rows = append(rows, entity.UserPreference{
			UserID:     userID,
			CategoryID: p.CategoryID,
			RadiusKM:   p.RadiusKM,
			EmailOptIn: p.EmailOptIn,
		})
	}
	return s.preferenceStorage.ReplaceForUser(ctx, userID, rows)
}

// UsersByCategories resolves the recipients of an event's reminders: every
// distinct user with an email-opted-in preference for at least one of the
// categories. An empty category set resolves to no one.
func (s *PreferenceService) UsersByCategories(ctx context.Context, categoryIDs []int64) ([]entity.User, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}
	return s.preferenceStorage.UsersByCategories(ctx, categoryIDs)
}
