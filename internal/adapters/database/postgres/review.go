package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/eventlocator/backend/internal/domain/dto"
	"github.com/eventlocator/backend/internal/domain/entity"
)

type ReviewStorage struct {
	db *gorm.DB
}

func NewReviewStorage(db *gorm.DB) *ReviewStorage {
	return &ReviewStorage{
		db: db,
	}
}

// Create is a function that creates a new review in the database.
func (s *ReviewStorage) Create(ctx context.Context, review *entity.Review) (*entity.Review, error) {
	err := s.db.WithContext(ctx).Create(&review).Error
	return review, err
}

// GetForEvent is a function that gets the reviews of an event.
func (s *ReviewStorage) GetForEvent(ctx context.Context, eventID string, limit, offset int) ([]entity.Review, error) {
	var reviews []entity.Review
	err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

// Rating is a function that gets the average rating and review count of an event.
func (s *ReviewStorage) Rating(ctx context.Context, eventID string) (dto.EventRating, error) {
	var rating dto.EventRating
	err := s.db.WithContext(ctx).
		Model(&entity.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("event_id = ?", eventID).
		Scan(&rating).Error
	return rating, err
}
