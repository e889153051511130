package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/eventlocator/backend/internal/domain/common/errorz"
	"github.com/eventlocator/backend/internal/domain/dto"
	"github.com/eventlocator/backend/internal/domain/entity"
)

type EventStorage struct {
	db *gorm.DB
}

func NewEventStorage(db *gorm.DB) *EventStorage {
	return &EventStorage{
		db: db,
	}
}

// Create is a function that creates a new event in the database.
func (s *EventStorage) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	err := s.db.WithContext(ctx).Create(&event).Error
	return event, err
}

// Get is a function that gets an event from the database by id.
func (s *EventStorage) Get(ctx context.Context, id string) (*entity.Event, error) {
	var event entity.Event
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrEventNotFound
	}
	return &event, err
}

// GetMany is a function that gets events from the database by ids.
func (s *EventStorage) GetMany(ctx context.Context, ids []string) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&events).Error
	return events, err
}

// Update is a function that updates an event in the database.
func (s *EventStorage) Update(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	err := s.db.WithContext(ctx).Save(&event).Error
	return event, err
}

// Delete is a function that soft-deletes an event from the database.
func (s *EventStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&entity.Event{}, "id = ?", id).Error
}

// Count is a function that gets the count of events from the database.
func (s *EventStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Event{}).Count(&count).Error
	return count, err
}

// GetWithPagination is a function that gets a list of events from the database with pagination.
func (s *EventStorage) GetWithPagination(ctx context.Context, limit, offset int, order string) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).Order(order).Offset(offset).Limit(limit).Find(&events).Error
	return events, err
}

// FindNearby returns events within radiusMeters of the given point, closest
// first. Distances are computed on the geography type, so they are meters on
// the sphere rather than degrees.
func (s *EventStorage) FindNearby(ctx context.Context, latitude, longitude, radiusMeters float64, limit, offset int) ([]dto.NearbyEvent, error) {
	var events []dto.NearbyEvent
	err := s.db.WithContext(ctx).Raw(`
		SELECT events.*,
		       ST_Distance(
		           ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography,
		           ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography
		       ) AS distance
		FROM events
		WHERE deleted_at IS NULL
		  AND ST_DWithin(
		          ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography,
		          ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography,
		          ?
		      )
		ORDER BY distance
		LIMIT ? OFFSET ?`,
		longitude, latitude, longitude, latitude, radiusMeters, limit, offset,
	).Scan(&events).Error
	return events, err
}

// FindByCategory is a function that gets events belonging to a category.
func (s *EventStorage) FindByCategory(ctx context.Context, categoryID uint, limit, offset int) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).
		Where("? = ANY(category_ids)", int64(categoryID)).
		Order("start_time").
		Offset(offset).Limit(limit).
		Find(&events).Error
	return events, err
}
