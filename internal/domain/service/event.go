package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"

	"github.com/eventlocator/backend/internal/adapters/logger"
	"github.com/eventlocator/backend/internal/domain/common/errorz"
	"github.com/eventlocator/backend/internal/domain/dto"
	"github.com/eventlocator/backend/internal/domain/entity"
)

type EventStorage interface {
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Get(ctx context.Context, id string) (*entity.Event, error)
	GetMany(ctx context.Context, ids []string) ([]entity.Event, error)
	Update(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	GetWithPagination(ctx context.Context, limit, offset int, order string) ([]entity.Event, error)
	FindNearby(ctx context.Context, latitude, longitude, radiusMeters float64, limit, offset int) ([]dto.NearbyEvent, error)
	FindByCategory(ctx context.Context, categoryID uint, limit, offset int) ([]entity.Event, error)
}

type favoriteStorage interface {
	Add(ctx context.Context, favorite *entity.Favorite) error
	Remove(ctx context.Context, userID uint, eventID string) error
	GetForUser(ctx context.Context, userID uint, limit, offset int) ([]entity.Event, error)
}

type reviewStorage interface {
	Create(ctx context.Context, review *entity.Review) (*entity.Review, error)
	GetForEvent(ctx context.Context, eventID string, limit, offset int) ([]entity.Review, error)
	Rating(ctx context.Context, eventID string) (dto.EventRating, error)
}

type eventCategoryStorage interface {
	GetMany(ctx context.Context, ids []int64) ([]entity.Category, error)
}

type reminderScheduler interface {
	Schedule(ctx context.Context, event *entity.Event) ([]entity.Reminder, error)
	RemoveAllForEvent(ctx context.Context, eventID string) error
}

type EventService struct {
	eventStorage    EventStorage
	favoriteStorage favoriteStorage
	reviewStorage   reviewStorage
	categoryStorage eventCategoryStorage
	reminders       reminderScheduler
	validate        *validator.Validate
	logger          *logger.Logger
}

func NewEventService(
	eventStorage EventStorage,
	favoriteStorage favoriteStorage,
	reviewStorage reviewStorage,
	categoryStorage eventCategoryStorage,
	reminders reminderScheduler,
	log *logger.Logger,
) *EventService {
	return &EventService{
		eventStorage:    eventStorage,
		favoriteStorage: favoriteStorage,
		reviewStorage:   reviewStorage,
		categoryStorage: categoryStorage,
		reminders:       reminders,
		validate:        validator.New(),
		logger:          log,
	}
}

// Create persists a new event and schedules its reminders. Reminder
// scheduling is best effort: a failure there is logged and the created
// event is still returned.
func (s *EventService) Create(ctx context.Context, creatorID uint, input dto.EventCreate) (*entity.Event, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	event, err := s.eventStorage.Create(ctx, &entity.Event{
		Title:       input.Title,
		Description: input.Description,
		Address:     input.Address,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		CreatorID:   creatorID,
		CategoryIDs: pq.Int64Array(input.CategoryIDs),
	})
	if err != nil {
		return nil, err
	}

	s.scheduleReminders(ctx, event)
	return event, nil
}

// Update applies the changes and re-plans reminders. Re-planning is
// idempotent: reminders already pending are not duplicated.
func (s *EventService) Update(ctx context.Context, userID uint, admin bool, id string, input dto.EventUpdate) (*entity.Event, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	event, err := s.getOwned(ctx, userID, admin, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Address != nil {
		event.Address = *input.Address
	}
	if input.Latitude != nil {
		event.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		event.Longitude = *input.Longitude
	}
	if input.StartTime != nil {
		event.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		event.EndTime = *input.EndTime
	}
	if input.CategoryIDs != nil {
		event.CategoryIDs = pq.Int64Array(*input.CategoryIDs)
	}

	event, err = s.eventStorage.Update(ctx, event)
	if err != nil {
		return nil, err
	}

	s.scheduleReminders(ctx, event)
	return event, nil
}

// Delete removes the event and every reminder still pending for it, so no
// reminder ever references a deleted event.
func (s *EventService) Delete(ctx context.Context, userID uint, admin bool, id string) error {
	if _, err := s.getOwned(ctx, userID, admin, id); err != nil {
		return err
	}
	if err := s.eventStorage.Delete(ctx, id); err != nil {
		return err
	}
	return s.reminders.RemoveAllForEvent(ctx, id)
}

func (s *EventService) Get(ctx context.Context, id string) (*entity.Event, error) {
	return s.eventStorage.Get(ctx, id)
}

func (s *EventService) GetMany(ctx context.Context, ids []string) ([]entity.Event, error) {
	return s.eventStorage.GetMany(ctx, ids)
}

func (s *EventService) Count(ctx context.Context) (int64, error) {
	return s.eventStorage.Count(ctx)
}

func (s *EventService) GetWithPagination(ctx context.Context, limit, offset int, order string) ([]entity.Event, error) {
	return s.eventStorage.GetWithPagination(ctx, limit, offset, order)
}

// FindNearby returns events within radiusMeters of the point, closest first.
func (s *EventService) FindNearby(ctx context.Context, latitude, longitude, radiusMeters float64, limit, offset int) ([]dto.NearbyEvent, error) {
	return s.eventStorage.FindNearby(ctx, latitude, longitude, radiusMeters, limit, offset)
}

func (s *EventService) FindByCategory(ctx context.Context, categoryID uint, limit, offset int) ([]entity.Event, error) {
	return s.eventStorage.FindByCategory(ctx, categoryID, limit, offset)
}

// Details returns the event with its categories and review aggregate.
func (s *EventService) Details(ctx context.Context, id string) (*dto.EventDetails, error) {
	event, err := s.eventStorage.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryStorage.GetMany(ctx, event.CategoryIDs)
	if err != nil {
		return nil, err
	}

	rating, err := s.reviewStorage.Rating(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.EventDetails{
		Event:      *event,
		Categories: categories,
		Rating:     rating,
	}, nil
}

func (s *EventService) AddFavorite(ctx context.Context, userID uint, eventID string) error {
	if _, err := s.eventStorage.Get(ctx, eventID); err != nil {
		return err
	}
	return s.favoriteStorage.Add(ctx, &entity.Favorite{UserID: userID, EventID: eventID})
}

func (s *EventService) RemoveFavorite(ctx context.Context, userID uint, eventID string) error {
	return s.favoriteStorage.Remove(ctx, userID, eventID)
}

func (s *EventService) GetFavorites(ctx context.Context, userID uint, limit, offset int) ([]entity.Event, error) {
	return s.favoriteStorage.GetForUser(ctx, userID, limit, offset)
}

func (s *EventService) AddReview(ctx context.Context, userID uint, eventID string, rating int, comment string) (*entity.Review, error) {
	if err := s.validate.Var(rating, "gte=1,lte=5"); err != nil {
		return nil, err
	}
	if _, err := s.eventStorage.Get(ctx, eventID); err != nil {
		return nil, err
	}
	return s.reviewStorage.Create(ctx, &entity.Review{
		UserID:  userID,
		EventID: eventID,
		Rating:  rating,
		Comment: comment,
	})
}

func (s *EventService) GetReviews(ctx context.Context, eventID string, limit, offset int) ([]entity.Review, error) {
	return s.reviewStorage.GetForEvent(ctx, eventID, limit, offset)
}

func (s *EventService) getOwned(ctx context.Context, userID uint, admin bool, id string) (*entity.Event, error) {
	event, err := s.eventStorage.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.CreatorID != userID && !admin {
		return nil, errorz.Forbidden
	}
	return event, nil
}

func (s *EventService) scheduleReminders(ctx context.Context, event *entity.Event) {
	if _, err := s.reminders.Schedule(ctx, event); err != nil {
		s.logger.Errorf("failed to schedule reminders for event %s: %v", event.ID, err)
	}
}
