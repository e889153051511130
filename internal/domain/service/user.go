package service

import (
	"context"

	"github.com/eventlocator/backend/internal/adapters/logger"
	"github.com/eventlocator/backend/internal/domain/entity"
	"github.com/eventlocator/backend/internal/domain/utils/locale"
)

type UserStorage interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Get(ctx context.Context, id uint) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	GetWithPagination(ctx context.Context, limit int, offset int, order string) ([]entity.User, error)
}

type userPreferenceStorage interface {
	DeleteForUser(ctx context.Context, userID uint) error
}

type userReminderQueue interface {
	RemoveAllForUser(ctx context.Context, userID uint) error
}

type smtpClient interface {
	Send(to string, subject string, htmlBody string) error
}

type UserService struct {
	userStorage       UserStorage
	preferenceStorage userPreferenceStorage
	reminderQueue     userReminderQueue
	smtpClient        smtpClient
	logger            *logger.Logger
}

func NewUserService(
	userStorage UserStorage,
	preferenceStorage userPreferenceStorage,
	reminderQueue userReminderQueue,
	smtpClient smtpClient,
	log *logger.Logger,
) *UserService {
	return &UserService{
		userStorage:       userStorage,
		preferenceStorage: preferenceStorage,
		reminderQueue:     reminderQueue,
		smtpClient:        smtpClient,
		logger:            log,
	}
}

// Create registers a user and sends a welcome email. The email is best
// effort: a transport failure is logged but does not fail registration.
func (s *UserService) Create(ctx context.Context, user entity.User) (*entity.User, error) {
	if user.Language == "" {
		user.Language = locale.Fallback
	}

	created, err := s.userStorage.Create(ctx, &user)
	if err != nil {
		return nil, err
	}

	errSend := s.smtpClient.Send(
		created.Email,
		locale.WelcomeSubject(created.Language),
		locale.WelcomeBody(created.Language, created.Username),
	)
	if errSend != nil {
		s.logger.Warnf("failed to send welcome email to %s: %v", created.Email, errSend)
	}

	return created, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*entity.User, error) {
	return s.userStorage.Get(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.userStorage.GetByEmail(ctx, email)
}

func (s *UserService) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	return s.userStorage.Update(ctx, user)
}

// SetLocation updates the user's home location.
func (s *UserService) SetLocation(ctx context.Context, id uint, latitude, longitude float64) (*entity.User, error) {
	user, err := s.userStorage.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Latitude = latitude
	user.Longitude = longitude
	return s.userStorage.Update(ctx, user)
}

// Delete removes the user along with their preferences and any reminders
// still pending for them, so no reminder ever references a deleted user.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if err := s.userStorage.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.preferenceStorage.DeleteForUser(ctx, id); err != nil {
		return err
	}
	return s.reminderQueue.RemoveAllForUser(ctx, id)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.userStorage.Count(ctx)
}

func (s *UserService) GetWithPagination(ctx context.Context, limit int, offset int, order string) ([]entity.User, error) {
	return s.userStorage.GetWithPagination(ctx, limit, offset, order)
}
