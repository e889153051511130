package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventlocator/backend/internal/domain/common/errorz"
	"github.com/eventlocator/backend/internal/domain/entity"
	"github.com/eventlocator/backend/internal/domain/utils/locale"
)

type notifyUserStorage interface {
	Get(ctx context.Context, id uint) (*entity.User, error)
}

type notifyEventStorage interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
}

type mailClient interface {
	Send(to string, subject string, htmlBody string) error
}

// NotifyService renders and sends one reminder email per call. It makes
// exactly one delivery attempt; retry policy lives in the delivery worker.
type NotifyService struct {
	userStorage  notifyUserStorage
	eventStorage notifyEventStorage
	mail         mailClient
}

func NewNotifyService(userStorage notifyUserStorage, eventStorage notifyEventStorage, mail mailClient) *NotifyService {
	return &NotifyService{
		userStorage:  userStorage,
		eventStorage: eventStorage,
		mail:         mail,
	}
}

// Notify delivers the reminder to its user in the user's language.
// Errors wrapped as permanent will not succeed on retry: the event or user
// vanished since scheduling, or the recipient address is unusable. Anything
// else (typically the mail transport) is transient.
func (s *NotifyService) Notify(ctx context.Context, reminder entity.Reminder) error {
	user, err := s.userStorage.Get(ctx, reminder.UserID)
	if errors.Is(err, errorz.ErrUserNotFound) {
		return errorz.Permanent(errorz.ErrStaleReference)
	}
	if err != nil {
		return fmt.Errorf("load reminder user %d: %w", reminder.UserID, err)
	}

	event, err := s.eventStorage.Get(ctx, reminder.EventID)
	if errors.Is(err, errorz.ErrEventNotFound) {
		return errorz.Permanent(errorz.ErrStaleReference)
	}
	if err != nil {
		return fmt.Errorf("load reminder event %s: %w", reminder.EventID, err)
	}

	if user.Email == "" {
		return errorz.Permanent(errorz.ErrInvalidRecipient)
	}

	subject := locale.ReminderSubject(user.Language, event.Title)
	body := locale.ReminderBody(
		user.Language,
		user.Username,
		event.Title,
		reminder.Offset,
		event.StartTime.Format("Mon, 02 Jan 2006 15:04"),
		event.Address,
		event.Description,
	)

	return s.mail.Send(user.Email, subject, body)
}
