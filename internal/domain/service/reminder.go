package service

import (
	"context"
	"fmt"
	"time"

	"github.com/eventlocator/backend/internal/domain/entity"
)

// Offset is a configured duration before an event's start at which a
// reminder fires. Label is the raw config string ("24h", "1h") and doubles
// as the reminder's queue key component.
type Offset struct {
	Label  string
	Before time.Duration
}

// ParseOffsets converts config strings like "24h" into offsets.
func ParseOffsets(labels []string) ([]Offset, error) {
	offsets := make([]Offset, 0, len(labels))
	for _, label := range labels {
		d, err := time.ParseDuration(label)
		if err != nil {
			return nil, fmt.Errorf("invalid reminder offset %q: %w", label, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("invalid reminder offset %q: must be positive", label)
		}
		offsets = append(offsets, Offset{Label: label, Before: d})
	}
	return offsets, nil
}

type recipientResolver interface {
	UsersByCategories(ctx context.Context, categoryIDs []int64) ([]entity.User, error)
}

type reminderQueue interface {
	Enqueue(ctx context.Context, reminder entity.Reminder) error
	RemoveAllForEvent(ctx context.Context, eventID string) error
	RemoveAllForUser(ctx context.Context, userID uint) error
}

type ReminderService struct {
	recipients recipientResolver
	queue      reminderQueue
	offsets    []Offset

	now func() time.Time
}

func NewReminderService(recipients recipientResolver, queue reminderQueue, offsets []Offset) *ReminderService {
	return &ReminderService{
		recipients: recipients,
		queue:      queue,
		offsets:    offsets,
		now:        time.Now,
	}
}

// Plan computes the reminders to deliver before the event starts: one per
// (recipient, offset) pair whose fire time is still strictly in the future.
// Events without categories have no recipients and plan nothing. Fire times
// already past are dropped here rather than enqueued and immediately fired.
func (s *ReminderService) Plan(ctx context.Context, event *entity.Event) ([]entity.Reminder, error) {
	if len(event.CategoryIDs) == 0 {
		return nil, nil
	}

	users, err := s.recipients.UsersByCategories(ctx, event.CategoryIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve recipients for event %s: %w", event.ID, err)
	}
	if len(users) == 0 {
		return nil, nil
	}

	now := s.now()
	var reminders []entity.Reminder
	for _, offset := range s.offsets {
		scheduledFor := event.StartTime.Add(-offset.Before)
		if !scheduledFor.After(now) {
			continue
		}
		for _, user := range users {
			reminders = append(reminders, entity.Reminder{
				EventID:      event.ID,
				UserID:       user.ID,
				Offset:       offset.Label,
				ScheduledFor: scheduledFor,
			})
		}
	}

	return reminders, nil
}

// Schedule plans and enqueues reminders for an event. The queue's keyed
// upsert makes re-scheduling on event update idempotent: pairs already
// pending are left untouched.
func (s *ReminderService) Schedule(ctx context.Context, event *entity.Event) ([]entity.Reminder, error) {
	reminders, err := s.Plan(ctx, event)
	if err != nil {
		return nil, err
	}

	for _, reminder := range reminders {
		if err = s.queue.Enqueue(ctx, reminder); err != nil {
			return reminders, err
		}
	}

	return reminders, nil
}

// RemoveAllForEvent drops pending reminders of a deleted event.
func (s *ReminderService) RemoveAllForEvent(ctx context.Context, eventID string) error {
	return s.queue.RemoveAllForEvent(ctx, eventID)
}

// RemoveAllForUser drops pending reminders of a deleted user.
func (s *ReminderService) RemoveAllForUser(ctx context.Context, userID uint) error {
	return s.queue.RemoveAllForUser(ctx, userID)
}
