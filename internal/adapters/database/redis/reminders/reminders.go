package reminders

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eventlocator/backend/internal/domain/entity"
)

const (
	// scheduleKey is a sorted set of reminder keys scored by fire time.
	scheduleKey = "reminders:schedule"
	// attemptsKey is a hash of reminder key -> delivery attempt count.
	attemptsKey = "reminders:attempts"

	scanBatch = 100
)

// Storage is the durable delivery queue. Members are "event:user:offset"
// keys, so the (event, user, offset) uniqueness is enforced by the store
// itself rather than by caller discipline.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

// Enqueue schedules a reminder. The NX flag makes the operation an idempotent
// upsert: a pending entry with the same key keeps its original fire time.
func (s *Storage) Enqueue(ctx context.Context, reminder entity.Reminder) error {
	err := s.redis.ZAddNX(ctx, scheduleKey, redis.Z{
		Score:  float64(reminder.ScheduledFor.Unix()),
		Member: reminder.Key(),
	}).Err()
	if err != nil {
		return fmt.Errorf("enqueue reminder %s: %w", reminder.Key(), err)
	}
	return nil
}

// Due returns all reminders with a fire time at or before now, ascending by
// fire time. Entries are not removed; removal is explicit after processing,
// so a crash mid-delivery leaves the reminder re-pollable.
func (s *Storage) Due(ctx context.Context, now time.Time) ([]entity.Reminder, error) {
	members, err := s.redis.ZRangeByScoreWithScores(ctx, scheduleKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.Unix(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("range due reminders: %w", err)
	}
	if len(members) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(members))
	for _, member := range members {
		keys = append(keys, member.Member.(string))
	}
	attempts, err := s.redis.HMGet(ctx, attemptsKey, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load reminder attempts: %w", err)
	}

	reminders := make([]entity.Reminder, 0, len(members))
	for i, member := range members {
		eventID, userID, offset, errParse := entity.ParseReminderKey(keys[i])
		if errParse != nil {
			return nil, errParse
		}
		reminder := entity.Reminder{
			EventID:      eventID,
			UserID:       userID,
			Offset:       offset,
			ScheduledFor: time.Unix(int64(member.Score), 0).UTC(),
		}
		if raw, ok := attempts[i].(string); ok {
			if n, errAtoi := strconv.Atoi(raw); errAtoi == nil {
				reminder.Attempts = n
			}
		}
		reminders = append(reminders, reminder)
	}

	return reminders, nil
}

// Remove deletes a reminder and its attempt counter.
func (s *Storage) Remove(ctx context.Context, reminder entity.Reminder) error {
	return s.removeKeys(ctx, reminder.Key())
}

// IncrementAttempts bumps and returns the delivery attempt count for a reminder.
func (s *Storage) IncrementAttempts(ctx context.Context, reminder entity.Reminder) (int, error) {
	count, err := s.redis.HIncrBy(ctx, attemptsKey, reminder.Key(), 1).Result()
	if err != nil {
		return 0, fmt.Errorf("increment attempts for %s: %w", reminder.Key(), err)
	}
	return int(count), nil
}

// RemoveAllForEvent drops every pending reminder for an event, regardless of
// fire time. Called when an event is deleted.
func (s *Storage) RemoveAllForEvent(ctx context.Context, eventID string) error {
	return s.removeMatching(ctx, eventID+":*")
}

// RemoveAllForUser drops every pending reminder for a user. Called when a
// user account is deleted.
func (s *Storage) RemoveAllForUser(ctx context.Context, userID uint) error {
	return s.removeMatching(ctx, fmt.Sprintf("*:%d:*", userID))
}

func (s *Storage) removeMatching(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := s.redis.ZScan(ctx, scheduleKey, cursor, pattern, scanBatch).Result()
		if err != nil {
			return fmt.Errorf("scan reminders matching %s: %w", pattern, err)
		}

		// ZSCAN returns member/score pairs; members are at even positions.
		members := make([]string, 0, len(keys)/2)
		for i := 0; i < len(keys); i += 2 {
			members = append(members, keys[i])
		}
		if len(members) > 0 {
			if err = s.removeKeys(ctx, members...); err != nil {
				return err
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (s *Storage) removeKeys(ctx context.Context, keys ...string) error {
	members := make([]interface{}, len(keys))
	fields := make([]string, len(keys))
	for i, key := range keys {
		members[i] = key
		fields[i] = key
	}

	pipe := s.redis.TxPipeline()
	pipe.ZRem(ctx, scheduleKey, members...)
	pipe.HDel(ctx, attemptsKey, fields...)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("remove reminders: %w", err)
	}
	return nil
}
