package reminders_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/eventlocator/backend/internal/adapters/database/redis/reminders"
	"github.com/eventlocator/backend/internal/domain/entity"
)

func newStorage(t *testing.T) *reminders.Storage {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return reminders.NewStorage(client)
}

func reminder(eventID string, userID uint, offset string, scheduledFor time.Time) entity.Reminder {
	return entity.Reminder{
		EventID:      eventID,
		UserID:       userID,
		Offset:       offset,
		ScheduledFor: scheduledFor,
	}
}

func TestEnqueueIsIdempotent(t *testing.T) {
	s := newStorage(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Minute).Truncate(time.Second)

	first := reminder("event-1", 7, "24h", base)
	require.NoError(t, s.Enqueue(ctx, first))

	// Re-planning with a different fire time must not duplicate the entry
	// and must keep the first-scheduled time.
	replanned := reminder("event-1", 7, "24h", base.Add(time.Hour))
	require.NoError(t, s.Enqueue(ctx, replanned))

	due, err := s.Due(ctx, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, base.Unix(), due[0].ScheduledFor.Unix())
}

func TestDueThresholdAndOrder(t *testing.T) {
	s := newStorage(t)
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	require.NoError(t, s.Enqueue(ctx, reminder("event-late", 1, "1h", now.Add(-time.Minute))))
	require.NoError(t, s.Enqueue(ctx, reminder("event-early", 1, "24h", now.Add(-time.Hour))))
	require.NoError(t, s.Enqueue(ctx, reminder("event-future", 1, "1h", now.Add(time.Hour))))

	due, err := s.Due(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 2)
	require.Equal(t, "event-early", due[0].EventID)
	require.Equal(t, "event-late", due[1].EventID)
	for _, r := range due {
		require.False(t, r.ScheduledFor.After(now))
	}
}

func TestDueDoesNotRemove(t *testing.T) {
	s := newStorage(t)
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	require.NoError(t, s.Enqueue(ctx, reminder("event-1", 1, "1h", now.Add(-time.Minute))))

	for i := 0; i < 2; i++ {
		due, err := s.Due(ctx, now)
		require.NoError(t, err)
		require.Len(t, due, 1)
	}
}

func TestRemove(t *testing.T) {
	s := newStorage(t)
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	r := reminder("event-1", 1, "1h", now.Add(-time.Minute))
	require.NoError(t, s.Enqueue(ctx, r))
	require.NoError(t, s.Remove(ctx, r))

	due, err := s.Due(ctx, now)
	require.NoError(t, err)
	require.Empty(t, due)
}

func TestIncrementAttempts(t *testing.T) {
	s := newStorage(t)
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	r := reminder("event-1", 1, "1h", now.Add(-time.Minute))
	require.NoError(t, s.Enqueue(ctx, r))

	for want := 1; want <= 3; want++ {
		got, err := s.IncrementAttempts(ctx, r)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	due, err := s.Due(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, 3, due[0].Attempts)

	// Removal clears the attempt counter as well.
	require.NoError(t, s.Remove(ctx, r))
	require.NoError(t, s.Enqueue(ctx, r))
	count, err := s.IncrementAttempts(ctx, r)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestRemoveAllForEvent(t *testing.T) {
	s := newStorage(t)
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	require.NoError(t, s.Enqueue(ctx, reminder("event-1", 1, "24h", now.Add(-time.Hour))))
	require.NoError(t, s.Enqueue(ctx, reminder("event-1", 2, "1h", now.Add(time.Hour))))
	require.NoError(t, s.Enqueue(ctx, reminder("event-2", 1, "1h", now.Add(-time.Minute))))

	require.NoError(t, s.RemoveAllForEvent(ctx, "event-1"))

	due, err := s.Due(ctx, now.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, "event-2", due[0].EventID)
}

func TestRemoveAllForUser(t *testing.T) {
	s := newStorage(t)
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	require.NoError(t, s.Enqueue(ctx, reminder("event-1", 1, "24h", now.Add(-time.Hour))))
	require.NoError(t, s.Enqueue(ctx, reminder("event-2", 1, "1h", now.Add(-time.Minute))))
	require.NoError(t, s.Enqueue(ctx, reminder("event-2", 12, "1h", now.Add(-time.Minute))))

	require.NoError(t, s.RemoveAllForUser(ctx, 1))

	due, err := s.Due(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, uint(12), due[0].UserID)
}
