package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eventlocator/backend/internal/domain/common/errorz"
	"github.com/eventlocator/backend/internal/domain/entity"
)

type memQueue struct {
	mu       sync.Mutex
	entries  map[string]entity.Reminder
	attempts map[string]int
	dueErr   error
}

func newMemQueue() *memQueue {
	return &memQueue{
		entries:  make(map[string]entity.Reminder),
		attempts: make(map[string]int),
	}
}

func (q *memQueue) add(r entity.Reminder) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries[r.Key()] = r
}

func (q *memQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

func (q *memQueue) Due(_ context.Context, now time.Time) ([]entity.Reminder, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.dueErr != nil {
		return nil, q.dueErr
	}
	var due []entity.Reminder
	for _, r := range q.entries {
		if !r.ScheduledFor.After(now) {
			due = append(due, r)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ScheduledFor.Before(due[j].ScheduledFor) })
	return due, nil
}

func (q *memQueue) Remove(_ context.Context, r entity.Reminder) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.entries, r.Key())
	delete(q.attempts, r.Key())
	return nil
}

func (q *memQueue) IncrementAttempts(_ context.Context, r entity.Reminder) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.attempts[r.Key()]++
	return q.attempts[r.Key()], nil
}

type seqNotifier struct {
	mu    sync.Mutex
	errs  []error
	calls []string
}

func (n *seqNotifier) Notify(_ context.Context, r entity.Reminder) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, r.Key())
	if len(n.errs) == 0 {
		return nil
	}
	err := n.errs[0]
	n.errs = n.errs[1:]
	return err
}

func (n *seqNotifier) callCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

type memHistory struct {
	mu        sync.Mutex
	logs      []entity.ReminderLog
	delivered map[string]bool
}

func newMemHistory() *memHistory {
	return &memHistory{delivered: make(map[string]bool)}
}

func (h *memHistory) Create(_ context.Context, log *entity.ReminderLog) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.logs = append(h.logs, *log)
	if log.Status == entity.ReminderStatusDelivered {
		h.delivered[entity.Reminder{EventID: log.EventID, UserID: log.UserID, Offset: log.Offset}.Key()] = true
	}
	return nil
}

func (h *memHistory) Delivered(_ context.Context, eventID string, userID uint, offset string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.delivered[entity.Reminder{EventID: eventID, UserID: userID, Offset: offset}.Key()], nil
}

func (h *memHistory) statuses() []entity.ReminderStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]entity.ReminderStatus, 0, len(h.logs))
	for _, l := range h.logs {
		out = append(out, l.Status)
	}
	return out
}

func newTestWorker(t *testing.T, queue *memQueue, n *seqNotifier, history *memHistory, now time.Time) *DeliveryWorker {
	t.Helper()
	w := NewDeliveryWorker(queue, n, history, testLogger(t), WorkerOptions{
		PollInterval: time.Minute,
		MaxAttempts:  3,
		MaxInFlight:  1,
	})
	w.now = func() time.Time { return now }
	return w
}

func dueReminder(eventID string, userID uint, offset string, now time.Time) entity.Reminder {
	return entity.Reminder{
		EventID:      eventID,
		UserID:       userID,
		Offset:       offset,
		ScheduledFor: now.Add(-time.Minute),
	}
}

func TestTickDeliversAndRemoves(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	queue := newMemQueue()
	n := &seqNotifier{}
	history := newMemHistory()
	w := newTestWorker(t, queue, n, history, now)

	queue.add(dueReminder("event-1", 7, "24h", now))
	w.Tick(context.Background())

	require.Equal(t, 1, n.callCount())
	require.Zero(t, queue.len())
	require.Equal(t, []entity.ReminderStatus{entity.ReminderStatusDelivered}, history.statuses())

	// The reminder is gone; the next tick has nothing to do.
	w.Tick(context.Background())
	require.Equal(t, 1, n.callCount())
}

func TestTickLeavesFutureReminders(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	queue := newMemQueue()
	n := &seqNotifier{}
	w := newTestWorker(t, queue, n, newMemHistory(), now)

	queue.add(entity.Reminder{EventID: "event-1", UserID: 7, Offset: "1h", ScheduledFor: now.Add(time.Hour)})
	w.Tick(context.Background())

	require.Zero(t, n.callCount())
	require.Equal(t, 1, queue.len())
}

func TestTransientFailureRetriesUntilExhausted(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	queue := newMemQueue()
	transient := errors.New("smtp timeout")
	n := &seqNotifier{errs: []error{transient, transient, transient, transient}}
	history := newMemHistory()
	w := newTestWorker(t, queue, n, history, now)

	queue.add(dueReminder("event-1", 7, "24h", now))

	// Attempts 1 and 2 leave the reminder queued.
	w.Tick(context.Background())
	require.Equal(t, 1, queue.len())
	w.Tick(context.Background())
	require.Equal(t, 1, queue.len())

	// Attempt 3 exhausts the budget: removed and recorded as failed.
	w.Tick(context.Background())
	require.Zero(t, queue.len())
	require.Equal(t, []entity.ReminderStatus{entity.ReminderStatusFailed}, history.statuses())

	// No fourth attempt.
	w.Tick(context.Background())
	require.Equal(t, 3, n.callCount())
}

func TestPermanentFailureRemovesImmediately(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	queue := newMemQueue()
	n := &seqNotifier{errs: []error{errorz.Permanent(errorz.ErrInvalidRecipient)}}
	history := newMemHistory()
	w := newTestWorker(t, queue, n, history, now)

	queue.add(dueReminder("event-1", 7, "24h", now))
	w.Tick(context.Background())

	require.Zero(t, queue.len())
	require.Equal(t, 1, n.callCount())
	require.Equal(t, []entity.ReminderStatus{entity.ReminderStatusFailed}, history.statuses())
}

func TestStaleReferenceIsDiscarded(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	queue := newMemQueue()
	n := &seqNotifier{errs: []error{errorz.Permanent(errorz.ErrStaleReference)}}
	history := newMemHistory()
	w := newTestWorker(t, queue, n, history, now)

	queue.add(dueReminder("event-gone", 7, "1h", now))
	w.Tick(context.Background())

	require.Zero(t, queue.len())
	require.Equal(t, []entity.ReminderStatus{entity.ReminderStatusFailed}, history.statuses())
}

func TestAlreadyDeliveredIsSuppressed(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	queue := newMemQueue()
	n := &seqNotifier{}
	history := newMemHistory()
	w := newTestWorker(t, queue, n, history, now)

	// Crash left a delivered reminder in the queue.
	r := dueReminder("event-1", 7, "24h", now)
	queue.add(r)
	require.NoError(t, history.Create(context.Background(), &entity.ReminderLog{
		EventID: r.EventID, UserID: r.UserID, Offset: r.Offset,
		Status: entity.ReminderStatusDelivered,
	}))

	w.Tick(context.Background())

	require.Zero(t, queue.len())
	require.Zero(t, n.callCount())
}

func TestDueErrorEndsTickEarly(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	queue := newMemQueue()
	queue.dueErr = errors.New("redis down")
	n := &seqNotifier{}
	w := newTestWorker(t, queue, n, newMemHistory(), now)

	queue.add(dueReminder("event-1", 7, "24h", now))
	w.Tick(context.Background())

	require.Zero(t, n.callCount())
	require.Equal(t, 1, queue.len())
}

func TestTickProcessesInScheduledOrder(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	queue := newMemQueue()
	n := &seqNotifier{}
	w := newTestWorker(t, queue, n, newMemHistory(), now)

	early := entity.Reminder{EventID: "event-a", UserID: 1, Offset: "24h", ScheduledFor: now.Add(-time.Hour)}
	late := entity.Reminder{EventID: "event-b", UserID: 1, Offset: "1h", ScheduledFor: now.Add(-time.Minute)}
	queue.add(late)
	queue.add(early)

	w.Tick(context.Background())

	require.Equal(t, []string{early.Key(), late.Key()}, n.calls)
}

func TestRunStopsOnCancel(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	queue := newMemQueue()
	w := NewDeliveryWorker(queue, &seqNotifier{}, newMemHistory(), testLogger(t), WorkerOptions{
		PollInterval: 10 * time.Millisecond,
		MaxAttempts:  3,
		MaxInFlight:  1,
	})
	w.now = func() time.Time { return now }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}
