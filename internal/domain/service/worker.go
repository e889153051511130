package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eventlocator/backend/internal/adapters/logger"
	"github.com/eventlocator/backend/internal/domain/common/errorz"
	"github.com/eventlocator/backend/internal/domain/entity"
)

type deliveryQueue interface {
	Due(ctx context.Context, now time.Time) ([]entity.Reminder, error)
	Remove(ctx context.Context, reminder entity.Reminder) error
	IncrementAttempts(ctx context.Context, reminder entity.Reminder) (int, error)
}

type notifier interface {
	Notify(ctx context.Context, reminder entity.Reminder) error
}

type reminderLogStorage interface {
	Create(ctx context.Context, log *entity.ReminderLog) error
	Delivered(ctx context.Context, eventID string, userID uint, offset string) (bool, error)
}

// WorkerOptions configures the delivery loop.
type WorkerOptions struct {
	PollInterval time.Duration
	MaxAttempts  int
	MaxInFlight  int
}

// DeliveryWorker polls the queue for due reminders and dispatches them with
// bounded concurrency. A failing tick ends early and the loop resumes on the
// next interval; nothing short of context cancellation stops it.
type DeliveryWorker struct {
	queue    deliveryQueue
	notifier notifier
	history  reminderLogStorage
	logger   *logger.Logger

	pollInterval time.Duration
	maxAttempts  int
	maxInFlight  int

	now func() time.Time
}

func NewDeliveryWorker(
	queue deliveryQueue,
	notifier notifier,
	history reminderLogStorage,
	log *logger.Logger,
	opts WorkerOptions,
) *DeliveryWorker {
	return &DeliveryWorker{
		queue:        queue,
		notifier:     notifier,
		history:      history,
		logger:       log,
		pollInterval: opts.PollInterval,
		maxAttempts:  opts.MaxAttempts,
		maxInFlight:  opts.MaxInFlight,
		now:          time.Now,
	}
}

// Run ticks until ctx is cancelled. In-flight deliveries of the current tick
// finish before Run returns; a reminder interrupted mid-delivery stays queued
// and is re-delivered on restart.
func (w *DeliveryWorker) Run(ctx context.Context) {
	w.logger.Infof("delivery worker started (interval=%s, max attempts=%d)", w.pollInterval, w.maxAttempts)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("delivery worker stopping")
			return
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick processes every reminder that is due right now. Due reminders arrive
// in ascending fire-time order and are dispatched in that order, up to
// maxInFlight at a time.
func (w *DeliveryWorker) Tick(ctx context.Context) {
	due, err := w.queue.Due(ctx, w.now())
	if err != nil {
		w.logger.Errorf("failed to poll due reminders: %v", err)
		return
	}
	if len(due) == 0 {
		return
	}

	w.logger.Debugf("processing %d due reminders", len(due))

	g := new(errgroup.Group)
	g.SetLimit(w.maxInFlight)
	for _, reminder := range due {
		reminder := reminder
		g.Go(func() error {
			w.process(ctx, reminder)
			return nil
		})
	}
	_ = g.Wait()
}

func (w *DeliveryWorker) process(ctx context.Context, reminder entity.Reminder) {
	delivered, err := w.history.Delivered(ctx, reminder.EventID, reminder.UserID, reminder.Offset)
	if err != nil {
		w.logger.Errorf("failed to check delivery history for %s: %v", reminder.Key(), err)
		return
	}
	if delivered {
		// Left over from a crash after send but before removal.
		w.remove(ctx, reminder)
		return
	}

	attempts, err := w.queue.IncrementAttempts(ctx, reminder)
	if err != nil {
		w.logger.Errorf("failed to count attempt for %s: %v", reminder.Key(), err)
		return
	}

	err = w.notifier.Notify(ctx, reminder)
	switch {
	case err == nil:
		w.remove(ctx, reminder)
		w.record(ctx, reminder, entity.ReminderStatusDelivered, "")
		w.logger.Infof("reminder delivered (event=%s, user=%d, offset=%s)",
			reminder.EventID, reminder.UserID, reminder.Offset)

	case errorz.IsPermanent(err):
		w.remove(ctx, reminder)
		w.record(ctx, reminder, entity.ReminderStatusFailed, err.Error())
		if errors.Is(err, errorz.ErrStaleReference) {
			w.logger.Debugf("reminder %s dropped: %v", reminder.Key(), err)
		} else {
			w.logger.Warnf("reminder %s failed permanently: %v", reminder.Key(), err)
		}

	case attempts >= w.maxAttempts:
		w.remove(ctx, reminder)
		w.record(ctx, reminder, entity.ReminderStatusFailed, err.Error())
		w.logger.Errorf("reminder %s failed after %d attempts: %v", reminder.Key(), attempts, err)

	default:
		// Transient; stays queued for the next tick.
		w.logger.Warnf("reminder %s attempt %d/%d failed, will retry: %v",
			reminder.Key(), attempts, w.maxAttempts, err)
	}
}

func (w *DeliveryWorker) remove(ctx context.Context, reminder entity.Reminder) {
	if err := w.queue.Remove(ctx, reminder); err != nil {
		w.logger.Errorf("failed to remove reminder %s: %v", reminder.Key(), err)
	}
}

func (w *DeliveryWorker) record(ctx context.Context, reminder entity.Reminder, status entity.ReminderStatus, errText string) {
	log := &entity.ReminderLog{
		EventID: reminder.EventID,
		UserID:  reminder.UserID,
		Offset:  reminder.Offset,
		Status:  status,
		Error:   errText,
	}
	if err := w.history.Create(ctx, log); err != nil {
		w.logger.Errorf("failed to record reminder outcome for %s: %v", reminder.Key(), err)
	}
}
