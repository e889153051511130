package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Reminder is one scheduled notification: one user, one event, one offset
// before the event start. It lives in the delivery queue until it is either
// delivered or classified as permanently failed.
type Reminder struct {
	EventID      string
	UserID       uint
	Offset       string
	ScheduledFor time.Time
	Attempts     int
}

// Key returns the queue member key. The (event, user, offset) tuple uniquely
// identifies a reminder; enqueueing the same key twice collapses to one entry.
func (r Reminder) Key() string {
	return fmt.Sprintf("%s:%d:%s", r.EventID, r.UserID, r.Offset)
}

// ParseReminderKey is the inverse of Reminder.Key. Event IDs are UUIDs and
// offset labels are duration strings, so neither contains a colon.
func ParseReminderKey(key string) (eventID string, userID uint, offset string, err error) {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) != 3 {
		return "", 0, "", fmt.Errorf("malformed reminder key %q", key)
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return "", 0, "", fmt.Errorf("malformed user id in reminder key %q: %w", key, err)
	}
	return parts[0], uint(id), parts[2], nil
}
