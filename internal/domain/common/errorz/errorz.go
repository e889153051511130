package errorz

import "errors"

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	Forbidden           = errors.New("forbidden")

	// ErrStaleReference means the event or user behind a reminder vanished
	// between scheduling and delivery. Not retryable.
	ErrStaleReference = errors.New("referenced event or user no longer exists")

	// ErrInvalidRecipient means the recipient has no usable email address.
	ErrInvalidRecipient = errors.New("recipient has no usable email address")
)

// PermanentError marks a delivery error that will not succeed on retry.
// Anything not wrapped in it is treated as transient by the delivery worker.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }

func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err as a permanent delivery failure. Wrapping nil returns nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err was classified as a permanent delivery failure.
func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}
