package booking

import (
	"errors"
	"strings"
)

var (
	ErrPastDate           = errors.New("booking date is in the past")
	ErrInvalidDate        = errors.New("invalid booking date")
	ErrInvalidSlot        = errors.New("slot is not on the court's grid")
	ErrCourtUnavailable   = errors.New("court is not available for booking")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrNotOwner           = errors.New("booking belongs to another user")
	ErrNotCancellable     = errors.New("booking is not in a cancellable state")
	ErrCancellationWindow = errors.New("booking date has already passed")
)

// SlotConflictError reports the specific slots that already hold a confirmed
// booking for the requested court and date.
type SlotConflictError struct {
	Slots []string
}

func (e *SlotConflictError) Error() string {
	return "slots already booked: " + strings.Join(e.Slots, ", ")
}
