package booking

import "context"

type Repository interface {
	// CreateBooking atomically inserts the booking and claims its slots in
	// the conflict ledger. Returns *SlotConflictError when any requested
	// slot is already held.
	CreateBooking(ctx context.Context, b Booking) (*Booking, error)
	GetBookingByID(ctx context.Context, id int) (*Booking, error)
	// CancelBooking flips a confirmed booking to cancelled and releases its
	// slots, in one transaction. Returns ErrNotCancellable when the booking
	// is missing or not confirmed.
	CancelBooking(ctx context.Context, id int) error
	GetBookedSlots(ctx context.Context, courtID int, date string) ([]string, error)
	GetUserBookings(ctx context.Context, userID int) ([]Booking, error)
	ListBookingsWithDetails(ctx context.Context) ([]BookingWithDetails, error)

	// Aggregates for the admin view.
	CountNonCancelled(ctx context.Context) (int, error)
	SumRevenue(ctx context.Context) (int, error)
	CountActiveUsers(ctx context.Context) (int, error)
	CountBookedSlotsBetween(ctx context.Context, fromDate, toDate string) (int, error)
}
