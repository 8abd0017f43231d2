package booking

import (
	"context"
	"sort"
	"time"

	"courtslot/internal/court"
)

type Service interface {
	CreateBooking(ctx context.Context, userID int, req CreateBookingRequest) (*Booking, error)
	CancelBooking(ctx context.Context, bookingID, requestingUserID int, isAdmin bool) error
	GetAvailability(ctx context.Context, courtID int, date string) (*Availability, error)
	GetUserBookings(ctx context.Context, userID int) ([]Booking, error)
	ListBookingsWithDetails(ctx context.Context) ([]BookingWithDetails, error)
}

type service struct {
	bookingRepo Repository
	courtRepo   court.Repository

	// now is swapped in tests.
	now func() time.Time
}

func NewService(bookingRepo Repository, courtRepo court.Repository) Service {
	return &service{
		bookingRepo: bookingRepo,
		courtRepo:   courtRepo,
		now:         time.Now,
	}
}

// CreateBooking checks preconditions in a fixed order, short-circuiting on
// the first failure: past date, slot validity, court status, slot conflicts.
// The conflict check and insert are one transaction in the repository.
func (s *service) CreateBooking(ctx context.Context, userID int, req CreateBookingRequest) (*Booking, error) {
	day, err := time.ParseInLocation(dateLayout, req.Date, s.now().Location())
	if err != nil {
		return nil, ErrInvalidDate
	}

	if day.Before(today(s.now())) {
		return nil, ErrPastDate
	}

	c, err := s.courtRepo.GetCourtByID(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}

	slots := append([]string(nil), req.SlotStarts...)
	sort.Strings(slots)
	if len(slots) == 0 {
		return nil, ErrInvalidSlot
	}
	for i, slot := range slots {
		if i > 0 && slots[i-1] == slot {
			return nil, ErrInvalidSlot
		}
		if !c.HasSlot(slot) {
			return nil, ErrInvalidSlot
		}
	}

	if c.Status != court.StatusActive {
		return nil, ErrCourtUnavailable
	}

	return s.bookingRepo.CreateBooking(ctx, Booking{
		UserID:      userID,
		CourtID:     c.ID,
		Date:        req.Date,
		SlotStarts:  slots,
		TotalAmount: len(slots) * c.PricePerHour,
	})
}

func (s *service) CancelBooking(ctx context.Context, bookingID, requestingUserID int, isAdmin bool) error {
	b, err := s.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if b.UserID != requestingUserID && !isAdmin {
		return ErrNotOwner
	}

	if b.Status != StatusConfirmed {
		return ErrNotCancellable
	}

	day, err := time.ParseInLocation(dateLayout, b.Date, s.now().Location())
	if err != nil {
		return ErrInvalidDate
	}
	if day.Before(today(s.now())) {
		return ErrCancellationWindow
	}

	return s.bookingRepo.CancelBooking(ctx, bookingID)
}

// GetAvailability is a pure read view over the ledger: every grid slot for
// the court, marked booked iff a confirmed booking holds it. Non-active
// courts are reported as not bookable.
func (s *service) GetAvailability(ctx context.Context, courtID int, date string) (*Availability, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	c, err := s.courtRepo.GetCourtByID(ctx, courtID)
	if err != nil {
		return nil, err
	}

	booked, err := s.bookingRepo.GetBookedSlots(ctx, courtID, date)
	if err != nil {
		return nil, err
	}

	bookedSet := make(map[string]struct{}, len(booked))
	for _, slot := range booked {
		bookedSet[slot] = struct{}{}
	}

	grid := c.SlotGrid()
	slots := make([]AvailabilitySlot, 0, len(grid))
	for _, slot := range grid {
		_, isBooked := bookedSet[slot]
		slots = append(slots, AvailabilitySlot{SlotStart: slot, IsBooked: isBooked})
	}

	return &Availability{
		CourtID:  c.ID,
		Date:     date,
		Bookable: c.Status == court.StatusActive,
		Slots:    slots,
	}, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID int) ([]Booking, error) {
	bookings, err := s.bookingRepo.GetUserBookings(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range bookings {
		bookings[i].Status = bookings[i].EffectiveStatus(now)
	}

	return bookings, nil
}

func (s *service) ListBookingsWithDetails(ctx context.Context) ([]BookingWithDetails, error) {
	bookings, err := s.bookingRepo.ListBookingsWithDetails(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range bookings {
		bookings[i].Status = bookings[i].EffectiveStatus(now)
	}

	return bookings, nil
}

func today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
