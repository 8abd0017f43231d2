package booking

import (
	"time"

	"github.com/lib/pq"

	"courtslot/internal/court"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	// StatusCompleted is never written; it is the read-time projection of a
	// confirmed booking whose last slot has passed.
	StatusCompleted = "completed"
)

const dateLayout = "2006-01-02"

type Booking struct {
	ID          int            `db:"id" json:"id"`
	UserID      int            `db:"user_id" json:"user_id"`
	CourtID     int            `db:"court_id" json:"court_id"`
	Date        string         `db:"date" json:"date"`
	SlotStarts  pq.StringArray `db:"slot_starts" json:"slot_starts" swaggertype:"array,string"`
	TotalAmount int            `db:"total_amount" json:"total_amount"`
	Status      string         `db:"status" json:"status"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// EffectiveStatus projects the stored status at the given instant: a
// confirmed booking whose last slot has ended reads as completed.
func (b *Booking) EffectiveStatus(now time.Time) string {
	if b.Status != StatusConfirmed || len(b.SlotStarts) == 0 {
		return b.Status
	}

	day, err := time.ParseInLocation(dateLayout, b.Date, now.Location())
	if err != nil {
		return b.Status
	}

	last := b.SlotStarts[len(b.SlotStarts)-1]
	startMin, err := court.ParseClock(last)
	if err != nil {
		return b.Status
	}

	end := day.Add(time.Duration(startMin+60) * time.Minute)
	if !end.After(now) {
		return StatusCompleted
	}
	return StatusConfirmed
}

type BookingWithDetails struct {
	Booking
	CourtName     string `db:"court_name" json:"court_name"`
	CourtType     string `db:"court_type" json:"court_type"`
	CourtLocation string `db:"court_location" json:"court_location"`
	UserName      string `db:"user_name" json:"user_name"`
	UserEmail     string `db:"user_email" json:"user_email"`
}

type CreateBookingRequest struct {
	CourtID    int      `json:"court_id" binding:"required"`
	Date       string   `json:"date" binding:"required,datetime=2006-01-02"`
	SlotStarts []string `json:"slot_starts" binding:"required,min=1"`
}

type AvailabilitySlot struct {
	SlotStart string `json:"slot_start"`
	IsBooked  bool   `json:"is_booked"`
}

type Availability struct {
	CourtID  int                `json:"court_id"`
	Date     string             `json:"date"`
	Bookable bool               `json:"bookable"`
	Slots    []AvailabilitySlot `json:"slots"`
}
