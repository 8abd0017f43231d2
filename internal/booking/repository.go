package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBooking(ctx context.Context, b Booking) (*Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Lock any slot rows that would collide so the conflict check and the
	// insert act as one unit against concurrent requests.
	var conflicts []string
	lockQuery := `
		SELECT slot_start
		FROM booking_slots
		WHERE court_id = $1 AND date = $2 AND slot_start = ANY($3)
		ORDER BY slot_start
		FOR UPDATE
	`
	if err := tx.SelectContext(ctx, &conflicts, lockQuery, b.CourtID, b.Date, pq.Array(b.SlotStarts)); err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &SlotConflictError{Slots: conflicts}
	}

	insertQuery := `
		INSERT INTO bookings (user_id, court_id, date, slot_starts, total_amount, status)
		VALUES ($1, $2, $3, $4, $5, 'confirmed')
		RETURNING id, user_id, court_id, to_char(date, 'YYYY-MM-DD') AS date, slot_starts, total_amount, status, created_at
	`

	var created Booking
	err = tx.GetContext(ctx, &created, insertQuery,
		b.UserID, b.CourtID, b.Date, pq.Array(b.SlotStarts), b.TotalAmount)
	if err != nil {
		return nil, err
	}

	slotQuery := `
		INSERT INTO booking_slots (booking_id, court_id, date, slot_start)
		SELECT $1, $2, $3, unnest($4::text[])
	`
	if _, err := tx.ExecContext(ctx, slotQuery, created.ID, b.CourtID, b.Date, pq.Array(b.SlotStarts)); err != nil {
		// The unique constraint is the backstop for races the lock did not
		// cover (e.g. both transactions inserting fresh rows).
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, &SlotConflictError{Slots: b.SlotStarts}
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetBookingByID(ctx context.Context, id int) (*Booking, error) {
	query := `
		SELECT id, user_id, court_id, to_char(date, 'YYYY-MM-DD') AS date, slot_starts, total_amount, status, created_at
		FROM bookings
		WHERE id = $1
	`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *repository) CancelBooking(ctx context.Context, id int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE bookings
		SET status = 'cancelled'
		WHERE id = $1 AND status = 'confirmed'
	`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotCancellable
	}

	// Freed slots become available to others immediately.
	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_slots WHERE booking_id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) GetBookedSlots(ctx context.Context, courtID int, date string) ([]string, error) {
	query := `
		SELECT slot_start
		FROM booking_slots
		WHERE court_id = $1 AND date = $2
		ORDER BY slot_start
	`

	slots := []string{}
	if err := r.db.SelectContext(ctx, &slots, query, courtID, date); err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID int) ([]Booking, error) {
	query := `
		SELECT id, user_id, court_id, to_char(date, 'YYYY-MM-DD') AS date, slot_starts, total_amount, status, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
	`

	bookings := []Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListBookingsWithDetails(ctx context.Context) ([]BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.user_id,
			b.court_id,
			to_char(b.date, 'YYYY-MM-DD') AS date,
			b.slot_starts,
			b.total_amount,
			b.status,
			b.created_at,
			c.name AS court_name,
			c.type AS court_type,
			c.location AS court_location,
			u.name AS user_name,
			u.email AS user_email
		FROM bookings b
		JOIN courts c ON b.court_id = c.id
		JOIN users u ON b.user_id = u.id
		ORDER BY b.date DESC, b.created_at DESC
	`

	bookings := []BookingWithDetails{}
	if err := r.db.SelectContext(ctx, &bookings, query); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) CountNonCancelled(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM bookings WHERE status <> 'cancelled'`)
	return count, err
}

func (r *repository) SumRevenue(ctx context.Context) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, `SELECT COALESCE(SUM(total_amount), 0) FROM bookings WHERE status <> 'cancelled'`)
	return total, err
}

func (r *repository) CountActiveUsers(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(DISTINCT user_id) FROM bookings WHERE status <> 'cancelled'`)
	return count, err
}

func (r *repository) CountBookedSlotsBetween(ctx context.Context, fromDate, toDate string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM booking_slots WHERE date BETWEEN $1 AND $2`, fromDate, toDate)
	return count, err
}
