package admin

import (
	"bytes"
	"testing"
	"time"

	"courtslot/internal/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteBookingsReport(t *testing.T) {
	bookings := []booking.BookingWithDetails{
		{
			Booking: booking.Booking{
				ID: 10, UserID: 7, CourtID: 1, Date: "2025-06-02",
				SlotStarts: []string{"18:00", "19:00"}, TotalAmount: 400,
				Status: booking.StatusConfirmed, CreatedAt: time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
			},
			CourtName:     "Main Basketball Court",
			CourtType:     "basketball",
			CourtLocation: "Sports Complex A",
			UserName:      "Asha",
			UserEmail:     "asha@campus.edu",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBookingsReport(&buf, bookings))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Bookings", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Booking ID", header)

	date, err := f.GetCellValue("Bookings", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", date)

	slots, err := f.GetCellValue("Bookings", "C2")
	require.NoError(t, err)
	assert.Equal(t, "18:00, 19:00", slots)

	email, err := f.GetCellValue("Bookings", "H2")
	require.NoError(t, err)
	assert.Equal(t, "asha@campus.edu", email)

	amount, err := f.GetCellValue("Bookings", "I2")
	require.NoError(t, err)
	assert.Equal(t, "400", amount)
}

func TestWriteBookingsReport_EmptyLedger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBookingsReport(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Bookings")
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
