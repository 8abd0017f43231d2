package admin

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"courtslot/internal/booking"
)

var reportColumns = []string{
	"Booking ID", "Date", "Slots", "Court", "Sport", "Location",
	"User", "Email", "Amount", "Status", "Created At",
}

// WriteBookingsReport renders the booking ledger as an xlsx workbook.
func WriteBookingsReport(w io.Writer, bookings []booking.BookingWithDetails) error {
	f := excelize.NewFile()
	sheet := "Bookings"
	f.SetSheetName("Sheet1", sheet)

	for i, col := range reportColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, 1)
		endCell, _ := excelize.CoordinatesToCellName(len(reportColumns), 1)
		_ = f.SetCellStyle(sheet, startCell, endCell, style)
	}

	for i, b := range bookings {
		row := []interface{}{
			b.ID,
			b.Date,
			strings.Join(b.SlotStarts, ", "),
			b.CourtName,
			b.CourtType,
			b.CourtLocation,
			b.UserName,
			b.UserEmail,
			b.TotalAmount,
			b.Status,
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	return f.Write(w)
}
