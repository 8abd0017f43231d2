package admin

import (
	"fmt"
	"net/http"
	"time"

	"courtslot/internal/api"
	"courtslot/internal/booking"
	"courtslot/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service        Service
	bookingService booking.Service
}

func NewHandler(service Service, bookingService booking.Service) *Handler {
	return &Handler{
		service:        service,
		bookingService: bookingService,
	}
}

// @Summary      Dashboard stats
// @Description  Aggregates over the booking ledger and court catalog.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} admin.Stats
// @Router       /admin/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		logger.Error("stats computation failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// @Summary      Export bookings as xlsx
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200 {string} binary
// @Router       /admin/bookings/export [get]
func (h *Handler) ExportBookings(c *gin.Context) {
	bookings, err := h.bookingService.ListBookingsWithDetails(c.Request.Context())
	if err != nil {
		logger.Error("export listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := WriteBookingsReport(c.Writer, bookings); err != nil {
		logger.Error("export write failed", "error", err)
	}
}
