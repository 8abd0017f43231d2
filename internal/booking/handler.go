package booking

import (
	"errors"
	"net/http"
	"strconv"

	"courtslot/internal/api"
	"courtslot/internal/auth"
	"courtslot/internal/court"
	"courtslot/internal/logger"
	"courtslot/internal/metrics"
	"courtslot/internal/user"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Create a booking
// @Description  Books one or more hourly slots on a court for a date.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body booking.CreateBookingRequest true "Booking payload"
// @Success      201 {object} booking.Booking
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      422 {object} api.ErrorResponse
// @Router       /bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{
			Error:   "validation failed",
			Details: api.ValidationDetails(err),
		})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		var conflict *SlotConflictError
		switch {
		case errors.As(err, &conflict):
			metrics.RecordSlotConflict()
			metrics.RecordBooking("conflict")
			c.JSON(http.StatusConflict, gin.H{
				"error":             "some slots are already booked",
				"conflicting_slots": conflict.Slots,
			})
		case errors.Is(err, ErrPastDate):
			metrics.RecordBooking("rejected")
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "Cannot book a past date"})
		case errors.Is(err, ErrInvalidDate):
			metrics.RecordBooking("rejected")
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid date, expected YYYY-MM-DD"})
		case errors.Is(err, ErrInvalidSlot):
			metrics.RecordBooking("rejected")
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Requested slots are not on the court's hourly grid"})
		case errors.Is(err, ErrCourtUnavailable):
			metrics.RecordBooking("rejected")
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "Court is not available for booking"})
		case errors.Is(err, court.ErrCourtNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Court not found"})
		default:
			logger.Error("create booking failed", "error", err)
			metrics.RecordBooking("error")
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create booking"})
		}
		return
	}

	metrics.RecordBooking("confirmed")
	c.JSON(http.StatusCreated, created)
}

// @Summary      Cancel a booking
// @Description  Owners may cancel their own confirmed bookings before the
// @Description  booked date passes; admins may cancel any confirmed booking.
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        bookingID path int true "Booking ID"
// @Success      200 {object} api.MessageResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      422 {object} api.ErrorResponse
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) CancelBooking(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	role, _ := auth.GetUserRole(c)
	err = h.service.CancelBooking(c.Request.Context(), bookingID, userID, role == user.RoleAdmin)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You can only cancel your own bookings"})
		case errors.Is(err, ErrNotCancellable):
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "Booking is not cancellable"})
		case errors.Is(err, ErrCancellationWindow):
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "Booking date has already passed"})
		default:
			logger.Error("cancel booking failed", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel booking"})
		}
		return
	}

	metrics.RecordBookingCancellation()
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking cancelled successfully"})
}

// @Summary      Court availability for a date
// @Tags         courts
// @Produce      json
// @Security     BearerAuth
// @Param        courtID path int true "Court ID"
// @Param        date query string true "Date (YYYY-MM-DD)"
// @Success      200 {object} booking.Availability
// @Failure      404 {object} api.ErrorResponse
// @Router       /courts/{courtID}/availability [get]
func (h *Handler) GetAvailability(c *gin.Context) {
	courtID, err := strconv.Atoi(c.Param("courtID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid court ID"})
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "date query parameter required"})
		return
	}

	availability, err := h.service.GetAvailability(c.Request.Context(), courtID, date)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid date, expected YYYY-MM-DD"})
		case errors.Is(err, court.ErrCourtNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Court not found"})
		default:
			logger.Error("availability lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch availability"})
		}
		return
	}

	c.JSON(http.StatusOK, availability)
}

// @Summary      List my bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} booking.Booking
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	bookings, err := h.service.GetUserBookings(c.Request.Context(), userID)
	if err != nil {
		logger.Error("list bookings failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// @Summary      List all bookings with court and user details
// @Tags         admin,bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} booking.BookingWithDetails
// @Router       /admin/bookings [get]
func (h *Handler) ListAllBookings(c *gin.Context) {
	bookings, err := h.service.ListBookingsWithDetails(c.Request.Context())
	if err != nil {
		logger.Error("list all bookings failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}
