package court

import (
	"errors"
	"net/http"
	"strconv"

	"courtslot/internal/api"
	"courtslot/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      List courts
// @Description  Lists courts, optionally filtered by sport type and status.
// @Tags         courts
// @Produce      json
// @Security     BearerAuth
// @Param        type query string false "Sport type"
// @Param        status query string false "Court status"
// @Success      200 {array} court.Court
// @Router       /courts [get]
func (h *Handler) ListCourts(c *gin.Context) {
	filter := Filter{
		Type:   c.Query("type"),
		Status: c.Query("status"),
	}

	courts, err := h.service.ListCourts(c.Request.Context(), filter)
	if err != nil {
		logger.Error("list courts failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch courts"})
		return
	}

	c.JSON(http.StatusOK, courts)
}

// @Summary      Create a court
// @Description  Admin-only: add a bookable court to the catalog.
// @Tags         admin,courts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body court.CreateCourtRequest true "Court payload"
// @Success      201 {object} court.Court
// @Failure      400 {object} api.ValidationErrorResponse
// @Router       /admin/courts [post]
func (h *Handler) CreateCourt(c *gin.Context) {
	var req CreateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{
			Error:   "validation failed",
			Details: api.ValidationDetails(err),
		})
		return
	}

	created, err := h.service.CreateCourt(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidHours) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "open/close times must be hour-aligned with open before close"})
			return
		}
		logger.Error("create court failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create court"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// @Summary      Update a court
// @Tags         admin,courts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        courtID path int true "Court ID"
// @Param        request body court.UpdateCourtRequest true "Patch"
// @Success      200 {object} court.Court
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/courts/{courtID} [put]
func (h *Handler) UpdateCourt(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("courtID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid court ID"})
		return
	}

	var req UpdateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{
			Error:   "validation failed",
			Details: api.ValidationDetails(err),
		})
		return
	}

	updated, err := h.service.UpdateCourt(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCourtNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Court not found"})
		case errors.Is(err, ErrInvalidHours):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "open/close times must be hour-aligned with open before close"})
		default:
			logger.Error("update court failed", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update court"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// @Summary      Set court status
// @Tags         admin,courts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        courtID path int true "Court ID"
// @Param        request body court.SetStatusRequest true "Status payload"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/courts/{courtID}/status [post]
func (h *Handler) SetStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("courtID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid court ID"})
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{
			Error:   "validation failed",
			Details: api.ValidationDetails(err),
		})
		return
	}

	if err := h.service.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, ErrCourtNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Court not found"})
			return
		}
		logger.Error("set court status failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Status updated"})
}
