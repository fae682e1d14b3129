package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carenow/services/availability"
	"carenow/utils"
)

// AvailabilityHandler manages a partner's availability settings.
type AvailabilityHandler struct {
	Availability availability.AvailabilityService
	Dashboard    invalidator
	Logger       *zap.Logger
}

// invalidator is the slice of the dashboard service the availability and
// earnings handlers need: dropping a stale snapshot after a write.
type invalidator interface {
	Invalidate(ctx context.Context, partnerID string)
}

func NewAvailabilityHandler(svc availability.AvailabilityService, dash invalidator, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Availability: svc, Dashboard: dash, Logger: logger}
}

func (h *AvailabilityHandler) respondError(c *gin.Context, err error) {
	var hoursErr *availability.WorkingHoursError
	switch {
	case errors.As(err, &hoursErr):
		utils.JSONError(c, http.StatusBadRequest, "Invalid working hours", err.Error())
		return
	case errors.Is(err, availability.ErrPastUnavailability),
		errors.Is(err, availability.ErrInvalidBlockedDate):
		utils.JSONError(c, http.StatusBadRequest, "Invalid availability input", err.Error())
		return
	}
	h.Logger.Error("availability operation failed", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "Availability operation failed", err.Error())
}

func (h *AvailabilityHandler) GetAvailabilityHandler(c *gin.Context) {
	a, err := h.Availability.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AvailabilityHandler) SetAvailableHandler(c *gin.Context) {
	var input struct {
		IsAvailable *bool  `json:"isAvailable" binding:"required"`
		Reason      string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "isAvailable is required", err.Error())
		return
	}
	partnerID := c.Param("id")
	if err := h.Availability.SetAvailable(c.Request.Context(), partnerID, *input.IsAvailable, input.Reason); err != nil {
		h.respondError(c, err)
		return
	}
	h.Dashboard.Invalidate(c.Request.Context(), partnerID)
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *AvailabilityHandler) SetOnlineHandler(c *gin.Context) {
	var input struct {
		IsOnline *bool `json:"isOnline" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "isOnline is required", err.Error())
		return
	}
	if err := h.Availability.SetOnline(c.Request.Context(), c.Param("id"), *input.IsOnline); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *AvailabilityHandler) SetWorkingHoursHandler(c *gin.Context) {
	var input struct {
		WorkingHours map[string][]string `json:"workingHours" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "workingHours is required", err.Error())
		return
	}
	partnerID := c.Param("id")
	if err := h.Availability.SetWorkingHours(c.Request.Context(), partnerID, input.WorkingHours); err != nil {
		h.respondError(c, err)
		return
	}
	h.Dashboard.Invalidate(c.Request.Context(), partnerID)
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

type datesInput struct {
	Dates []string `json:"dates" binding:"required,min=1"`
}

func (h *AvailabilityHandler) BlockDatesHandler(c *gin.Context) {
	var input datesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "dates is required", err.Error())
		return
	}
	if err := h.Availability.BlockDates(c.Request.Context(), c.Param("id"), input.Dates); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *AvailabilityHandler) UnblockDatesHandler(c *gin.Context) {
	var input datesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "dates is required", err.Error())
		return
	}
	if err := h.Availability.UnblockDates(c.Request.Context(), c.Param("id"), input.Dates); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *AvailabilityHandler) SetTemporaryUnavailabilityHandler(c *gin.Context) {
	var input struct {
		Until  time.Time `json:"until" binding:"required"`
		Reason string    `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "until is required", err.Error())
		return
	}
	partnerID := c.Param("id")
	if err := h.Availability.SetTemporaryUnavailability(c.Request.Context(), partnerID, input.Until, input.Reason); err != nil {
		h.respondError(c, err)
		return
	}
	h.Dashboard.Invalidate(c.Request.Context(), partnerID)
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *AvailabilityHandler) ClearTemporaryUnavailabilityHandler(c *gin.Context) {
	partnerID := c.Param("id")
	if err := h.Availability.ClearTemporaryUnavailability(c.Request.Context(), partnerID); err != nil {
		h.respondError(c, err)
		return
	}
	h.Dashboard.Invalidate(c.Request.Context(), partnerID)
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
