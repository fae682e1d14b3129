package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carenow/services/earnings"
	"carenow/utils"
)

// EarningsHandler exposes the partner earnings summary.
type EarningsHandler struct {
	Earnings earnings.EarningsService
	Logger   *zap.Logger
}

func NewEarningsHandler(svc earnings.EarningsService, logger *zap.Logger) *EarningsHandler {
	return &EarningsHandler{Earnings: svc, Logger: logger}
}

func (h *EarningsHandler) GetEarningsHandler(c *gin.Context) {
	e, err := h.Earnings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Logger.Error("earnings lookup failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load earnings", err.Error())
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EarningsHandler) RecalculateWindowTotalsHandler(c *gin.Context) {
	err := h.Earnings.RecalculateWindowTotals(c.Request.Context(), c.Param("id"))
	if errors.Is(err, earnings.ErrWindowTotalsUnsupported) {
		utils.JSONError(c, http.StatusNotImplemented, "Window totals recalculation is not supported", err.Error())
		return
	}
	if err != nil {
		h.Logger.Error("window totals recalculation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Recalculation failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recalculated"})
}
