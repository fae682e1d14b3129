package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	notificationRepo "carenow/database/repository/notification"
	"carenow/utils"
)

// NotificationHandler lists and acknowledges in-app partner notifications.
type NotificationHandler struct {
	Repo   notificationRepo.NotificationRepository
	Logger *zap.Logger
}

func NewNotificationHandler(repo notificationRepo.NotificationRepository, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{Repo: repo, Logger: logger}
}

func (h *NotificationHandler) RecentNotificationsHandler(c *gin.Context) {
	limit := int64(20)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 || parsed > 100 {
			utils.JSONError(c, http.StatusBadRequest, "limit must be between 1 and 100", "")
			return
		}
		limit = parsed
	}

	items, err := h.Repo.Recent(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		h.Logger.Error("notification list failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load notifications", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items})
}

func (h *NotificationHandler) UnreadCountHandler(c *gin.Context) {
	count, err := h.Repo.UnreadCount(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Logger.Error("unread count failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to count notifications", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	if err := h.Repo.MarkRead(c.Request.Context(), c.Param("id"), c.Param("notificationId")); err != nil {
		h.Logger.Error("mark read failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to mark notification read", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}
