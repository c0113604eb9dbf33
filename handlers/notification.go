package handlers

import (
	"net/http"
	"strconv"

	"clinichub/services/notification"
	"clinichub/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the notification feed and its read state.
type NotificationHandler struct {
	Notifications notification.NotificationService
	// PollSeconds is the unread-count polling interval advertised to clients.
	PollSeconds int
}

func NewNotificationHandler(ns notification.NotificationService, pollSeconds int) *NotificationHandler {
	return &NotificationHandler{Notifications: ns, PollSeconds: pollSeconds}
}

// ListHandler handles GET /api/notifications?unread=true&limit=N.
func (h *NotificationHandler) ListHandler(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.JSONValidationError(c, "Please correct the highlighted fields", map[string]string{"limit": "limit must be a positive number"})
			return
		}
		limit = n
	}
	unreadOnly, _ := strconv.ParseBool(c.DefaultQuery("unread", "false"))

	list, err := h.Notifications.List(c.Request.Context(), actor(c).ID, unreadOnly, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// UnreadCountHandler handles GET /api/notifications/unread-count.
func (h *NotificationHandler) UnreadCountHandler(c *gin.Context) {
	n, err := h.Notifications.UnreadCount(c.Request.Context(), actor(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"unreadCount": n, "pollIntervalSeconds": h.PollSeconds})
}

// MarkReadHandler handles PUT /api/notifications/:id/read.
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	n, err := h.Notifications.MarkRead(c.Request.Context(), actor(c).ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"unreadCount": n})
}

// MarkAllReadHandler handles PUT /api/notifications/read-all.
func (h *NotificationHandler) MarkAllReadHandler(c *gin.Context) {
	ctx, userID := c.Request.Context(), actor(c).ID
	marked, err := h.Notifications.MarkAllRead(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	unread, err := h.Notifications.UnreadCount(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"marked": marked, "unreadCount": unread})
}

// DeleteHandler handles DELETE /api/notifications/:id.
func (h *NotificationHandler) DeleteHandler(c *gin.Context) {
	if err := h.Notifications.Delete(c.Request.Context(), actor(c).ID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Notification deleted"})
}
