package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinichub/middleware"
	"clinichub/models"
	"clinichub/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubNotifications marks everything read while one more notification arrives.
type stubNotifications struct {
	notification.NotificationService
	unread int64
}

func (s *stubNotifications) MarkAllRead(context.Context, string) (int64, error) {
	s.unread = 1
	return 2, nil
}

func (s *stubNotifications) UnreadCount(context.Context, string) (int64, error) {
	return s.unread, nil
}

func TestMarkAllReadReportsCurrentUnreadCount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewNotificationHandler(&stubNotifications{unread: 2}, 20)

	r := gin.New()
	r.PUT("/read-all", func(c *gin.Context) {
		c.Set(middleware.CtxUserID, "p1")
		c.Set(middleware.CtxRole, models.RolePatient)
	}, h.MarkAllReadHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/read-all", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Marked      int64 `json:"marked"`
			UnreadCount int64 `json:"unreadCount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body.Data.Marked)
	assert.EqualValues(t, 1, body.Data.UnreadCount)
}
