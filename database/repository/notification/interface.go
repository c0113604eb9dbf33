package notificationRepo

import (
	"context"

	"clinichub/models"
)

// NotificationRepository defines methods for per-user notification storage.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	// ListByUser returns the newest notifications first, only unread ones when unreadOnly is set.
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	// MarkRead flags a notification read. changed is false when it already was.
	MarkRead(ctx context.Context, id string) (changed bool, err error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id string) error
}
