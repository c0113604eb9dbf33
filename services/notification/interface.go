package notification

import (
	"context"

	notificationRepo "clinichub/database/repository/notification"
	userRepo "clinichub/database/repository/user"
	"clinichub/models"
)

// NotificationService stores per-user notifications and delivers push copies.
type NotificationService interface {
	// Notify stores n and pushes it to the recipient's device when possible.
	Notify(ctx context.Context, n models.Notification) (*models.Notification, error)
	// NotifyAppointment builds and sends the notification for an appointment event.
	NotifyAppointment(ctx context.Context, userID string, appt *models.Appointment, kind models.NotificationType) error

	List(ctx context.Context, userID string, unreadOnly bool, limit int) (*models.NotificationList, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	// MarkRead marks one notification read and returns the new unread count.
	MarkRead(ctx context.Context, userID, id string) (int64, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo   notificationRepo.NotificationRepository
	Users  userRepo.UserRepository
	Unread UnreadCache
	Pusher Pusher
}
