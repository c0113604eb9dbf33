package notification

import (
	"context"
	"fmt"
	"time"

	"clinichub/models"
	"clinichub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const pushTimeout = 10 * time.Second

func (s *DefaultNotificationService) Notify(ctx context.Context, n models.Notification) (*models.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	n.Read = false
	if err := s.Repo.Create(ctx, &n); err != nil {
		return nil, fmt.Errorf("failed to store notification: %w", err)
	}
	s.invalidate(ctx, n.UserID)
	s.push(n)
	return &n, nil
}

func (s *DefaultNotificationService) NotifyAppointment(ctx context.Context, userID string, appt *models.Appointment, kind models.NotificationType) error {
	title, body := appointmentMessage(kind, appt, userID == appt.DoctorID)
	_, err := s.Notify(ctx, models.Notification{
		UserID:        userID,
		AppointmentID: appt.ID,
		Type:          kind,
		Title:         title,
		Message:       body,
		Data: map[string]any{
			"status": string(appt.Status),
			"date":   appt.Date,
			"time":   appt.Time,
		},
	})
	return err
}

// push delivers n in the background. Failures are logged only.
func (s *DefaultNotificationService) push(n models.Notification) {
	if s.Pusher == nil || s.Users == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()
		logger := utils.GetLogger().With(zap.String("userID", n.UserID), zap.String("notificationID", n.ID))

		usr, err := s.Users.GetByID(ctx, n.UserID)
		if err != nil {
			logger.Warn("Push skipped: recipient lookup failed", zap.Error(err))
			return
		}
		if usr.FCMToken == "" {
			return
		}
		data := map[string]string{
			"notificationId": n.ID,
			"appointmentId":  n.AppointmentID,
			"type":           string(n.Type),
		}
		if err := s.Pusher.Push(ctx, usr.FCMToken, n.Title, n.Message, data); err != nil {
			logger.Warn("Push delivery failed", zap.Error(err))
		}
	}()
}

func (s *DefaultNotificationService) invalidate(ctx context.Context, userID string) {
	if s.Unread == nil {
		return
	}
	if err := s.Unread.Invalidate(ctx, userID); err != nil {
		utils.GetLogger().Warn("Failed to invalidate unread count", zap.String("userID", userID), zap.Error(err))
	}
}

func (s *DefaultNotificationService) List(ctx context.Context, userID string, unreadOnly bool, limit int) (*models.NotificationList, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	list, err := s.Repo.ListByUser(ctx, userID, unreadOnly, limit)
	if err != nil {
		return nil, err
	}
	count, err := s.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.NotificationList{Notifications: list, UnreadCount: count}, nil
}

// UnreadCount serves the cached count, reseeding it from the database on a miss.
// Writers invalidate after touching the database, which voids any reseed in flight.
func (s *DefaultNotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if s.Unread == nil {
		return s.countUnread(ctx, userID)
	}
	logger := utils.GetLogger().With(zap.String("userID", userID))

	n, ok, err := s.Unread.Get(ctx, userID)
	if err != nil {
		logger.Warn("Unread cache unavailable", zap.Error(err))
		return s.countUnread(ctx, userID)
	}
	if ok {
		return n, nil
	}

	claim, claimed, err := s.Unread.Claim(ctx, userID)
	if err != nil {
		logger.Warn("Failed to claim unread count reseed", zap.Error(err))
	}
	n, err = s.countUnread(ctx, userID)
	if err != nil {
		return 0, err
	}
	if claimed {
		if err := s.Unread.Fill(ctx, userID, claim, n); err != nil {
			logger.Warn("Failed to reseed unread count", zap.Error(err))
		}
	}
	return n, nil
}

func (s *DefaultNotificationService) countUnread(ctx context.Context, userID string) (int64, error) {
	n, err := s.Repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return n, nil
}

func (s *DefaultNotificationService) owned(ctx context.Context, userID, id string) error {
	n, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		// Other users' notifications are reported as missing.
		return fmt.Errorf("notification %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// MarkRead is idempotent: re-reading leaves the count unchanged.
func (s *DefaultNotificationService) MarkRead(ctx context.Context, userID, id string) (int64, error) {
	if err := s.owned(ctx, userID, id); err != nil {
		return 0, err
	}
	changed, err := s.Repo.MarkRead(ctx, id)
	if err != nil {
		return 0, err
	}
	if changed {
		s.invalidate(ctx, userID)
	}
	return s.UnreadCount(ctx, userID)
}

func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	n, err := s.Repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.invalidate(ctx, userID)
	}
	return n, nil
}

func (s *DefaultNotificationService) Delete(ctx context.Context, userID, id string) error {
	if err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}
