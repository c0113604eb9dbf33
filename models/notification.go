package models

import "time"

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationBooked      NotificationType = "booked"
	NotificationCancelled   NotificationType = "cancelled"
	NotificationRescheduled NotificationType = "rescheduled"
	NotificationCompleted   NotificationType = "completed"
	NotificationReminder    NotificationType = "reminder"
)

// Notification informs a user of a change to one of their appointments.
type Notification struct {
	ID            string           `bson:"id" json:"id"`
	UserID        string           `bson:"userId" json:"userId"`
	AppointmentID string           `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`
	Type          NotificationType `bson:"type" json:"type"`
	Title         string           `bson:"title" json:"title"`
	Message       string           `bson:"message" json:"message"`
	Data          map[string]any   `bson:"data,omitempty" json:"data,omitempty"`
	Read          bool             `bson:"read" json:"read"`
	ReadAt        *time.Time       `bson:"readAt,omitempty" json:"readAt,omitempty"`
	CreatedAt     time.Time        `bson:"createdAt" json:"createdAt"`
}

// NotificationList is the polled notification feed.
type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int64          `json:"unreadCount"`
}

// ReminderPayload is the body of a scheduled appointment reminder.
// Date and Time pin the slot the reminder was scheduled for.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}
