package handlers

import "clinichub/middleware"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Auth          middleware.Authenticator
	MaxRequests   int
	AllowOrigins  []string
	Users         *AuthHandler
	Doctors       *DoctorHandler
	Services      *ServiceHandler
	Appointments  *AppointmentHandler
	Reviews       *ReviewHandler
	Notifications *NotificationHandler
	Reports       *ReportHandler
	Chat          *ChatHandler
}
