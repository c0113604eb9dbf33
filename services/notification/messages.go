package notification

import (
	"fmt"

	"clinichub/models"
)

// appointmentMessage returns the title and body for an appointment event as
// seen by the recipient.
func appointmentMessage(kind models.NotificationType, appt *models.Appointment, recipientIsDoctor bool) (string, string) {
	with := "Dr. " + appt.Doctor.Name
	if recipientIsDoctor {
		with = appt.Patient.Name
	}
	when := appt.Date + " at " + appt.Time

	switch kind {
	case models.NotificationBooked:
		return "Appointment booked", fmt.Sprintf("Your appointment with %s is booked for %s.", with, when)
	case models.NotificationCancelled:
		msg := fmt.Sprintf("Your appointment with %s on %s was cancelled.", with, when)
		if appt.CancelReason != "" {
			msg += " Reason: " + appt.CancelReason
		}
		return "Appointment cancelled", msg
	case models.NotificationRescheduled:
		return "Appointment rescheduled", fmt.Sprintf("Your appointment with %s was moved from %s %s to %s.",
			with, appt.PreviousDate, appt.PreviousTime, when)
	case models.NotificationCompleted:
		return "Appointment completed", fmt.Sprintf("Your appointment with %s is complete.", with)
	case models.NotificationReminder:
		return "Upcoming appointment", fmt.Sprintf("Reminder: you see %s on %s.", with, when)
	}
	return "Appointment update", fmt.Sprintf("Your appointment with %s on %s was updated.", with, when)
}
