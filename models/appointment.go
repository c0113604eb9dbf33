package models

import (
	"fmt"
	"time"
)

// AppointmentStatus is the server-side lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusBooked      AppointmentStatus = "booked"
	StatusUpcoming    AppointmentStatus = "upcoming"
	StatusCompleted   AppointmentStatus = "completed"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusRescheduled AppointmentStatus = "rescheduled"
)

// DateLayout and TimeLayout are the wire formats of appointment dates and slot times.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ActiveStatuses are the statuses that hold a doctor's slot.
var ActiveStatuses = []AppointmentStatus{StatusBooked, StatusUpcoming, StatusRescheduled}

var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusBooked:      {StatusUpcoming, StatusCancelled, StatusRescheduled, StatusCompleted},
	StatusUpcoming:    {StatusCancelled, StatusRescheduled, StatusCompleted},
	StatusRescheduled: {StatusUpcoming, StatusCancelled, StatusRescheduled, StatusCompleted},
}

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusBooked, StatusUpcoming, StatusCompleted, StatusCancelled, StatusRescheduled:
		return true
	}
	return false
}

// IsActive reports whether the appointment still occupies its slot.
func (s AppointmentStatus) IsActive() bool {
	for _, a := range ActiveStatuses {
		if a == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, n := range transitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// DoctorSnapshot is the denormalized doctor info stored on an appointment.
type DoctorSnapshot struct {
	Name       string  `bson:"name" json:"name"`
	Speciality string  `bson:"speciality" json:"speciality"`
	Image      string  `bson:"image,omitempty" json:"image,omitempty"`
	Fees       float64 `bson:"fees" json:"fees"`
}

// PatientSnapshot is the denormalized patient info stored on an appointment.
type PatientSnapshot struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"`
	Email string `bson:"email" json:"email"`
}

// ServiceSnapshot is the denormalized service info stored on an appointment.
type ServiceSnapshot struct {
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
}

// Appointment is a booked appointment between a patient and a doctor.
type Appointment struct {
	ID              string            `bson:"id" json:"id"`
	PatientID       string            `bson:"patientId" json:"patientId"`
	DoctorID        string            `bson:"doctorId" json:"doctorId"`
	ServiceID       string            `bson:"serviceId,omitempty" json:"serviceId,omitempty"`
	Date            string            `bson:"date" json:"date"`
	Time            string            `bson:"time" json:"time"`
	StartAt         time.Time         `bson:"startAt" json:"startAt"`
	Status          AppointmentStatus `bson:"status" json:"status"`
	Active          bool              `bson:"active" json:"-"`
	Reason          string            `bson:"reason,omitempty" json:"reason,omitempty"`
	CancelReason    string            `bson:"cancelReason,omitempty" json:"cancelReason,omitempty"`
	CancelledBy     Role              `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	PreviousDate    string            `bson:"previousDate,omitempty" json:"previousDate,omitempty"`
	PreviousTime    string            `bson:"previousTime,omitempty" json:"previousTime,omitempty"`
	RescheduleCount int               `bson:"rescheduleCount" json:"rescheduleCount"`
	Amount          float64           `bson:"amount" json:"amount"`
	Reviewed        bool              `bson:"reviewed" json:"reviewed"`
	HasReport       bool              `bson:"hasReport" json:"hasReport"`
	ChannelID       string            `bson:"channelId,omitempty" json:"channelId,omitempty"`
	Doctor          DoctorSnapshot    `bson:"doctor" json:"doctor"`
	Patient         PatientSnapshot   `bson:"patient" json:"patient"`
	Service         ServiceSnapshot   `bson:"service,omitempty" json:"service,omitempty"`
	CreatedAt       time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// InvolvesUser reports whether userID is the patient or doctor of the appointment.
func (a Appointment) InvolvesUser(userID string) bool {
	return a.PatientID == userID || a.DoctorID == userID
}

// ParseSlot combines a date and a slot time in loc.
func ParseSlot(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, clock, err)
	}
	return t, nil
}

// BookAppointmentRequest is the patient booking payload.
type BookAppointmentRequest struct {
	DoctorID  string `json:"doctorId" binding:"required"`
	ServiceID string `json:"serviceId"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Reason    string `json:"reason"`
}

// CancelAppointmentRequest is the cancel payload shared by all roles.
type CancelAppointmentRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
	Reason        string `json:"reason"`
}

// RescheduleAppointmentRequest moves an appointment to a new slot.
type RescheduleAppointmentRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
}

// AppointmentActionRequest identifies the target of a one-shot action.
type AppointmentActionRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
}

// AppointmentFilter narrows appointment queries. Zero values match everything.
type AppointmentFilter struct {
	PatientID   string
	DoctorID    string
	Statuses    []AppointmentStatus
	NewestFirst bool
	Limit       int
}

// AppointmentUpdate is the set of fields written by a status transition.
type AppointmentUpdate struct {
	Status        AppointmentStatus
	Date          string
	Time          string
	StartAt       time.Time
	CancelReason  string
	CancelledBy   Role
	PreviousDate  string
	PreviousTime  string
	IncReschedule bool
	UpdatedAt     time.Time
}
