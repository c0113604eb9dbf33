package models

import "time"

// Review is a patient's rating of a completed appointment.
type Review struct {
	ID            string    `bson:"id" json:"id"`
	AppointmentID string    `bson:"appointmentId" json:"appointmentId"`
	PatientID     string    `bson:"patientId" json:"patientId"`
	PatientName   string    `bson:"patientName" json:"patientName"`
	DoctorID      string    `bson:"doctorId" json:"doctorId"`
	Rating        int       `bson:"rating" json:"rating"`
	Comment       string    `bson:"comment" json:"comment"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// ReviewRequest is the review submission payload.
type ReviewRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
	Rating        int    `json:"rating" binding:"required"`
	Comment       string `json:"comment"`
}

// DoctorReviews is a doctor's reviews with aggregate rating.
type DoctorReviews struct {
	DoctorID string   `json:"doctorId"`
	Average  float64  `json:"average"`
	Count    int64    `json:"count"`
	Reviews  []Review `json:"reviews"`
}
