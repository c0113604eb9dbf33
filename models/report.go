package models

import "time"

// Prescription is a single medication line of a report.
type Prescription struct {
	Medicine     string `bson:"medicine" json:"medicine"`
	Dosage       string `bson:"dosage" json:"dosage"`
	Frequency    string `bson:"frequency" json:"frequency"`
	DurationDays int    `bson:"durationDays" json:"durationDays"`
}

// Report is the medical report a doctor writes for a completed appointment.
type Report struct {
	ID              string         `bson:"id" json:"id"`
	AppointmentID   string         `bson:"appointmentId" json:"appointmentId"`
	PatientID       string         `bson:"patientId" json:"patientId"`
	DoctorID        string         `bson:"doctorId" json:"doctorId"`
	PatientName     string         `bson:"patientName" json:"patientName"`
	DoctorName      string         `bson:"doctorName" json:"doctorName"`
	Speciality      string         `bson:"speciality" json:"speciality"`
	AppointmentDate string         `bson:"appointmentDate" json:"appointmentDate"`
	AppointmentTime string         `bson:"appointmentTime" json:"appointmentTime"`
	Diagnosis       string         `bson:"diagnosis" json:"diagnosis"`
	Symptoms        []string       `bson:"symptoms" json:"symptoms"`
	Prescriptions   []Prescription `bson:"prescriptions" json:"prescriptions"`
	Tests           []string       `bson:"tests" json:"tests"`
	Notes           string         `bson:"notes" json:"notes"`
	FollowUpDate    string         `bson:"followUpDate,omitempty" json:"followUpDate,omitempty"`
	CreatedAt       time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// ReportInput is the doctor's report payload.
type ReportInput struct {
	AppointmentID string         `json:"appointmentId"`
	Diagnosis     string         `json:"diagnosis"`
	Symptoms      []string       `json:"symptoms"`
	Prescriptions []Prescription `json:"prescriptions"`
	Tests         []string       `json:"tests"`
	Notes         string         `json:"notes"`
	FollowUpDate  string         `json:"followUpDate"`
}
