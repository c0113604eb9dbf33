package models

// AdminDashboard summarizes the clinic for the admin dashboard.
type AdminDashboard struct {
	Doctors        int64                       `json:"doctors"`
	Patients       int64                       `json:"patients"`
	Appointments   int64                       `json:"appointments"`
	ByStatus       map[AppointmentStatus]int64 `json:"byStatus"`
	LatestBookings []Appointment               `json:"latestBookings"`
}

// DoctorDashboard summarizes a doctor's practice.
type DoctorDashboard struct {
	Earnings       float64                     `json:"earnings"`
	Patients       int64                       `json:"patients"`
	Appointments   int64                       `json:"appointments"`
	ByStatus       map[AppointmentStatus]int64 `json:"byStatus"`
	LatestBookings []Appointment               `json:"latestBookings"`
}
