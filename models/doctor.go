package models

import "time"

// Doctor is a practitioner profile. ID equals the doctor's login user ID.
type Doctor struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	Phone       string    `bson:"phone" json:"phone"`
	Speciality  string    `bson:"speciality" json:"speciality"`
	Degree      string    `bson:"degree" json:"degree"`
	Experience  int       `bson:"experience" json:"experience"`
	About       string    `bson:"about" json:"about"`
	Fees        float64   `bson:"fees" json:"fees"`
	Address     string    `bson:"address" json:"address"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	Available   bool      `bson:"available" json:"available"`
	ServiceIDs  []string  `bson:"serviceIds" json:"serviceIds"`
	SlotMinutes int       `bson:"slotMinutes" json:"slotMinutes"`
	WorkStart   string    `bson:"workStart" json:"workStart"`
	WorkEnd     string    `bson:"workEnd" json:"workEnd"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// OffersService reports whether serviceID is among the doctor's services.
// A doctor with no explicit services accepts any.
func (d Doctor) OffersService(serviceID string) bool {
	if len(d.ServiceIDs) == 0 {
		return true
	}
	for _, id := range d.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// DoctorInput is the admin payload for creating or updating a doctor.
type DoctorInput struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Password    string   `json:"password,omitempty"`
	Speciality  string   `json:"speciality"`
	Degree      string   `json:"degree"`
	Experience  int      `json:"experience"`
	About       string   `json:"about"`
	Fees        float64  `json:"fees"`
	Address     string   `json:"address"`
	Available   *bool    `json:"available,omitempty"`
	ServiceIDs  []string `json:"serviceIds"`
	SlotMinutes int      `json:"slotMinutes"`
	WorkStart   string   `json:"workStart"`
	WorkEnd     string   `json:"workEnd"`
}

// DoctorFilter narrows doctor listings.
type DoctorFilter struct {
	Speciality    string
	OnlyAvailable bool
}

// DaySlots lists the free and taken slot start times of a doctor on a date.
type DaySlots struct {
	DoctorID string   `json:"doctorId"`
	Date     string   `json:"date"`
	Free     []string `json:"free"`
	Taken    []string `json:"taken"`
}

// Working-day defaults applied when a doctor profile leaves them unset.
const (
	DefaultSlotMinutes = 30
	DefaultWorkStart   = "09:00"
	DefaultWorkEnd     = "17:00"
)

// SlotTimes returns the start time of every slot in the doctor's working day.
func (d Doctor) SlotTimes() []string {
	step := d.SlotMinutes
	if step <= 0 {
		step = DefaultSlotMinutes
	}
	start, err := time.Parse(TimeLayout, orDefault(d.WorkStart, DefaultWorkStart))
	if err != nil {
		return nil
	}
	end, err := time.Parse(TimeLayout, orDefault(d.WorkEnd, DefaultWorkEnd))
	if err != nil {
		return nil
	}

	var slots []string
	for t := start; !t.Add(time.Duration(step) * time.Minute).After(end); t = t.Add(time.Duration(step) * time.Minute) {
		slots = append(slots, t.Format(TimeLayout))
	}
	return slots
}

// HasSlot reports whether clock is a slot boundary inside working hours.
func (d Doctor) HasSlot(clock string) bool {
	for _, s := range d.SlotTimes() {
		if s == clock {
			return true
		}
	}
	return false
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
