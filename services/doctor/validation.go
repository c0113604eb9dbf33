package doctor

import (
	"strings"
	"time"

	"clinichub/models"
	"clinichub/services/user"
)

func validateProfile(in models.DoctorInput, verr *models.ValidationError) {
	if strings.TrimSpace(in.Speciality) == "" {
		verr.Add("speciality", "speciality is required")
	}
	if in.Experience < 0 {
		verr.Add("experience", "experience cannot be negative")
	}
	if in.Fees < 0 {
		verr.Add("fees", "fees cannot be negative")
	}
	if in.SlotMinutes < 0 || in.SlotMinutes > 240 {
		verr.Add("slotMinutes", "slot length must be between 1 and 240 minutes")
	}
	start, errStart := parseClock(in.WorkStart, models.DefaultWorkStart)
	if errStart != nil {
		verr.Add("workStart", "use the HH:MM format")
	}
	end, errEnd := parseClock(in.WorkEnd, models.DefaultWorkEnd)
	if errEnd != nil {
		verr.Add("workEnd", "use the HH:MM format")
	}
	if errStart == nil && errEnd == nil && !end.After(start) {
		verr.Add("workEnd", "working hours must end after they start")
	}
}

func parseClock(v, def string) (time.Time, error) {
	if v == "" {
		v = def
	}
	return time.Parse(models.TimeLayout, v)
}

func validateCreate(in models.DoctorInput) error {
	verr := &models.ValidationError{}
	if err := user.ValidateAccount(in.Name, in.Email, in.Phone, in.Password); err != nil {
		if fe, ok := err.(*models.ValidationError); ok {
			for k, v := range fe.Fields {
				verr.Add(k, v)
			}
		}
	}
	validateProfile(in, verr)
	return verr.OrNil()
}

func validateUpdate(in models.DoctorInput) error {
	verr := &models.ValidationError{}
	if strings.TrimSpace(in.Name) == "" {
		verr.Add("name", "name is required")
	}
	if in.Phone != "" && !user.ValidPhone(in.Phone) {
		verr.Add("phone", "enter a valid phone number")
	}
	validateProfile(in, verr)
	return verr.OrNil()
}
