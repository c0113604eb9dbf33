package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	appointmentRepo "clinichub/database/repository/appointment"
	"clinichub/models"
)

// Appointments is an in-memory appointmentRepo.AppointmentRepository that
// enforces the same active-slot uniqueness as the Mongo partial index.
type Appointments struct {
	mu   sync.Mutex
	byID map[string]models.Appointment
}

func NewAppointments() *Appointments {
	return &Appointments{byID: map[string]models.Appointment{}}
}

func (r *Appointments) slotHeld(doctorID, date, clock, exceptID string) bool {
	for _, a := range r.byID {
		if a.ID != exceptID && a.Active && a.DoctorID == doctorID && a.Date == date && a.Time == clock {
			return true
		}
	}
	return false
}

func (r *Appointments) Create(_ context.Context, a *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.Active = a.Status.IsActive()
	if a.Active && r.slotHeld(a.DoctorID, a.Date, a.Time, "") {
		return models.ErrSlotTaken
	}
	r.byID[a.ID] = *a
	return nil
}

// Put stores a as-is, bypassing slot checks. Tests use it to seed state.
func (r *Appointments) Put(a models.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.Active = a.Status.IsActive()
	r.byID[a.ID] = a
}

func (r *Appointments) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("appointment %s: %w", id, models.ErrNotFound)
	}
	return &a, nil
}

func matches(a models.Appointment, f models.AppointmentFilter) bool {
	if f.PatientID != "" && a.PatientID != f.PatientID {
		return false
	}
	if f.DoctorID != "" && a.DoctorID != f.DoctorID {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if s == a.Status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (r *Appointments) Find(_ context.Context, f models.AppointmentFilter) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range r.byID {
		if matches(a, f) {
			out = append(out, a)
		}
	}
	if f.NewestFirst {
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *Appointments) ApplyTransition(_ context.Context, id string, from models.AppointmentStatus, upd models.AppointmentUpdate) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok || a.Status != from {
		return nil, models.ErrConflict
	}
	if upd.Date != "" {
		if upd.Status.IsActive() && r.slotHeld(a.DoctorID, upd.Date, upd.Time, id) {
			return nil, models.ErrSlotTaken
		}
		a.Date, a.Time, a.StartAt = upd.Date, upd.Time, upd.StartAt
	}
	a.Status = upd.Status
	a.Active = upd.Status.IsActive()
	a.UpdatedAt = upd.UpdatedAt
	if upd.CancelReason != "" {
		a.CancelReason = upd.CancelReason
	}
	if upd.CancelledBy != "" {
		a.CancelledBy = upd.CancelledBy
	}
	if upd.PreviousDate != "" {
		a.PreviousDate, a.PreviousTime = upd.PreviousDate, upd.PreviousTime
	}
	if upd.IncReschedule {
		a.RescheduleCount++
	}
	r.byID[id] = a
	return &a, nil
}

func (r *Appointments) PromoteDue(_ context.Context, deadline, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, a := range r.byID {
		if (a.Status == models.StatusBooked || a.Status == models.StatusRescheduled) && !a.StartAt.After(deadline) {
			a.Status = models.StatusUpcoming
			a.UpdatedAt = now
			r.byID[id] = a
			n++
		}
	}
	return n, nil
}

func (r *Appointments) TakenSlots(_ context.Context, doctorID, date string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []string{}
	for _, a := range r.byID {
		if a.Active && a.DoctorID == doctorID && a.Date == date {
			out = append(out, a.Time)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *Appointments) CountActiveForDoctor(_ context.Context, doctorID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.byID {
		if a.Active && a.DoctorID == doctorID {
			n++
		}
	}
	return n, nil
}

func (r *Appointments) set(id string, fn func(a *models.Appointment)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return models.ErrNotFound
	}
	fn(&a)
	r.byID[id] = a
	return nil
}

func (r *Appointments) SetChannelID(_ context.Context, id, channelID string) error {
	return r.set(id, func(a *models.Appointment) { a.ChannelID = channelID })
}

func (r *Appointments) MarkReviewed(_ context.Context, id string) error {
	return r.set(id, func(a *models.Appointment) { a.Reviewed = true })
}

func (r *Appointments) MarkReported(_ context.Context, id string) error {
	return r.set(id, func(a *models.Appointment) { a.HasReport = true })
}

func (r *Appointments) Stats(_ context.Context, doctorID string) (*appointmentRepo.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &appointmentRepo.Stats{ByStatus: map[models.AppointmentStatus]int64{}}
	patients := map[string]bool{}
	for _, a := range r.byID {
		if doctorID != "" && a.DoctorID != doctorID {
			continue
		}
		stats.Total++
		stats.ByStatus[a.Status]++
		patients[a.PatientID] = true
		if a.Status == models.StatusCompleted {
			stats.Earnings += a.Amount
		}
	}
	stats.Patients = int64(len(patients))
	return stats, nil
}
