package doctor

import (
	"context"
	"fmt"

	"clinichub/models"
)

// Slots splits the doctor's working day into slots and removes the ones held by
// active appointments or already in the past.
func (s *DefaultDoctorService) Slots(ctx context.Context, id, date string) (*models.DaySlots, error) {
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := models.ParseSlot(date, "00:00", s.location()); err != nil {
		return nil, &models.ValidationError{Fields: map[string]string{"date": "use the YYYY-MM-DD format"}}
	}

	taken, err := s.Appointments.TakenSlots(ctx, id, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked slots: %w", err)
	}
	held := make(map[string]bool, len(taken))
	for _, t := range taken {
		held[t] = true
	}

	out := &models.DaySlots{DoctorID: id, Date: date, Free: []string{}, Taken: []string{}}
	now := s.now()
	for _, slot := range doc.SlotTimes() {
		if held[slot] {
			out.Taken = append(out.Taken, slot)
			continue
		}
		start, _ := models.ParseSlot(date, slot, s.location())
		if !doc.Available || !start.After(now) {
			continue
		}
		out.Free = append(out.Free, slot)
	}
	return out, nil
}
