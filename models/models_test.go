package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to AppointmentStatus
		ok       bool
	}{
		{StatusBooked, StatusUpcoming, true},
		{StatusBooked, StatusCancelled, true},
		{StatusBooked, StatusRescheduled, true},
		{StatusUpcoming, StatusCompleted, true},
		{StatusUpcoming, StatusBooked, false},
		{StatusRescheduled, StatusUpcoming, true},
		{StatusRescheduled, StatusRescheduled, true},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusRescheduled, false},
		{StatusCancelled, StatusUpcoming, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, StatusBooked.IsActive())
	assert.True(t, StatusRescheduled.IsActive())
	assert.False(t, StatusCompleted.IsActive())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusUpcoming.IsTerminal())
	assert.False(t, AppointmentStatus("pending").Valid())
}

func TestParseSlot(t *testing.T) {
	got, err := ParseSlot("2026-03-01", "09:30", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC), got)

	_, err = ParseSlot("2026-03-01", "9am", time.UTC)
	assert.Error(t, err)
}

func TestValidationError(t *testing.T) {
	v := &ValidationError{}
	assert.NoError(t, v.OrNil())

	v.Add("email", "invalid email")
	v.Add("phone", "invalid phone")
	err := v.OrNil()
	require.Error(t, err)
	assert.Equal(t, "validation failed: email: invalid email; phone: invalid phone", err.Error())
}

func TestDoctorOffersService(t *testing.T) {
	assert.True(t, Doctor{}.OffersService("any"))
	d := Doctor{ServiceIDs: []string{"a", "b"}}
	assert.True(t, d.OffersService("b"))
	assert.False(t, d.OffersService("c"))
}

func TestDoctorSlotTimes(t *testing.T) {
	d := Doctor{SlotMinutes: 60, WorkStart: "09:00", WorkEnd: "12:00"}
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, d.SlotTimes())
	assert.True(t, d.HasSlot("10:00"))
	assert.False(t, d.HasSlot("10:30"))
	assert.False(t, d.HasSlot("12:00"))

	defaults := Doctor{}
	slots := defaults.SlotTimes()
	assert.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "16:30", slots[len(slots)-1])
}
