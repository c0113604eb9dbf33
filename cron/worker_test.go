package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"clinichub/models"
	"clinichub/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJobs struct {
	reminders []models.ReminderPayload
	sweeps    int
	err       error
}

func (f *fakeJobs) SendReminder(_ context.Context, p models.ReminderPayload) error {
	f.reminders = append(f.reminders, p)
	return f.err
}

func (f *fakeJobs) AdvanceStatuses(context.Context) (int64, error) {
	f.sweeps++
	return 2, f.err
}

func TestServeMuxRoutesTasks(t *testing.T) {
	jobs := &fakeJobs{}
	mux := NewServeMux(jobs)
	ctx := context.Background()

	payload := models.ReminderPayload{AppointmentID: "a1", Date: "2026-03-11", Time: "10:00"}
	b, err := json.Marshal(payload)
	require.NoError(t, err)

	require.NoError(t, mux.ProcessTask(ctx, asynq.NewTask(tasks.TypeAppointmentReminder, b)))
	require.NoError(t, mux.ProcessTask(ctx, tasks.NewAdvanceTask()))

	assert.Equal(t, []models.ReminderPayload{payload}, jobs.reminders)
	assert.Equal(t, 1, jobs.sweeps)
}

func TestServeMuxPropagatesErrors(t *testing.T) {
	jobs := &fakeJobs{err: errors.New("mongo down")}
	mux := NewServeMux(jobs)

	err := mux.ProcessTask(context.Background(), tasks.NewAdvanceTask())
	assert.EqualError(t, err, "mongo down")
}

func TestServeMuxUnknownType(t *testing.T) {
	mux := NewServeMux(&fakeJobs{})
	assert.Error(t, mux.ProcessTask(context.Background(), asynq.NewTask("unknown", nil)))
}
