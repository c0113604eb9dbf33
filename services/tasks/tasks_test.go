package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"clinichub/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "t1"}, nil
}

func TestScheduleReminder(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	enq := &fakeEnqueuer{}
	s := &AsynqReminderScheduler{Client: enq, Lead: time.Hour, Now: func() time.Time { return now }}

	appt := &models.Appointment{ID: "a1", Date: "2026-03-02", Time: "10:00", StartAt: now.Add(2 * time.Hour)}
	require.NoError(t, s.ScheduleReminder(context.Background(), appt))
	require.Len(t, enq.tasks, 1)
	assert.Equal(t, TypeAppointmentReminder, enq.tasks[0].Type())

	var p models.ReminderPayload
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &p))
	assert.Equal(t, models.ReminderPayload{AppointmentID: "a1", Date: "2026-03-02", Time: "10:00"}, p)

	// Starts within the lead time: nothing to schedule.
	soon := &models.Appointment{ID: "a2", StartAt: now.Add(30 * time.Minute)}
	require.NoError(t, s.ScheduleReminder(context.Background(), soon))
	assert.Len(t, enq.tasks, 1)

	enq.err = asynq.ErrTaskIDConflict
	assert.NoError(t, s.ScheduleReminder(context.Background(), appt))
}

type senderFunc func(ctx context.Context, p models.ReminderPayload) error

func (f senderFunc) SendReminder(ctx context.Context, p models.ReminderPayload) error { return f(ctx, p) }

func TestHandleReminderTask(t *testing.T) {
	var got models.ReminderPayload
	h := HandleReminderTask(senderFunc(func(_ context.Context, p models.ReminderPayload) error {
		got = p
		return nil
	}))

	task, _, err := NewReminderTask(models.ReminderPayload{AppointmentID: "a1", Date: "2026-03-02", Time: "10:00"}, time.Now())
	require.NoError(t, err)
	require.NoError(t, h.ProcessTask(context.Background(), task))
	assert.Equal(t, "a1", got.AppointmentID)

	err = h.ProcessTask(context.Background(), asynq.NewTask(TypeAppointmentReminder, []byte("{")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
