package appointmentRepo

import (
	"context"
	"testing"
	"time"

	"clinichub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func newTestRepo(t *testing.T) AppointmentRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MongoDB integration test in short mode")
	}
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Skipf("MongoDB container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	return NewMongoAppointmentRepo(client.Database("clinichub_test"))
}

func appointmentAt(id, doctorID, date, clock string, status models.AppointmentStatus) *models.Appointment {
	start, _ := models.ParseSlot(date, clock, time.UTC)
	return &models.Appointment{
		ID:        id,
		PatientID: "patient-1",
		DoctorID:  doctorID,
		Date:      date,
		Time:      clock,
		StartAt:   start,
		Status:    status,
		Amount:    40,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestMongoAppointmentRepo(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	t.Run("active slot is unique", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, appointmentAt("a1", "d1", "2026-05-04", "10:00", models.StatusBooked)))
		err := repo.Create(ctx, appointmentAt("a2", "d1", "2026-05-04", "10:00", models.StatusBooked))
		assert.ErrorIs(t, err, models.ErrSlotTaken)

		taken, err := repo.TakenSlots(ctx, "d1", "2026-05-04")
		require.NoError(t, err)
		assert.Equal(t, []string{"10:00"}, taken)
	})

	t.Run("cancelling frees the slot", func(t *testing.T) {
		_, err := repo.ApplyTransition(ctx, "a1", models.StatusBooked, models.AppointmentUpdate{
			Status:      models.StatusCancelled,
			CancelledBy: models.RolePatient,
			UpdatedAt:   time.Now(),
		})
		require.NoError(t, err)

		require.NoError(t, repo.Create(ctx, appointmentAt("a2", "d1", "2026-05-04", "10:00", models.StatusBooked)))
	})

	t.Run("stale transition conflicts", func(t *testing.T) {
		_, err := repo.ApplyTransition(ctx, "a1", models.StatusBooked, models.AppointmentUpdate{
			Status:    models.StatusCompleted,
			UpdatedAt: time.Now(),
		})
		assert.ErrorIs(t, err, models.ErrConflict)
	})

	t.Run("reschedule onto a held slot", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, appointmentAt("a3", "d1", "2026-05-04", "11:00", models.StatusBooked)))
		start, _ := models.ParseSlot("2026-05-04", "10:00", time.UTC)
		_, err := repo.ApplyTransition(ctx, "a3", models.StatusBooked, models.AppointmentUpdate{
			Status:        models.StatusRescheduled,
			Date:          "2026-05-04",
			Time:          "10:00",
			StartAt:       start,
			PreviousDate:  "2026-05-04",
			PreviousTime:  "11:00",
			IncReschedule: true,
			UpdatedAt:     time.Now(),
		})
		assert.ErrorIs(t, err, models.ErrSlotTaken)
	})

	t.Run("promote due appointments", func(t *testing.T) {
		deadline, _ := models.ParseSlot("2026-05-04", "12:00", time.UTC)
		n, err := repo.PromoteDue(ctx, deadline, time.Now())
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		appt, err := repo.GetByID(ctx, "a2")
		require.NoError(t, err)
		assert.Equal(t, models.StatusUpcoming, appt.Status)
	})

	t.Run("stats", func(t *testing.T) {
		_, err := repo.ApplyTransition(ctx, "a2", models.StatusUpcoming, models.AppointmentUpdate{
			Status:    models.StatusCompleted,
			UpdatedAt: time.Now(),
		})
		require.NoError(t, err)

		stats, err := repo.Stats(ctx, "d1")
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.Total)
		assert.Equal(t, int64(1), stats.ByStatus[models.StatusCompleted])
		assert.Equal(t, int64(1), stats.ByStatus[models.StatusCancelled])
		assert.InDelta(t, 40.0, stats.Earnings, 0.001)
		assert.Equal(t, int64(1), stats.Patients)
	})
}
