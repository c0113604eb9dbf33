package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"clinichub/database/repository/repotest"
	"clinichub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	patient = models.Actor{ID: "p1", Role: models.RolePatient}
	doctor  = models.Actor{ID: "d1", Role: models.RoleDoctor}
)

func newTestService() (*DefaultReportService, *repotest.Appointments) {
	appts := repotest.NewAppointments()
	appts.Put(models.Appointment{
		ID: "done", PatientID: "p1", DoctorID: "d1", Date: "2026-03-02", Time: "10:00",
		Status:  models.StatusCompleted,
		Doctor:  models.DoctorSnapshot{Name: "Otieno", Speciality: "Dermatology"},
		Patient: models.PatientSnapshot{Name: "Jane Wanjiru"},
	})
	appts.Put(models.Appointment{ID: "open", PatientID: "p1", DoctorID: "d1", Status: models.StatusBooked})
	return &DefaultReportService{
		Repo:         repotest.NewReports(),
		Appointments: appts,
		ClinicName:   "ClinicHub",
		Now:          func() time.Time { return time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC) },
	}, appts
}

func reportInput(apptID string) models.ReportInput {
	return models.ReportInput{
		AppointmentID: apptID,
		Diagnosis:     "Contact dermatitis",
		Symptoms:      []string{"itching", "redness"},
		Prescriptions: []models.Prescription{{Medicine: "Hydrocortisone 1%", Dosage: "thin layer", Frequency: "twice daily", DurationDays: 7}},
		Notes:         "Avoid the new detergent.",
		FollowUpDate:  "2026-03-16",
	}
}

func TestCreateReport(t *testing.T) {
	svc, appts := newTestService()
	ctx := context.Background()

	rep, err := svc.Create(ctx, doctor.ID, reportInput("done"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Wanjiru", rep.PatientName)
	assert.Equal(t, "2026-03-02", rep.AppointmentDate)

	appt, err := appts.GetByID(ctx, "done")
	require.NoError(t, err)
	assert.True(t, appt.HasReport)

	_, err = svc.Create(ctx, doctor.ID, reportInput("done"))
	require.ErrorIs(t, err, models.ErrConflict)
	assert.Contains(t, err.Error(), rep.ID)
}

func TestCreateReportRules(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, doctor.ID, reportInput("open"))
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	_, err = svc.Create(ctx, "d2", reportInput("done"))
	assert.ErrorIs(t, err, models.ErrForbidden)

	in := reportInput("done")
	in.Diagnosis = ""
	in.FollowUpDate = "next week"
	_, err = svc.Create(ctx, doctor.ID, in)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "diagnosis")
	assert.Contains(t, verr.Fields, "followUpDate")
}

func TestReportAccess(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	rep, err := svc.Create(ctx, doctor.ID, reportInput("done"))
	require.NoError(t, err)

	_, err = svc.Get(ctx, patient, rep.ID)
	require.NoError(t, err)
	_, err = svc.Get(ctx, models.Actor{ID: "p2", Role: models.RolePatient}, rep.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)
	_, err = svc.Get(ctx, models.Actor{ID: "a1", Role: models.RoleAdmin}, rep.ID)
	require.NoError(t, err)

	_, err = svc.Update(ctx, "d2", rep.ID, reportInput("done"))
	assert.ErrorIs(t, err, models.ErrForbidden)

	in := reportInput("done")
	in.Notes = "Revised"
	updated, err := svc.Update(ctx, doctor.ID, rep.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Revised", updated.Notes)

	mine, err := svc.List(ctx, patient)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestRenderPDF(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	rep, err := svc.Create(ctx, doctor.ID, reportInput("done"))
	require.NoError(t, err)

	doc, got, err := svc.RenderPDF(ctx, patient, rep.ID)
	require.NoError(t, err)
	assert.Equal(t, rep.ID, got.ID)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))
	assert.True(t, bytes.Contains(doc, []byte("%%EOF")))
}
