package doctor

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"clinichub/database/repository/repotest"
	"clinichub/models"
	"clinichub/services/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	uploaded map[string]string
	deleted  []string
}

func (f *fakeStorage) UploadImage(_ context.Context, file io.Reader, folder, name string) (string, error) {
	b, _ := io.ReadAll(file)
	f.uploaded[folder+"/"+name] = string(b)
	return "https://cdn.test/" + folder + "/" + name + ".jpg", nil
}

func (f *fakeStorage) DeleteFile(_ context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

type fixture struct {
	svc   *DefaultDoctorService
	users *repotest.Users
	appts *repotest.Appointments
}

func newFixture() fixture {
	users := repotest.NewUsers()
	appts := repotest.NewAppointments()
	svc := &DefaultDoctorService{
		Repo:         repotest.NewDoctors(),
		Users:        users,
		Accounts:     &user.DefaultUserService{Repo: users},
		Appointments: appts,
		Storage:      &fakeStorage{uploaded: map[string]string{}},
		Location:     time.UTC,
		Now:          func() time.Time { return time.Date(2026, 3, 2, 10, 15, 0, 0, time.UTC) },
	}
	return fixture{svc: svc, users: users, appts: appts}
}

func doctorInput() models.DoctorInput {
	return models.DoctorInput{
		Name:        "Dr. Amina Otieno",
		Email:       "amina@clinic.test",
		Phone:       "+254700000001",
		Password:    "D0ctor!pass",
		Speciality:  "Dermatology",
		Experience:  8,
		Fees:        50,
		SlotMinutes: 60,
		WorkStart:   "09:00",
		WorkEnd:     "13:00",
	}
}

func TestCreateDoctorCreatesLogin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doc, err := f.svc.CreateDoctor(ctx, doctorInput())
	require.NoError(t, err)
	assert.True(t, doc.Available)

	login, err := f.users.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleDoctor, login.Role)

	_, err = f.svc.CreateDoctor(ctx, doctorInput())
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestCreateDoctorValidation(t *testing.T) {
	f := newFixture()
	in := doctorInput()
	in.Email = "nope"
	in.Speciality = ""
	in.WorkEnd = "08:00"

	_, err := f.svc.CreateDoctor(context.Background(), in)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "speciality")
	assert.Contains(t, verr.Fields, "workEnd")
}

func TestSlotsExcludePastAndTaken(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	doc, err := f.svc.CreateDoctor(ctx, doctorInput())
	require.NoError(t, err)

	f.appts.Put(models.Appointment{ID: "a1", DoctorID: doc.ID, Date: "2026-03-02", Time: "12:00", Status: models.StatusBooked})
	f.appts.Put(models.Appointment{ID: "a2", DoctorID: doc.ID, Date: "2026-03-02", Time: "11:00", Status: models.StatusCancelled})

	slots, err := f.svc.Slots(ctx, doc.ID, "2026-03-02")
	require.NoError(t, err)
	// 09:00 and 10:00 have already started at 10:15.
	assert.Equal(t, []string{"11:00"}, slots.Free)
	assert.Equal(t, []string{"12:00"}, slots.Taken)

	_, err = f.svc.Slots(ctx, doc.ID, "02/03/2026")
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestDeleteDoctorGuardsActiveAppointments(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	doc, err := f.svc.CreateDoctor(ctx, doctorInput())
	require.NoError(t, err)

	f.appts.Put(models.Appointment{ID: "a1", DoctorID: doc.ID, Date: "2026-03-03", Time: "09:00", Status: models.StatusUpcoming})
	assert.ErrorIs(t, f.svc.DeleteDoctor(ctx, doc.ID), models.ErrConflict)

	f.appts.Put(models.Appointment{ID: "a1", DoctorID: doc.ID, Date: "2026-03-03", Time: "09:00", Status: models.StatusCompleted})
	require.NoError(t, f.svc.DeleteDoctor(ctx, doc.ID))

	_, err = f.users.GetByID(ctx, doc.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAvailabilityAndImage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	doc, err := f.svc.CreateDoctor(ctx, doctorInput())
	require.NoError(t, err)

	updated, err := f.svc.SetAvailability(ctx, doc.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Available)

	list, err := f.svc.ListDoctors(ctx, models.DoctorFilter{OnlyAvailable: true})
	require.NoError(t, err)
	assert.Empty(t, list)

	withImage, err := f.svc.UploadImage(ctx, doc.ID, strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/doctors/"+doc.ID+".jpg", withImage.Image)

	login, err := f.users.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, withImage.Image, login.Image)
}

func TestDeleteDoctorRemovesImage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	doc, err := f.svc.CreateDoctor(ctx, doctorInput())
	require.NoError(t, err)
	_, err = f.svc.UploadImage(ctx, doc.ID, strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteDoctor(ctx, doc.ID))
	assert.Equal(t, []string{"doctors/" + doc.ID}, f.svc.Storage.(*fakeStorage).deleted)
}
