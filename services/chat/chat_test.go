package chat

import (
	"context"
	"sync"
	"testing"
	"time"

	"clinichub/database/repository/repotest"
	"clinichub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu       sync.Mutex
	users    map[string]ChatUser
	channels map[string]models.ChatChannel
}

func newFakeClient() *fakeClient {
	return &fakeClient{users: map[string]ChatUser{}, channels: map[string]models.ChatChannel{}}
}

func (f *fakeClient) UpsertUsers(_ context.Context, users ...ChatUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range users {
		f.users[u.ID] = u
	}
	return nil
}

func (f *fakeClient) CreateToken(userID string, expire time.Time) (string, error) {
	return "token-" + userID, nil
}

func (f *fakeClient) EnsureChannel(_ context.Context, channelID, _ string, members []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.channels[channelID]; !ok {
		f.channels[channelID] = models.ChatChannel{ID: channelID, MemberIDs: members}
	}
	return nil
}

func (f *fakeClient) QueryChannels(_ context.Context, userID string) ([]models.ChatChannel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ChatChannel
	for _, ch := range f.channels {
		for _, m := range ch.MemberIDs {
			if m == userID {
				out = append(out, ch)
				break
			}
		}
	}
	return out, nil
}

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService() (*DefaultChatService, *fakeClient, *repotest.Appointments) {
	users := repotest.NewUsers()
	ctx := context.Background()
	_ = users.Create(ctx, &models.User{ID: "p1", Name: "Pat", Email: "pat@example.com", Role: models.RolePatient})
	_ = users.Create(ctx, &models.User{ID: "d1", Name: "House", Email: "house@example.com", Role: models.RoleDoctor})

	appts := repotest.NewAppointments()
	base := models.Appointment{PatientID: "p1", DoctorID: "d1", Patient: models.PatientSnapshot{Name: "Pat"}, Doctor: models.DoctorSnapshot{Name: "House"}}
	for _, a := range []struct {
		id     string
		status models.AppointmentStatus
		date   string
		start  time.Time
	}{
		{"open", models.StatusUpcoming, "2026-03-11", testNow.Add(22 * time.Hour)},
		{"later", models.StatusBooked, "2026-03-20", testNow.Add(10 * 24 * time.Hour)},
		{"recent", models.StatusCompleted, "2026-03-08", testNow.Add(-48 * time.Hour)},
		{"old", models.StatusCompleted, "2026-02-01", testNow.Add(-30 * 24 * time.Hour)},
		{"gone", models.StatusCancelled, "2026-03-12", testNow.Add(46 * time.Hour)},
	} {
		appt := base
		appt.ID, appt.Status, appt.Date, appt.Time, appt.StartAt = a.id, a.status, a.date, "10:00", a.start
		appts.Put(appt)
	}

	client := newFakeClient()
	svc := &DefaultChatService{
		Client:       client,
		Appointments: appts,
		Users:        users,
		APIKey:       "key",
		PollSeconds:  5,
		Now:          func() time.Time { return testNow },
	}
	return svc, client, appts
}

func TestToken(t *testing.T) {
	svc, client, _ := newTestService()

	tok, err := svc.Token(context.Background(), models.Actor{ID: "p1", Role: models.RolePatient})
	require.NoError(t, err)
	assert.Equal(t, "token-p1", tok.Token)
	assert.Equal(t, "key", tok.APIKey)
	assert.Equal(t, 5, tok.PollIntervalSeconds)
	assert.Equal(t, "Pat", client.users["p1"].Name)
}

func TestChatUnavailableWithoutClient(t *testing.T) {
	svc, _, _ := newTestService()
	svc.Client = nil

	_, err := svc.Token(context.Background(), models.Actor{ID: "p1", Role: models.RolePatient})
	assert.ErrorIs(t, err, models.ErrUnavailable)
}

func TestEnsureChannel(t *testing.T) {
	svc, client, appts := newTestService()
	ctx := context.Background()
	patient := models.Actor{ID: "p1", Role: models.RolePatient}

	v, err := svc.EnsureChannel(ctx, patient, "open")
	require.NoError(t, err)
	assert.Equal(t, "appt-open", v.ChannelID)
	assert.Equal(t, "d1", v.PeerID)
	assert.Equal(t, "Dr. House", v.PeerName)
	assert.Contains(t, client.channels, "appt-open")

	appt, err := appts.GetByID(ctx, "open")
	require.NoError(t, err)
	assert.Equal(t, "appt-open", appt.ChannelID)

	_, err = svc.EnsureChannel(ctx, models.Actor{ID: "p2", Role: models.RolePatient}, "open")
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = svc.EnsureChannel(ctx, patient, "gone")
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = svc.EnsureChannel(ctx, patient, "old")
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = svc.EnsureChannel(ctx, patient, "recent")
	assert.NoError(t, err)
}

func TestChannelsReconcile(t *testing.T) {
	svc, client, appts := newTestService()
	ctx := context.Background()

	last := testNow.Add(-time.Hour)
	client.channels["appt-open"] = models.ChatChannel{ID: "appt-open", MemberIDs: []string{"p1", "d1"}, LastMessageAt: last}
	client.channels["appt-old"] = models.ChatChannel{ID: "appt-old", MemberIDs: []string{"p1", "d1"}}
	client.channels["support"] = models.ChatChannel{ID: "support", MemberIDs: []string{"p1"}}

	list, err := svc.Channels(ctx, models.Actor{ID: "d1", Role: models.RoleDoctor})
	require.NoError(t, err)

	require.Len(t, list.Channels, 1)
	assert.Equal(t, "open", list.Channels[0].AppointmentID)
	assert.Equal(t, "p1", list.Channels[0].PeerID)
	require.NotNil(t, list.Channels[0].LastMessageAt)
	assert.True(t, last.Equal(*list.Channels[0].LastMessageAt))

	require.Len(t, list.Pending, 2)
	assert.Equal(t, "recent", list.Pending[0].AppointmentID)
	assert.Equal(t, "later", list.Pending[1].AppointmentID)

	appt, err := appts.GetByID(ctx, "open")
	require.NoError(t, err)
	assert.Equal(t, "appt-open", appt.ChannelID)

	_, err = svc.Channels(ctx, models.Actor{ID: "admin", Role: models.RoleAdmin})
	assert.ErrorIs(t, err, models.ErrForbidden)
}
