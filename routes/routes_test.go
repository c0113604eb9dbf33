package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinichub/database/repository/repotest"
	"clinichub/handlers"
	"clinichub/routes"
	"clinichub/services/appointment"
	"clinichub/services/catalogue"
	"clinichub/services/chat"
	"clinichub/services/doctor"
	"clinichub/services/notification"
	"clinichub/services/report"
	"clinichub/services/review"
	"clinichub/services/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	users  *user.DefaultUserService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	now := func() time.Time { return fixedNow }

	users := repotest.NewUsers()
	doctors := repotest.NewDoctors()
	services := repotest.NewServices()
	appts := repotest.NewAppointments()

	userSvc := &user.DefaultUserService{Repo: users, TokenTTL: time.Hour}
	notifSvc := &notification.DefaultNotificationService{Repo: repotest.NewNotifications(), Users: users}
	apptSvc := &appointment.DefaultAppointmentService{
		Repo:           appts,
		Doctors:        doctors,
		Users:          users,
		Services:       services,
		Notifier:       notifSvc,
		Location:       time.UTC,
		UpcomingWindow: 24 * time.Hour,
		Now:            now,
	}
	doctorSvc := &doctor.DefaultDoctorService{
		Repo:         doctors,
		Users:        users,
		Accounts:     userSvc,
		Appointments: appts,
		Location:     time.UTC,
		Now:          now,
	}
	reviewSvc := &review.DefaultReviewService{Repo: repotest.NewReviews(), Appointments: appts}

	bundle := &handlers.HandlerBundle{
		Auth:          userSvc,
		MaxRequests:   1000,
		Users:         handlers.NewAuthHandler(userSvc),
		Doctors:       handlers.NewDoctorHandler(doctorSvc, reviewSvc),
		Services:      handlers.NewServiceHandler(&catalogue.DefaultCatalogueService{Repo: services}),
		Appointments:  handlers.NewAppointmentHandler(apptSvc),
		Reviews:       handlers.NewReviewHandler(reviewSvc),
		Notifications: handlers.NewNotificationHandler(notifSvc, 20),
		Reports:       handlers.NewReportHandler(&report.DefaultReportService{Repo: repotest.NewReports(), Appointments: appts, Now: now}),
		Chat:          handlers.NewChatHandler(&chat.DefaultChatService{Appointments: appts, Users: users, Now: now}),
	}

	r := gin.New()
	routes.RegisterRoutes(r, bundle)
	return &testServer{t: t, router: r, users: userSvc}
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "application/pdf" {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/users/login", "", map[string]string{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, code, env.Error)
	return decode[user.AuthResponse](s.t, env).Token
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodPost, "/api/users/register", "", map[string]string{
		"name": "Jane", "email": "not-an-email", "phone": "123", "password": "weak",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Fields, "email")
	assert.Contains(t, env.Fields, "phone")
	assert.Contains(t, env.Fields, "password")
}

func TestProtectedRoutes(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := s.do(http.MethodPost, "/api/users/register", "", map[string]string{
		"name": "Jane", "email": "jane@example.com", "phone": "+254712345678", "password": "Str0ng!pass",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	token := decode[user.AuthResponse](t, env).Token

	code, _ = s.do(http.MethodGet, "/api/admin/dashboard", token, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodPost, "/api/users/logout", token, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodGet, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

type appointmentView struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

func TestAppointmentLifecycle(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.users.SeedAdmin(ctx, "admin@clinic.test", "Adm1n!pass")
	require.NoError(t, err)
	adminToken := s.login("admin@clinic.test", "Adm1n!pass")

	available := true
	code, env := s.do(http.MethodPost, "/api/admin/doctors", adminToken, map[string]any{
		"name": "Otieno", "email": "otieno@clinic.test", "phone": "+254700000001", "password": "D0ctor!pass",
		"speciality": "Dermatology", "fees": 40, "available": available,
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	doctorID := decode[struct {
		ID string `json:"id"`
	}](t, env).ID
	doctorToken := s.login("otieno@clinic.test", "D0ctor!pass")

	code, env = s.do(http.MethodPost, "/api/users/register", "", map[string]string{
		"name": "Jane", "email": "jane@example.com", "phone": "+254712345678", "password": "Str0ng!pass",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	patientToken := decode[user.AuthResponse](t, env).Token

	code, env = s.do(http.MethodGet, "/api/doctors/"+doctorID+"/slots?date=2026-03-03", "", nil)
	require.Equal(t, http.StatusOK, code, env.Error)

	// Book, then a second booking of the same slot loses.
	booking := map[string]string{"doctorId": doctorID, "date": "2026-03-03", "time": "10:00"}
	code, env = s.do(http.MethodPost, "/api/appointments/book", patientToken, booking)
	require.Equal(t, http.StatusCreated, code, env.Error)
	appt := decode[appointmentView](t, env)
	assert.Equal(t, "booked", appt.Status)

	code, _ = s.do(http.MethodPost, "/api/appointments/book", patientToken, booking)
	assert.Equal(t, http.StatusConflict, code)

	code, env = s.do(http.MethodGet, "/api/users/showAppointment", patientToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]appointmentView](t, env), 1)

	// Doctor reschedules.
	code, env = s.do(http.MethodPut, "/api/doctors/appointment/reschedule", doctorToken, map[string]string{
		"appointmentId": appt.ID, "date": "2026-03-04", "time": "11:00",
	})
	require.Equal(t, http.StatusOK, code, env.Error)
	moved := decode[appointmentView](t, env)
	assert.Equal(t, "rescheduled", moved.Status)
	assert.Equal(t, "11:00", moved.Time)

	// Patients cannot reschedule.
	code, _ = s.do(http.MethodPut, "/api/doctors/appointment/reschedule", patientToken, map[string]string{
		"appointmentId": appt.ID, "date": "2026-03-05", "time": "11:00",
	})
	assert.Equal(t, http.StatusForbidden, code)

	// Patient cancels; cancelling again is rejected.
	cancel := map[string]string{"appointmentId": appt.ID, "reason": "travelling"}
	code, env = s.do(http.MethodPut, "/api/users/appointment/cancel", patientToken, cancel)
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Equal(t, "cancelled", decode[appointmentView](t, env).Status)

	code, _ = s.do(http.MethodPut, "/api/users/appointment/cancel", patientToken, cancel)
	assert.Equal(t, http.StatusConflict, code)

	// A review needs a completed appointment.
	code, _ = s.do(http.MethodPost, "/api/appointments/reviews", patientToken, map[string]any{
		"appointmentId": appt.ID, "rating": 5,
	})
	assert.Equal(t, http.StatusConflict, code)
}

func TestNotificationReadFlow(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.users.SeedAdmin(ctx, "admin@clinic.test", "Adm1n!pass")
	require.NoError(t, err)
	adminToken := s.login("admin@clinic.test", "Adm1n!pass")
	code, env := s.do(http.MethodPost, "/api/admin/doctors", adminToken, map[string]any{
		"name": "Otieno", "email": "otieno@clinic.test", "phone": "+254700000001", "password": "D0ctor!pass",
		"speciality": "Dermatology", "fees": 40, "available": true,
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	doctorID := decode[struct {
		ID string `json:"id"`
	}](t, env).ID

	code, env = s.do(http.MethodPost, "/api/users/register", "", map[string]string{
		"name": "Jane", "email": "jane@example.com", "phone": "+254712345678", "password": "Str0ng!pass",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	token := decode[user.AuthResponse](t, env).Token

	code, env = s.do(http.MethodPost, "/api/appointments/book", token, map[string]string{
		"doctorId": doctorID, "date": "2026-03-03", "time": "09:30",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)

	type unread struct {
		UnreadCount         int64 `json:"unreadCount"`
		PollIntervalSeconds int   `json:"pollIntervalSeconds"`
	}
	code, env = s.do(http.MethodGet, "/api/notifications/unread-count", token, nil)
	require.Equal(t, http.StatusOK, code)
	count := decode[unread](t, env)
	assert.Equal(t, int64(1), count.UnreadCount)
	assert.Equal(t, 20, count.PollIntervalSeconds)

	code, env = s.do(http.MethodGet, "/api/notifications", token, nil)
	require.Equal(t, http.StatusOK, code)
	list := decode[struct {
		Notifications []struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		} `json:"notifications"`
	}](t, env)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, "booked", list.Notifications[0].Type)

	id := list.Notifications[0].ID
	code, env = s.do(http.MethodPut, "/api/notifications/"+id+"/read", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(0), decode[unread](t, env).UnreadCount)

	// Marking it again leaves the count alone.
	code, env = s.do(http.MethodPut, "/api/notifications/"+id+"/read", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(0), decode[unread](t, env).UnreadCount)
}

func TestChatUnavailableWithoutStream(t *testing.T) {
	s := newTestServer(t)
	code, env := s.do(http.MethodPost, "/api/users/register", "", map[string]string{
		"name": "Jane", "email": "jane@example.com", "phone": "+254712345678", "password": "Str0ng!pass",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	token := decode[user.AuthResponse](t, env).Token

	code, _ = s.do(http.MethodGet, "/api/chat/token", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestHealthWithoutProbe(t *testing.T) {
	s := newTestServer(t)
	code, env := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, env.Success)
}
