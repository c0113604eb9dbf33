package user

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

type memoryTokens struct {
	mu     sync.Mutex
	hashes map[string]string
}

func (m *memoryTokens) Get(_ context.Context, userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hashes[userID]
	if !ok {
		return "", ErrCacheMiss
	}
	return h, nil
}

func (m *memoryTokens) Set(_ context.Context, userID, hash string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hashes[userID] = hash
	return nil
}

func (m *memoryTokens) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.hashes, userID)
	return nil
}

func newTestService() (*DefaultUserService, *memoryTokens) {
	tokens := &memoryTokens{hashes: map[string]string{}}
	return &DefaultUserService{Repo: repotest.NewUsers(), Tokens: tokens, TokenTTL: time.Hour}, tokens
}

var validRegistration = models.RegisterRequest{
	Name:     "Jane Doe",
	Email:    "Jane@Example.com",
	Phone:    "+254712345678",
	Password: "Str0ng!pass",
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := map[string]struct {
		mutate func(r *models.RegisterRequest)
		field  string
	}{
		"bad email":      {func(r *models.RegisterRequest) { r.Email = "jane.example.com" }, "email"},
		"short phone":    {func(r *models.RegisterRequest) { r.Phone = "12345" }, "phone"},
		"letters phone":  {func(r *models.RegisterRequest) { r.Phone = "+2547ABC45678" }, "phone"},
		"short password": {func(r *models.RegisterRequest) { r.Password = "Ab1!" }, "password"},
		"no symbol":      {func(r *models.RegisterRequest) { r.Password = "Strong1pass" }, "password"},
		"no upper":       {func(r *models.RegisterRequest) { r.Password = "str0ng!pass" }, "password"},
		"missing name":   {func(r *models.RegisterRequest) { r.Name = "  " }, "name"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRegistration
			tc.mutate(&req)
			_, err := svc.Register(ctx, req)
			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, tokens := newTestService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, validRegistration)
	require.NoError(t, err)
	assert.Equal(t, models.RolePatient, resp.Role)
	assert.Equal(t, "jane@example.com", resp.Email)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Register(ctx, validRegistration)
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "jane@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	login, err := svc.Login(ctx, models.LoginRequest{Email: "JANE@example.com", Password: validRegistration.Password})
	require.NoError(t, err)

	actor, err := svc.Authenticate(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, actor.ID)
	assert.Equal(t, models.RolePatient, actor.Role)

	// A cache miss falls back to the stored hash.
	delete(tokens.hashes, resp.ID)
	_, err = svc.Authenticate(ctx, login.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.ID))
	_, err = svc.Authenticate(ctx, login.Token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.SeedAdmin(ctx, "admin@clinic.test", "Adm1n!pass")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.SeedAdmin(ctx, "admin@clinic.test", "Adm1n!pass")
	require.NoError(t, err)
	assert.False(t, created)

	resp, err := svc.Login(ctx, models.LoginRequest{Email: "admin@clinic.test", Password: "Adm1n!pass"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, resp.Role)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	resp, err := svc.Register(ctx, validRegistration)
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, resp.ID, models.UserUpdateRequest{})
	assert.Error(t, err)

	bad := "123"
	_, err = svc.UpdateProfile(ctx, resp.ID, models.UserUpdateRequest{Phone: &bad})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)

	addr, dob := "12 Clinic Road", "1990-04-12"
	usr, err := svc.UpdateProfile(ctx, resp.ID, models.UserUpdateRequest{Address: &addr, DOB: &dob})
	require.NoError(t, err)
	assert.Equal(t, addr, usr.Address)
	assert.Equal(t, dob, usr.DOB)

	patients, err := svc.ListPatients(ctx)
	require.NoError(t, err)
	assert.Len(t, patients, 1)
}
