package repotest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"clinichub/models"
)

// Users is an in-memory userRepo.UserRepository.
type Users struct {
	mu   sync.Mutex
	byID map[string]models.User
}

func NewUsers() *Users {
	return &Users{byID: map[string]models.User{}}
}

func (r *Users) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.Email = strings.ToLower(u.Email)
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return fmt.Errorf("email %s: %w", u.Email, models.ErrConflict)
		}
	}
	r.byID[u.ID] = *u
	return nil
}

func (r *Users) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	email = strings.ToLower(email)
	for _, u := range r.byID {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *Users) update(id string, fn func(u *models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return models.ErrNotFound
	}
	fn(&u)
	u.UpdatedAt = time.Now()
	r.byID[id] = u
	return nil
}

func (r *Users) UpdateProfile(_ context.Context, id string, upd models.UserUpdateRequest) error {
	return r.update(id, func(u *models.User) {
		if upd.Name != nil {
			u.Name = *upd.Name
		}
		if upd.Phone != nil {
			u.Phone = *upd.Phone
		}
		if upd.Gender != nil {
			u.Gender = *upd.Gender
		}
		if upd.Address != nil {
			u.Address = *upd.Address
		}
		if upd.DOB != nil {
			u.DOB = *upd.DOB
		}
		if upd.FCMToken != nil {
			u.FCMToken = *upd.FCMToken
		}
	})
}

func (r *Users) SetTokenHash(_ context.Context, id, hash string) error {
	return r.update(id, func(u *models.User) { u.TokenHash = hash })
}

func (r *Users) SetImage(_ context.Context, id, url string) error {
	return r.update(id, func(u *models.User) { u.Image = url })
}

func (r *Users) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *Users) List(_ context.Context, role models.Role) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.User{}
	for _, u := range r.byID {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *Users) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	list, _ := r.List(ctx, role)
	return int64(len(list)), nil
}
