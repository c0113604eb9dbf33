package repotest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"clinichub/models"
)

// Doctors is an in-memory doctorRepo.DoctorRepository.
type Doctors struct {
	mu   sync.Mutex
	byID map[string]models.Doctor
}

func NewDoctors() *Doctors {
	return &Doctors{byID: map[string]models.Doctor{}}
}

func (r *Doctors) Create(_ context.Context, d *models.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[d.ID]; ok {
		return models.ErrConflict
	}
	r.byID[d.ID] = *d
	return nil
}

func (r *Doctors) GetByID(_ context.Context, id string) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("doctor %s: %w", id, models.ErrNotFound)
	}
	return &d, nil
}

func (r *Doctors) Update(_ context.Context, d *models.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[d.ID]; !ok {
		return models.ErrNotFound
	}
	r.byID[d.ID] = *d
	return nil
}

func (r *Doctors) SetAvailability(_ context.Context, id string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byID[id]
	if !ok {
		return models.ErrNotFound
	}
	d.Available = available
	r.byID[id] = d
	return nil
}

func (r *Doctors) SetImage(_ context.Context, id, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byID[id]
	if !ok {
		return models.ErrNotFound
	}
	d.Image = url
	r.byID[id] = d
	return nil
}

func (r *Doctors) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *Doctors) List(_ context.Context, f models.DoctorFilter) ([]models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Doctor{}
	for _, d := range r.byID {
		if f.OnlyAvailable && !d.Available {
			continue
		}
		if f.Speciality != "" && !strings.EqualFold(d.Speciality, f.Speciality) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Doctors) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

// Services is an in-memory serviceRepo.ServiceRepository.
type Services struct {
	mu   sync.Mutex
	byID map[string]models.Service
}

func NewServices() *Services {
	return &Services{byID: map[string]models.Service{}}
}

func (r *Services) nameTaken(name, exceptID string) bool {
	for _, s := range r.byID {
		if s.ID != exceptID && strings.EqualFold(s.Name, name) {
			return true
		}
	}
	return false
}

func (r *Services) Create(_ context.Context, s *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTaken(s.Name, "") {
		return fmt.Errorf("service %q: %w", s.Name, models.ErrConflict)
	}
	r.byID[s.ID] = *s
	return nil
}

func (r *Services) GetByID(_ context.Context, id string) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &s, nil
}

func (r *Services) Update(_ context.Context, s *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[s.ID]; !ok {
		return models.ErrNotFound
	}
	if r.nameTaken(s.Name, s.ID) {
		return fmt.Errorf("service %q: %w", s.Name, models.ErrConflict)
	}
	r.byID[s.ID] = *s
	return nil
}

func (r *Services) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *Services) List(_ context.Context, onlyActive bool) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Service{}
	for _, s := range r.byID {
		if onlyActive && !s.Active {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
