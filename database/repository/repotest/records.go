package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"clinichub/models"
)

// Notifications is an in-memory notificationRepo.NotificationRepository.
type Notifications struct {
	mu   sync.Mutex
	byID map[string]models.Notification
}

func NewNotifications() *Notifications {
	return &Notifications{byID: map[string]models.Notification{}}
}

func (r *Notifications) Create(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[n.ID] = *n
	return nil
}

func (r *Notifications) GetByID(_ context.Context, id string) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("notification %s: %w", id, models.ErrNotFound)
	}
	return &n, nil
}

func (r *Notifications) ListByUser(_ context.Context, userID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Notification{}
	for _, n := range r.byID {
		if n.UserID == userID && !(unreadOnly && n.Read) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Notifications) CountUnread(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var c int64
	for _, n := range r.byID {
		if n.UserID == userID && !n.Read {
			c++
		}
	}
	return c, nil
}

func (r *Notifications) MarkRead(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.byID[id]
	if !ok || n.Read {
		return false, nil
	}
	now := time.Now()
	n.Read, n.ReadAt = true, &now
	r.byID[id] = n
	return true, nil
}

func (r *Notifications) MarkAllRead(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var c int64
	now := time.Now()
	for id, n := range r.byID {
		if n.UserID == userID && !n.Read {
			n.Read, n.ReadAt = true, &now
			r.byID[id] = n
			c++
		}
	}
	return c, nil
}

func (r *Notifications) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// Reviews is an in-memory reviewRepo.ReviewRepository.
type Reviews struct {
	mu            sync.Mutex
	byAppointment map[string]models.Review
}

func NewReviews() *Reviews {
	return &Reviews{byAppointment: map[string]models.Review{}}
}

func (r *Reviews) Create(_ context.Context, rv *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byAppointment[rv.AppointmentID]; ok {
		return models.ErrReviewExists
	}
	r.byAppointment[rv.AppointmentID] = *rv
	return nil
}

func (r *Reviews) GetByAppointment(_ context.Context, appointmentID string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.byAppointment[appointmentID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &rv, nil
}

func (r *Reviews) ListByDoctor(_ context.Context, doctorID string) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Review{}
	for _, rv := range r.byAppointment {
		if rv.DoctorID == doctorID {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *Reviews) DoctorRating(ctx context.Context, doctorID string) (float64, int64, error) {
	list, _ := r.ListByDoctor(ctx, doctorID)
	if len(list) == 0 {
		return 0, 0, nil
	}
	sum := 0
	for _, rv := range list {
		sum += rv.Rating
	}
	return float64(sum) / float64(len(list)), int64(len(list)), nil
}

// Reports is an in-memory reportRepo.ReportRepository.
type Reports struct {
	mu   sync.Mutex
	byID map[string]models.Report
}

func NewReports() *Reports {
	return &Reports{byID: map[string]models.Report{}}
}

func (r *Reports) Create(_ context.Context, rep *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.AppointmentID == rep.AppointmentID {
			return models.ErrConflict
		}
	}
	r.byID[rep.ID] = *rep
	return nil
}

func (r *Reports) GetByID(_ context.Context, id string) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rep, ok := r.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &rep, nil
}

func (r *Reports) GetByAppointment(_ context.Context, appointmentID string) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rep := range r.byID {
		if rep.AppointmentID == appointmentID {
			rep := rep
			return &rep, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *Reports) Update(_ context.Context, rep *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[rep.ID]; !ok {
		return models.ErrNotFound
	}
	r.byID[rep.ID] = *rep
	return nil
}

func (r *Reports) list(keep func(models.Report) bool) []models.Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Report{}
	for _, rep := range r.byID {
		if keep(rep) {
			out = append(out, rep)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *Reports) ListByPatient(_ context.Context, patientID string) ([]models.Report, error) {
	return r.list(func(rep models.Report) bool { return rep.PatientID == patientID }), nil
}

func (r *Reports) ListByDoctor(_ context.Context, doctorID string) ([]models.Report, error) {
	return r.list(func(rep models.Report) bool { return rep.DoctorID == doctorID }), nil
}
