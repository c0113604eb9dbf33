package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinichub/models"
	"clinichub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo returns an AppointmentRepository backed by "booked_appointments".
func NewMongoAppointmentRepo(db *mongo.Database) AppointmentRepository {
	repo := &mongoAppointmentRepo{coll: db.Collection("booked_appointments")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("appointments: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *mongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	appt.Active = appt.Status.IsActive()
	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrSlotTaken
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *mongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("appointment %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) ApplyTransition(ctx context.Context, id string, from models.AppointmentStatus, upd models.AppointmentUpdate) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{
		"status":    upd.Status,
		"active":    upd.Status.IsActive(),
		"updatedAt": upd.UpdatedAt,
	}
	if upd.Date != "" {
		set["date"] = upd.Date
		set["time"] = upd.Time
		set["startAt"] = upd.StartAt
	}
	if upd.CancelReason != "" {
		set["cancelReason"] = upd.CancelReason
	}
	if upd.CancelledBy != "" {
		set["cancelledBy"] = upd.CancelledBy
	}
	if upd.PreviousDate != "" {
		set["previousDate"] = upd.PreviousDate
		set["previousTime"] = upd.PreviousTime
	}
	update := bson.M{"$set": set}
	if upd.IncReschedule {
		update["$inc"] = bson.M{"rescheduleCount": 1}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var appt models.Appointment
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id, "status": from}, update, opts).Decode(&appt)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, fmt.Errorf("appointment %s is no longer %s: %w", id, from, models.ErrConflict)
		case mongo.IsDuplicateKeyError(err):
			return nil, models.ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to update appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) PromoteDue(ctx context.Context, deadline, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	filter := bson.M{
		"status":  bson.M{"$in": []models.AppointmentStatus{models.StatusBooked, models.StatusRescheduled}},
		"startAt": bson.M{"$lte": deadline},
	}
	update := bson.M{"$set": bson.M{"status": models.StatusUpcoming, "active": true, "updatedAt": now}}
	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to promote due appointments: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *mongoAppointmentRepo) setFields(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update appointment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("appointment %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func (r *mongoAppointmentRepo) SetChannelID(ctx context.Context, id, channelID string) error {
	return r.setFields(ctx, id, bson.M{"channelId": channelID})
}

func (r *mongoAppointmentRepo) MarkReviewed(ctx context.Context, id string) error {
	return r.setFields(ctx, id, bson.M{"reviewed": true})
}

func (r *mongoAppointmentRepo) MarkReported(ctx context.Context, id string) error {
	return r.setFields(ctx, id, bson.M{"hasReport": true})
}
