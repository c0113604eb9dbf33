package doctorRepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"clinichub/models"
	"clinichub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type mongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo returns a DoctorRepository backed by the "doctors" collection.
func NewMongoDoctorRepo(db *mongo.Database) DoctorRepository {
	repo := &mongoDoctorRepo{coll: db.Collection("doctors")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("doctors: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *mongoDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	doctor.Email = strings.ToLower(doctor.Email)
	doctor.CreatedAt = now
	doctor.UpdatedAt = now
	if doctor.ServiceIDs == nil {
		doctor.ServiceIDs = []string{}
	}
	if _, err := r.coll.InsertOne(ctx, doctor); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("doctor with email %s: %w", doctor.Email, models.ErrConflict)
		}
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *mongoDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doctor); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("doctor %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch doctor %s: %w", id, err)
	}
	return &doctor, nil
}

// Update replaces the mutable profile fields of a doctor.
func (r *mongoDoctorRepo) Update(ctx context.Context, doctor *models.Doctor) error {
	doctor.UpdatedAt = time.Now()
	return r.setFields(ctx, doctor.ID, bson.M{
		"name":        doctor.Name,
		"phone":       doctor.Phone,
		"speciality":  doctor.Speciality,
		"degree":      doctor.Degree,
		"experience":  doctor.Experience,
		"about":       doctor.About,
		"fees":        doctor.Fees,
		"address":     doctor.Address,
		"available":   doctor.Available,
		"serviceIds":  doctor.ServiceIDs,
		"slotMinutes": doctor.SlotMinutes,
		"workStart":   doctor.WorkStart,
		"workEnd":     doctor.WorkEnd,
		"updatedAt":   doctor.UpdatedAt,
	})
}

func (r *mongoDoctorRepo) SetAvailability(ctx context.Context, id string, available bool) error {
	return r.setFields(ctx, id, bson.M{"available": available, "updatedAt": time.Now()})
}

func (r *mongoDoctorRepo) SetImage(ctx context.Context, id, url string) error {
	return r.setFields(ctx, id, bson.M{"image": url, "updatedAt": time.Now()})
}

func (r *mongoDoctorRepo) setFields(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update doctor %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("doctor %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func (r *mongoDoctorRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete doctor %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("doctor %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func (r *mongoDoctorRepo) List(ctx context.Context, filter models.DoctorFilter) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.Speciality != "" {
		query["speciality"] = bson.M{"$regex": "^" + regexp.QuoteMeta(filter.Speciality) + "$", "$options": "i"}
	}
	if filter.OnlyAvailable {
		query["available"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer cursor.Close(ctx)

	doctors := []models.Doctor{}
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}
	return doctors, nil
}

func (r *mongoDoctorRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}
