package reportRepo

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

type mongoReportRepo struct {
	coll *mongo.Collection
}

func NewMongoReportRepo(db *mongo.Database) ReportRepository {
	repo := &mongoReportRepo{coll: db.Collection("reports")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("reports: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *mongoReportRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "appointmentId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return err
}

func (r *mongoReportRepo) Create(ctx context.Context, report *models.Report) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, report); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("report for appointment %s: %w", report.AppointmentID, models.ErrConflict)
		}
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *mongoReportRepo) findOne(ctx context.Context, filter bson.M) (*models.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var report models.Report
	if err := r.coll.FindOne(ctx, filter).Decode(&report); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("report: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}
	return &report, nil
}

func (r *mongoReportRepo) GetByID(ctx context.Context, id string) (*models.Report, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoReportRepo) GetByAppointment(ctx context.Context, appointmentID string) (*models.Report, error) {
	return r.findOne(ctx, bson.M{"appointmentId": appointmentID})
}

func (r *mongoReportRepo) Update(ctx context.Context, report *models.Report) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{
		"diagnosis":     report.Diagnosis,
		"symptoms":      report.Symptoms,
		"prescriptions": report.Prescriptions,
		"tests":         report.Tests,
		"notes":         report.Notes,
		"followUpDate":  report.FollowUpDate,
		"updatedAt":     report.UpdatedAt,
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": report.ID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("report %s: %w", report.ID, models.ErrNotFound)
	}
	return nil
}

func (r *mongoReportRepo) list(ctx context.Context, filter bson.M) ([]models.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer cursor.Close(ctx)

	reports := []models.Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode reports: %w", err)
	}
	return reports, nil
}

func (r *mongoReportRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Report, error) {
	return r.list(ctx, bson.M{"patientId": patientID})
}

func (r *mongoReportRepo) ListByDoctor(ctx context.Context, doctorID string) ([]models.Report, error) {
	return r.list(ctx, bson.M{"doctorId": doctorID})
}
