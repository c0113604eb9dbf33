package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"clinichub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func buildFilter(f models.AppointmentFilter) bson.M {
	filter := bson.M{}
	if f.PatientID != "" {
		filter["patientId"] = f.PatientID
	}
	if f.DoctorID != "" {
		filter["doctorId"] = f.DoctorID
	}
	if len(f.Statuses) > 0 {
		filter["status"] = bson.M{"$in": f.Statuses}
	}
	return filter
}

func (r *mongoAppointmentRepo) Find(ctx context.Context, f models.AppointmentFilter) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find()
	if f.NewestFirst {
		opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	} else {
		opts.SetSort(bson.D{{Key: "startAt", Value: 1}})
	}
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	cursor, err := r.coll.Find(ctx, buildFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

func (r *mongoAppointmentRepo) TakenSlots(ctx context.Context, doctorID, date string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	values, err := r.coll.Distinct(ctx, "time", bson.M{"doctorId": doctorID, "date": date, "active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to load taken slots: %w", err)
	}
	slots := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			slots = append(slots, s)
		}
	}
	return slots, nil
}

func (r *mongoAppointmentRepo) CountActiveForDoctor(ctx context.Context, doctorID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{"doctorId": doctorID, "active": true})
}

// Stats aggregates the dashboard numbers, for one doctor or for the whole clinic
// when doctorID is empty.
func (r *mongoAppointmentRepo) Stats(ctx context.Context, doctorID string) (*Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	match := bson.M{}
	if doctorID != "" {
		match["doctorId"] = doctorID
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$facet", Value: bson.M{
			"byStatus": bson.A{
				bson.M{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
			},
			"earnings": bson.A{
				bson.M{"$match": bson.M{"status": models.StatusCompleted}},
				bson.M{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}},
			},
			"patients": bson.A{
				bson.M{"$group": bson.M{"_id": "$patientId"}},
				bson.M{"$count": "count"},
			},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		ByStatus []struct {
			Status models.AppointmentStatus `bson:"_id"`
			Count  int64                    `bson:"count"`
		} `bson:"byStatus"`
		Earnings []struct {
			Total float64 `bson:"total"`
		} `bson:"earnings"`
		Patients []struct {
			Count int64 `bson:"count"`
		} `bson:"patients"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error decoding aggregation result: %w", err)
	}

	stats := &Stats{ByStatus: map[models.AppointmentStatus]int64{}}
	if len(results) == 0 {
		return stats, nil
	}
	res := results[0]
	for _, s := range res.ByStatus {
		stats.ByStatus[s.Status] = s.Count
		stats.Total += s.Count
	}
	if len(res.Earnings) > 0 {
		stats.Earnings = res.Earnings[0].Total
	}
	if len(res.Patients) > 0 {
		stats.Patients = res.Patients[0].Count
	}
	return stats, nil
}
