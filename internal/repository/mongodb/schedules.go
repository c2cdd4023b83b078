package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/brewhouse/internal/domain/models"
)

var byStartDate = options.Find().SetSort(bson.D{{Key: "startDate", Value: 1}, {Key: "batchNumber", Value: 1}})

// CreateSchedule inserts a production schedule. The unique batchNumber index turns a
// batch collision into ErrDuplicateKey.
func (r *Repository) CreateSchedule(ctx context.Context, schedule *models.ProductionSchedule) error {
	if schedule.ID.IsZero() {
		schedule.ID = primitive.NewObjectID()
	}
	_, err := r.collection(schedulesCollection).InsertOne(ctx, schedule)
	return translate(err, "insert production schedule")
}

func (r *Repository) GetSchedule(ctx context.Context, id primitive.ObjectID) (models.ProductionSchedule, error) {
	var schedule models.ProductionSchedule
	err := r.collection(schedulesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&schedule)
	return schedule, translate(err, "find production schedule")
}

func (r *Repository) ListSchedules(ctx context.Context, filter models.ScheduleFilter) ([]models.ProductionSchedule, error) {
	query := bson.M{}
	if !filter.TankID.IsZero() {
		query["tankId"] = filter.TankID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if !filter.From.IsZero() {
		query["endDate"] = bson.M{"$gte": filter.From}
	}
	if !filter.To.IsZero() {
		query["startDate"] = bson.M{"$lte": filter.To}
	}

	return r.findSchedules(ctx, query)
}

func (r *Repository) FindOverlapping(ctx context.Context, tankID primitive.ObjectID, start, end time.Time) ([]models.ProductionSchedule, error) {
	query := bson.M{
		"tankId":    tankID,
		"status":    bson.M{"$ne": models.ScheduleCancelled},
		"startDate": bson.M{"$lte": end},
		"endDate":   bson.M{"$gte": start},
	}
	return r.findSchedules(ctx, query)
}

func (r *Repository) UpdateSchedule(ctx context.Context, schedule models.ProductionSchedule) error {
	res, err := r.collection(schedulesCollection).ReplaceOne(ctx, bson.M{"_id": schedule.ID}, schedule)
	if err != nil {
		return translate(err, "replace production schedule")
	}
	return checkMatched(res.MatchedCount)
}

func (r *Repository) DeleteSchedule(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection(schedulesCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err, "delete production schedule")
	}
	return checkMatched(res.DeletedCount)
}

func (r *Repository) findSchedules(ctx context.Context, query bson.M) ([]models.ProductionSchedule, error) {
	cur, err := r.collection(schedulesCollection).Find(ctx, query, byStartDate)
	if err != nil {
		return nil, translate(err, "find production schedules")
	}

	out := []models.ProductionSchedule{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, "decode production schedules")
	}
	return out, nil
}
