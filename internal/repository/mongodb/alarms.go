package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/brewhouse/internal/domain/models"
)

func (r *Repository) CreateAlarm(ctx context.Context, alarm *models.Alarm) error {
	if alarm.ID.IsZero() {
		alarm.ID = primitive.NewObjectID()
	}
	_, err := r.collection(alarmsCollection).InsertOne(ctx, alarm)
	return translate(err, "insert alarm")
}

func (r *Repository) GetAlarm(ctx context.Context, id primitive.ObjectID) (models.Alarm, error) {
	var alarm models.Alarm
	err := r.collection(alarmsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&alarm)
	return alarm, translate(err, "find alarm")
}

func (r *Repository) ListAlarms(ctx context.Context) ([]models.Alarm, error) {
	cur, err := r.collection(alarmsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, translate(err, "list alarms")
	}

	out := []models.Alarm{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, "decode alarms")
	}
	return out, nil
}

// UpdateAlarm writes the definition fields only. The active flag belongs to the
// evaluator and is left as stored.
func (r *Repository) UpdateAlarm(ctx context.Context, alarm models.Alarm) error {
	set := bson.M{
		"name":      alarm.Name,
		"type":      alarm.Type,
		"tankId":    alarm.TankID,
		"updatedAt": alarm.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if alarm.Threshold != nil {
		set["threshold"] = *alarm.Threshold
	} else {
		update["$unset"] = bson.M{"threshold": ""}
	}

	res, err := r.collection(alarmsCollection).UpdateOne(ctx, bson.M{"_id": alarm.ID}, update)
	if err != nil {
		return translate(err, "update alarm")
	}
	return checkMatched(res.MatchedCount)
}

// SetAlarmActive writes only the evaluated flag so that concurrent edits of the
// alarm definition are not overwritten by the evaluator.
func (r *Repository) SetAlarmActive(ctx context.Context, id primitive.ObjectID, active bool, at time.Time) error {
	update := bson.M{"$set": bson.M{"active": active, "updatedAt": at}}
	res, err := r.collection(alarmsCollection).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return translate(err, "update alarm state")
	}
	return checkMatched(res.MatchedCount)
}

func (r *Repository) DeleteAlarm(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection(alarmsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err, "delete alarm")
	}
	return checkMatched(res.DeletedCount)
}
