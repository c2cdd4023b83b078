package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/brewhouse/internal/domain/models"
)

// CreateTank inserts a tank and assigns its id.
func (r *Repository) CreateTank(ctx context.Context, tank *models.Tank) error {
	if tank.ID.IsZero() {
		tank.ID = primitive.NewObjectID()
	}
	_, err := r.collection(tanksCollection).InsertOne(ctx, tank)
	return translate(err, "insert tank")
}

// GetTank loads a tank by id.
func (r *Repository) GetTank(ctx context.Context, id primitive.ObjectID) (models.Tank, error) {
	var tank models.Tank
	err := r.collection(tanksCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&tank)
	return tank, translate(err, "find tank")
}

// ListTanks returns all tanks ordered by name.
func (r *Repository) ListTanks(ctx context.Context) ([]models.Tank, error) {
	cur, err := r.collection(tanksCollection).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, translate(err, "list tanks")
	}

	out := []models.Tank{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, "decode tanks")
	}
	return out, nil
}

// UpdateTank replaces the stored tank.
func (r *Repository) UpdateTank(ctx context.Context, tank models.Tank) error {
	res, err := r.collection(tanksCollection).ReplaceOne(ctx, bson.M{"_id": tank.ID}, tank)
	if err != nil {
		return translate(err, "replace tank")
	}
	return checkMatched(res.MatchedCount)
}

// DeleteTank removes a tank.
func (r *Repository) DeleteTank(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection(tanksCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err, "delete tank")
	}
	return checkMatched(res.DeletedCount)
}
