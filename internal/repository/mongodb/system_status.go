package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/brewhouse/internal/domain/models"
)

const systemStatusID = "system"

type systemStatusDocument struct {
	ID                  string `bson:"_id"`
	models.SystemStatus `bson:",inline"`
}

func (r *Repository) GetSystemStatus(ctx context.Context) (models.SystemStatus, error) {
	var doc systemStatusDocument
	err := r.collection(systemStatusCollection).FindOne(ctx, bson.M{"_id": systemStatusID}).Decode(&doc)
	return doc.SystemStatus, translate(err, "find system status")
}

func (r *Repository) SaveSystemStatus(ctx context.Context, status models.SystemStatus) error {
	doc := systemStatusDocument{ID: systemStatusID, SystemStatus: status}
	_, err := r.collection(systemStatusCollection).ReplaceOne(ctx, bson.M{"_id": systemStatusID}, doc, options.Replace().SetUpsert(true))
	return translate(err, "save system status")
}
