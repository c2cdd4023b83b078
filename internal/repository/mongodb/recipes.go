package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/brewhouse/internal/domain/models"
)

// CreateRecipe inserts a brew style. A name collision yields ErrDuplicateKey.
func (r *Repository) CreateRecipe(ctx context.Context, recipe *models.RecipeStyle) error {
	if recipe.ID.IsZero() {
		recipe.ID = primitive.NewObjectID()
	}
	_, err := r.collection(recipesCollection).InsertOne(ctx, recipe)
	return translate(err, "insert brew style")
}

func (r *Repository) GetRecipe(ctx context.Context, id primitive.ObjectID) (models.RecipeStyle, error) {
	var recipe models.RecipeStyle
	err := r.collection(recipesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&recipe)
	return recipe, translate(err, "find brew style")
}

func (r *Repository) GetRecipeByName(ctx context.Context, name string) (models.RecipeStyle, error) {
	var recipe models.RecipeStyle
	err := r.collection(recipesCollection).FindOne(ctx, bson.M{"name": name}).Decode(&recipe)
	return recipe, translate(err, "find brew style by name")
}

func (r *Repository) ListRecipes(ctx context.Context) ([]models.RecipeStyle, error) {
	cur, err := r.collection(recipesCollection).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, translate(err, "list brew styles")
	}

	out := []models.RecipeStyle{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err, "decode brew styles")
	}
	return out, nil
}

func (r *Repository) UpdateRecipe(ctx context.Context, recipe models.RecipeStyle) error {
	res, err := r.collection(recipesCollection).ReplaceOne(ctx, bson.M{"_id": recipe.ID}, recipe)
	if err != nil {
		return translate(err, "replace brew style")
	}
	return checkMatched(res.MatchedCount)
}

func (r *Repository) DeleteRecipe(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection(recipesCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err, "delete brew style")
	}
	return checkMatched(res.DeletedCount)
}
