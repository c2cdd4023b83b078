package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BeverageType selects which volume fields of a RecipeStyle apply.
type BeverageType string

const (
	BeverageMead  BeverageType = "mead"
	BeverageCider BeverageType = "cider"
	BeverageBeer  BeverageType = "beer"
)

// Valid reports whether b is a known beverage type.
func (b BeverageType) Valid() bool {
	switch b {
	case BeverageMead, BeverageCider, BeverageBeer:
		return true
	}
	return false
}

// RecipeStyle (brew style) carries the timing and volume data used to plan a batch.
// Volumes are in gallons.
type RecipeStyle struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	BeverageType BeverageType       `bson:"beverageType" json:"beverageType"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`

	PrimaryFermentationDays   int  `bson:"primaryFermentationDays" json:"primaryFermentationDays"`
	SecondaryFermentationDays *int `bson:"secondaryFermentationDays,omitempty" json:"secondaryFermentationDays,omitempty"`
	ClarificationDays         int  `bson:"clarificationDays" json:"clarificationDays"`
	ConditioningDays          int  `bson:"conditioningDays" json:"conditioningDays"`

	// Mead
	TargetWaterVolume *float64 `bson:"targetWaterVolume,omitempty" json:"targetWaterVolume,omitempty"`
	HoneyWeight       *float64 `bson:"honeyWeight,omitempty" json:"honeyWeight,omitempty"`
	// Cider
	TotalJuiceVolume *float64 `bson:"totalJuiceVolume,omitempty" json:"totalJuiceVolume,omitempty"`
	// Beer
	MashVolume   *float64 `bson:"mashVolume,omitempty" json:"mashVolume,omitempty"`
	SpargeVolume *float64 `bson:"spargeVolume,omitempty" json:"spargeVolume,omitempty"`

	OriginalGravity *float64 `bson:"originalGravity,omitempty" json:"originalGravity,omitempty"`
	FinalGravity    *float64 `bson:"finalGravity,omitempty" json:"finalGravity,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
