package domain

import "time"

// UnknownFoodName is used for food items without a description
const UnknownFoodName = "Unknown Food"

// FoundationDataset is a decoded Foundation Foods document
type FoundationDataset struct {
	Foods []FoundationFood
	// Skipped counts food items that could not be decoded
	Skipped int
}

// FoundationFood is a single food item from the USDA FoodData Central
// Foundation Foods download or the /v1/food endpoint
type FoundationFood struct {
	FdcID       int            `json:"fdcId,omitempty"`
	Description string         `json:"description"`
	Nutrients   []FoodNutrient `json:"foodNutrients"`
}

// FoodNutrient is one nutrient measurement attached to a food
type FoodNutrient struct {
	Nutrient NutrientRef `json:"nutrient"`
	Amount   float64     `json:"amount"`
}

// NutrientRef identifies a nutrient by name and USDA nutrient id
type NutrientRef struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	UnitName string `json:"unitName,omitempty"`
}

// Observations flattens the food's nutrient entries
func (f FoundationFood) Observations() []RawNutrientObservation {
	observations := make([]RawNutrientObservation, 0, len(f.Nutrients))
	for _, n := range f.Nutrients {
		observations = append(observations, RawNutrientObservation{
			Name:   n.Nutrient.Name,
			ID:     n.Nutrient.ID,
			Amount: n.Amount,
		})
	}
	return observations
}

// FoodScoreRecord is the persisted score of one food item.
// Field order is the serialized order.
type FoodScoreRecord struct {
	Food              string  `json:"Food"`
	TotalScore        float64 `json:"TotalScore"`
	ProteinScore      float64 `json:"ProteinScore"`
	FiberScore        float64 `json:"FiberScore"`
	SaturatedFatScore float64 `json:"SaturatedFatScore"`
}

// ScoreRun is the result of one pipeline execution
type ScoreRun struct {
	ID         string            `json:"runId"`
	Source     string            `json:"source"`
	StartedAt  time.Time         `json:"startedAt"`
	FinishedAt time.Time         `json:"finishedAt"`
	Skipped    int               `json:"skipped"`
	Records    []FoodScoreRecord `json:"scores"`
}
