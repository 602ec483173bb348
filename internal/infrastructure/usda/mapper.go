package usda

import "github.com/macrolens/foodscore/internal/domain"

// foodResponse is the full-format body of GET /v1/food/{fdcId}
type foodResponse struct {
	FdcID         int                    `json:"fdcId"`
	Description   string                 `json:"description"`
	DataType      string                 `json:"dataType"`
	FoodNutrients []foodNutrientResponse `json:"foodNutrients"`
}

type foodNutrientResponse struct {
	Nutrient *nutrientResponse `json:"nutrient"`
	Amount   *float64          `json:"amount"`
}

type nutrientResponse struct {
	ID       int    `json:"id"`
	Number   string `json:"number"`
	Name     string `json:"name"`
	UnitName string `json:"unitName"`
}

// MapToFoundationFood converts a USDA API food to the domain model, with the
// same defaults the dataset decoder applies to downloaded files
func MapToFoundationFood(resp *foodResponse) domain.FoundationFood {
	food := domain.FoundationFood{
		FdcID:       resp.FdcID,
		Description: resp.Description,
		Nutrients:   make([]domain.FoodNutrient, 0, len(resp.FoodNutrients)),
	}
	if food.Description == "" {
		food.Description = domain.UnknownFoodName
	}

	for _, n := range resp.FoodNutrients {
		var entry domain.FoodNutrient
		if n.Nutrient != nil {
			entry.Nutrient = domain.NutrientRef{
				ID:       n.Nutrient.ID,
				Name:     n.Nutrient.Name,
				UnitName: n.Nutrient.UnitName,
			}
		}
		if n.Amount != nil {
			entry.Amount = *n.Amount
		}
		food.Nutrients = append(food.Nutrients, entry)
	}

	return food
}
