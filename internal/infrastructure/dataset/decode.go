package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/macrolens/foodscore/internal/domain"
	"go.uber.org/zap"
)

type rawDocument struct {
	FoundationFoods []json.RawMessage `json:"FoundationFoods"`
}

type rawFood struct {
	FdcID         int               `json:"fdcId"`
	Description   *string           `json:"description"`
	FoodNutrients []rawFoodNutrient `json:"foodNutrients"`
}

type rawFoodNutrient struct {
	Nutrient *domain.NutrientRef `json:"nutrient"`
	Amount   *float64            `json:"amount"`
}

// Decode parses a Foundation Foods document.
//
// The document must be a JSON object. A missing FoundationFoods field yields an
// empty dataset. Food items are decoded one by one and items that cannot be
// decoded are skipped and counted instead of failing the whole document.
func Decode(data []byte, logger *zap.Logger) (*domain.FoundationDataset, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, domain.ErrInputEmpty
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", domain.ErrInputMalformed)
	}

	var doc rawDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInputMalformed, err)
	}

	dataset := &domain.FoundationDataset{
		Foods: make([]domain.FoundationFood, 0, len(doc.FoundationFoods)),
	}
	for i, raw := range doc.FoundationFoods {
		food, err := decodeFood(raw)
		if err != nil {
			logger.Warn("skipping food item", zap.Int("index", i), zap.Error(err))
			dataset.Skipped++
			continue
		}
		dataset.Foods = append(dataset.Foods, food)
	}

	return dataset, nil
}

// decodeFood applies the field defaults: missing description becomes
// "Unknown Food", missing nutrient reference becomes name "" and id 0, and
// missing or null amounts become 0.
func decodeFood(raw json.RawMessage) (domain.FoundationFood, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return domain.FoundationFood{}, fmt.Errorf("food item is not an object")
	}

	var rf rawFood
	if err := json.Unmarshal(trimmed, &rf); err != nil {
		return domain.FoundationFood{}, err
	}

	food := domain.FoundationFood{
		FdcID:       rf.FdcID,
		Description: domain.UnknownFoodName,
		Nutrients:   make([]domain.FoodNutrient, 0, len(rf.FoodNutrients)),
	}
	if rf.Description != nil {
		food.Description = *rf.Description
	}

	for _, n := range rf.FoodNutrients {
		var entry domain.FoodNutrient
		if n.Nutrient != nil {
			entry.Nutrient = *n.Nutrient
		}
		if n.Amount != nil {
			entry.Amount = *n.Amount
		}
		food.Nutrients = append(food.Nutrients, entry)
	}

	return food, nil
}
