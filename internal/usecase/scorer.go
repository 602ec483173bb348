package usecase

import (
	"math"

	"github.com/macrolens/foodscore/internal/domain"
)

// Reference densities (grams per 100 kcal, scaled) each sub-score is normalized against
const (
	proteinReference      = 125.0
	fiberReference        = 25.0
	saturatedFatReference = 15.0
)

// EffectiveCalories returns the calories used as the scoring divisor and
// whether they were estimated. Declared calories of exactly zero are replaced
// by an estimate from protein, total fat and carbohydrates.
func EffectiveCalories(profile domain.NutrientProfile) (float64, bool) {
	if profile.Calories == 0 {
		return EstimateCalories(profile.Protein, profile.TotalFat, profile.Carbohydrates), true
	}
	return profile.Calories, false
}

// Score computes the per-nutrient and total scores of a food.
//
//	protein = round(protein/kcal * 100 / 125 * 100, 1)
//	fiber   = round(fiber/kcal * 100 / 25 * 100, 1)
//	satFat  = round(-(satFat/kcal) * 100 / 15 * 100, 1)
//	total   = round(protein + fiber + satFat, 1)
//
// Saturated fat always contributes with a negative sign.
func Score(profile domain.NutrientProfile, foodName string) domain.FoodScoreRecord {
	calories, _ := EffectiveCalories(profile)

	proteinScore := roundScore(densityScore(profile.Protein, calories, proteinReference))
	fiberScore := roundScore(densityScore(profile.Fiber, calories, fiberReference))
	satFatScore := roundScore(-densityScore(profile.SaturatedFat, calories, saturatedFatReference))

	return domain.FoodScoreRecord{
		Food:              foodName,
		TotalScore:        roundScore(proteinScore + fiberScore + satFatScore),
		ProteinScore:      proteinScore,
		FiberScore:        fiberScore,
		SaturatedFatScore: satFatScore,
	}
}

func densityScore(amount, calories, reference float64) float64 {
	return (amount / calories) * 100 / reference * 100
}

// roundScore rounds to one decimal place, halves away from zero (math.Round).
// Negative zero is normalized so it serializes as 0.
func roundScore(v float64) float64 {
	r := math.Round(v*10) / 10
	if r == 0 {
		return 0
	}
	return r
}
