package usecase

// Atwater general factors, kcal per gram
const (
	atwaterProtein      = 4.0
	atwaterFat          = 9.0
	atwaterCarbohydrate = 4.0
)

// minEstimatedCalories keeps the scoring divisor positive
const minEstimatedCalories = 1.0

// EstimateCalories approximates energy in kcal from macronutrient masses in grams.
// Results at or below zero are floored to 1.
func EstimateCalories(proteinG, fatG, carbsG float64) float64 {
	estimated := proteinG*atwaterProtein + fatG*atwaterFat + carbsG*atwaterCarbohydrate
	if estimated <= 0 {
		return minEstimatedCalories
	}
	return estimated
}
