package usecase

import "github.com/macrolens/foodscore/internal/domain"

// Resolve builds a nutrient profile from a food's observations.
//
// Observations are applied in order. Each one is assigned to the first table
// category whose keys contain its name or id, so a later observation for the
// same category overwrites an earlier one. Observations that match nothing are
// ignored, and categories that never match stay at zero.
func Resolve(observations []domain.RawNutrientObservation, table *domain.SynonymTable) domain.NutrientProfile {
	var profile domain.NutrientProfile
	if table == nil {
		return profile
	}

	for _, obs := range observations {
		if nutrient, ok := table.Match(obs.Name, obs.ID); ok {
			profile.Set(nutrient, obs.Amount)
		}
	}

	return profile
}
