package usecase

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/macrolens/foodscore/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		profile domain.NutrientProfile
		want    domain.FoodScoreRecord
	}{
		{
			name:    "declared calories",
			profile: domain.NutrientProfile{Protein: 10, Fiber: 5, SaturatedFat: 2, Calories: 200},
			want:    domain.FoodScoreRecord{TotalScore: 7.3, ProteinScore: 4.0, FiberScore: 10.0, SaturatedFatScore: -6.7},
		},
		{
			name:    "zero calories are estimated from macronutrients",
			profile: domain.NutrientProfile{Protein: 5, TotalFat: 3, Carbohydrates: 20},
			// 5*4 + 3*9 + 20*4 = 127 kcal
			want: domain.FoodScoreRecord{TotalScore: 3.1, ProteinScore: 3.1, FiberScore: 0, SaturatedFatScore: 0},
		},
		{
			name:    "all zero profile divides by the one kcal floor",
			profile: domain.NutrientProfile{},
			want:    domain.FoodScoreRecord{},
		},
		{
			name:    "saturated fat with estimated calories",
			profile: domain.NutrientProfile{SaturatedFat: 1, TotalFat: 1},
			// 9 kcal: -(1/9)*100/15*100 = -74.07
			want: domain.FoodScoreRecord{TotalScore: -74.1, SaturatedFatScore: -74.1},
		},
		{
			name:    "hummus",
			profile: domain.NutrientProfile{Protein: 7.35, Fiber: 5.4, SaturatedFat: 1.08, Calories: 229},
			want:    domain.FoodScoreRecord{TotalScore: 8.9, ProteinScore: 2.6, FiberScore: 9.4, SaturatedFatScore: -3.1},
		},
		{
			name:    "apple",
			profile: domain.NutrientProfile{Protein: 0.85, Fiber: 2.4, SaturatedFat: 0.028, Calories: 52},
			want:    domain.FoodScoreRecord{TotalScore: 19.4, ProteinScore: 1.3, FiberScore: 18.5, SaturatedFatScore: -0.4},
		},
		{
			name:    "declared calories take precedence over macronutrients",
			profile: domain.NutrientProfile{Protein: 24.1, SaturatedFat: 1.58, TotalFat: 3.2, Carbohydrates: 0, Calories: 166},
			want:    domain.FoodScoreRecord{TotalScore: 5.3, ProteinScore: 11.6, FiberScore: 0, SaturatedFatScore: -6.3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want.Food = "Test food"
			assert.Equal(t, tt.want, Score(tt.profile, "Test food"))
		})
	}
}

func TestEffectiveCalories(t *testing.T) {
	t.Run("uses declared calories when non-zero", func(t *testing.T) {
		kcal, estimated := EffectiveCalories(domain.NutrientProfile{Calories: 52, Protein: 100})
		assert.Equal(t, 52.0, kcal)
		assert.False(t, estimated)
	})

	t.Run("estimates protein, fat and carbohydrates in that order", func(t *testing.T) {
		kcal, estimated := EffectiveCalories(domain.NutrientProfile{Protein: 5, TotalFat: 3, Carbohydrates: 20})
		assert.Equal(t, 127.0, kcal)
		assert.True(t, estimated)
	})

	t.Run("floors to one", func(t *testing.T) {
		kcal, estimated := EffectiveCalories(domain.NutrientProfile{Fiber: 3})
		assert.Equal(t, 1.0, kcal)
		assert.True(t, estimated)
	})
}

func TestScore_Invariants(t *testing.T) {
	amounts := []float64{0, 0.028, 0.5, 1.08, 3, 7.35, 24.1, 81}
	calories := []float64{0, 1, 52, 166, 229, 884}

	for _, protein := range amounts {
		for _, fiber := range amounts {
			for _, satFat := range amounts {
				for _, kcal := range calories {
					profile := domain.NutrientProfile{
						Protein:       protein,
						Fiber:         fiber,
						SaturatedFat:  satFat,
						TotalFat:      satFat * 2,
						Carbohydrates: fiber * 3,
						Calories:      kcal,
					}
					got := Score(profile, "grid")

					assert.LessOrEqual(t, got.SaturatedFatScore, 0.0, "profile %+v", profile)
					assert.Equal(t, roundScore(got.ProteinScore+got.FiberScore+got.SaturatedFatScore), got.TotalScore, "profile %+v", profile)
					assert.False(t, math.IsNaN(got.TotalScore) || math.IsInf(got.TotalScore, 0), "profile %+v", profile)
				}
			}
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	profile := domain.NutrientProfile{Protein: 7.35, Fiber: 5.4, SaturatedFat: 1.08, Calories: 229}

	first, err := json.Marshal(Score(profile, "Hummus"))
	assert.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := json.Marshal(Score(profile, "Hummus"))
		assert.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestRoundScore(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 66.66666, want: 66.7},
		{in: -66.66666, want: -66.7},
		{in: 0.25, want: 0.3},
		{in: -0.25, want: -0.3},
		{in: 0.04, want: 0},
		{in: -0.04, want: 0},
	}

	for _, tt := range tests {
		got := roundScore(tt.in)
		assert.Equal(t, tt.want, got, "roundScore(%v)", tt.in)
		assert.False(t, math.Signbit(got) && got == 0, "roundScore(%v) returned negative zero", tt.in)
	}
}
