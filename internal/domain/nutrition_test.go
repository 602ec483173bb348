package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalNutrient(t *testing.T) {
	t.Run("round trips every category through its name", func(t *testing.T) {
		for _, n := range CanonicalNutrients() {
			parsed, err := ParseCanonicalNutrient(n.String())
			require.NoError(t, err)
			assert.Equal(t, n, parsed)
		}
	})

	t.Run("parses case-insensitively", func(t *testing.T) {
		n, err := ParseCanonicalNutrient(" saturatedfat ")
		require.NoError(t, err)
		assert.Equal(t, NutrientSaturatedFat, n)
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := ParseCanonicalNutrient("Sodium")
		assert.Error(t, err)
	})

	t.Run("formats out of range values", func(t *testing.T) {
		assert.Equal(t, "CanonicalNutrient(42)", CanonicalNutrient(42).String())
		assert.False(t, CanonicalNutrient(-1).Valid())
	})
}

func TestNutrientProfile_SetGet(t *testing.T) {
	var p NutrientProfile
	for i, n := range CanonicalNutrients() {
		assert.Zero(t, p.Get(n), "%s should start at zero", n)
		p.Set(n, float64(i+1))
	}

	assert.Equal(t, NutrientProfile{
		Protein:       1,
		Fiber:         2,
		SaturatedFat:  3,
		TotalFat:      4,
		Carbohydrates: 5,
		Calories:      6,
	}, p)

	p.Set(CanonicalNutrient(99), 100)
	assert.Zero(t, p.Get(CanonicalNutrient(99)))
}

func TestNewSynonymTable(t *testing.T) {
	tests := []struct {
		name    string
		entries []SynonymEntry
	}{
		{name: "no entries", entries: nil},
		{name: "unknown category", entries: []SynonymEntry{{Nutrient: CanonicalNutrient(12), Names: []string{"X"}}}},
		{name: "duplicate category", entries: []SynonymEntry{
			{Nutrient: NutrientProtein, Names: []string{"Protein"}},
			{Nutrient: NutrientProtein, IDs: []int{1003}},
		}},
		{name: "entry without keys", entries: []SynonymEntry{{Nutrient: NutrientFiber}}},
		{name: "empty name", entries: []SynonymEntry{{Nutrient: NutrientFiber, Names: []string{""}}}},
		{name: "zero id", entries: []SynonymEntry{{Nutrient: NutrientFiber, IDs: []int{0}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewSynonymTable(tt.entries)
			assert.Nil(t, table)
			assert.True(t, errors.Is(err, ErrInvalidSynonymTable), "error = %v", err)
		})
	}
}

func TestSynonymTable_Match(t *testing.T) {
	table, err := NewSynonymTable([]SynonymEntry{
		{Nutrient: NutrientProtein, Names: []string{"Protein"}, IDs: []int{1003}},
		{Nutrient: NutrientTotalFat, Names: []string{"Total lipid (fat)", "Shared"}, IDs: []int{1004}},
		{Nutrient: NutrientCalories, Names: []string{"Energy", "Shared"}, IDs: []int{1008, 1004}},
	})
	require.NoError(t, err)

	tests := []struct {
		name      string
		label     string
		id        int
		want      CanonicalNutrient
		wantMatch bool
	}{
		{name: "matches by name", label: "Protein", id: 0, want: NutrientProtein, wantMatch: true},
		{name: "matches by id", label: "something else", id: 1008, want: NutrientCalories, wantMatch: true},
		{name: "name match is case-sensitive", label: "protein", id: 0, wantMatch: false},
		{name: "empty name and zero id never match", label: "", id: 0, wantMatch: false},
		{name: "overlapping name resolves to first entry", label: "Shared", id: 0, want: NutrientTotalFat, wantMatch: true},
		{name: "overlapping id resolves to first entry", label: "", id: 1004, want: NutrientTotalFat, wantMatch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.Match(tt.label, tt.id)
			assert.Equal(t, tt.wantMatch, ok)
			if tt.wantMatch {
				assert.Equal(t, tt.want, got)
			}
		})
	}

	assert.Equal(t, []string{
		`id 1004: TotalFat, Calories`,
		`name "Shared": TotalFat, Calories`,
	}, table.Overlaps())
}

func TestSynonymTable_EntriesAreCopies(t *testing.T) {
	names := []string{"Protein"}
	table, err := NewSynonymTable([]SynonymEntry{{Nutrient: NutrientProtein, Names: names}})
	require.NoError(t, err)

	names[0] = "Mutated"
	entries := table.Entries()
	entries[0].Names[0] = "Also mutated"

	got, ok := table.Match("Protein", 0)
	assert.True(t, ok)
	assert.Equal(t, NutrientProtein, got)
	assert.Equal(t, "Protein", table.Entries()[0].Names[0])
}

func TestFoundationFood_Observations(t *testing.T) {
	food := FoundationFood{
		Description: "Hummus, commercial",
		Nutrients: []FoodNutrient{
			{Nutrient: NutrientRef{ID: 1003, Name: "Protein"}, Amount: 7.35},
			{Nutrient: NutrientRef{}, Amount: 0},
		},
	}

	assert.Equal(t, []RawNutrientObservation{
		{Name: "Protein", ID: 1003, Amount: 7.35},
		{Name: "", ID: 0, Amount: 0},
	}, food.Observations())
}
