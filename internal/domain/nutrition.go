package domain

import (
	"fmt"
	"sort"
	"strings"
)

// CanonicalNutrient is one of the fixed nutrient categories used for scoring
type CanonicalNutrient int

const (
	NutrientProtein CanonicalNutrient = iota
	NutrientFiber
	NutrientSaturatedFat
	NutrientTotalFat
	NutrientCarbohydrates
	NutrientCalories
)

var canonicalNutrientNames = [...]string{
	NutrientProtein:       "Protein",
	NutrientFiber:         "Fiber",
	NutrientSaturatedFat:  "SaturatedFat",
	NutrientTotalFat:      "TotalFat",
	NutrientCarbohydrates: "Carbohydrates",
	NutrientCalories:      "Calories",
}

// CanonicalNutrients returns every category in declaration order
func CanonicalNutrients() []CanonicalNutrient {
	return []CanonicalNutrient{
		NutrientProtein,
		NutrientFiber,
		NutrientSaturatedFat,
		NutrientTotalFat,
		NutrientCarbohydrates,
		NutrientCalories,
	}
}

// Valid reports whether n is one of the declared categories
func (n CanonicalNutrient) Valid() bool {
	return n >= NutrientProtein && n <= NutrientCalories
}

func (n CanonicalNutrient) String() string {
	if !n.Valid() {
		return fmt.Sprintf("CanonicalNutrient(%d)", int(n))
	}
	return canonicalNutrientNames[n]
}

// ParseCanonicalNutrient parses the textual form of a category (case-insensitive)
func ParseCanonicalNutrient(s string) (CanonicalNutrient, error) {
	for _, n := range CanonicalNutrients() {
		if strings.EqualFold(strings.TrimSpace(s), canonicalNutrientNames[n]) {
			return n, nil
		}
	}
	return 0, fmt.Errorf("unknown nutrient category %q", s)
}

// RawNutrientObservation is one measured nutrient entry of a food item
type RawNutrientObservation struct {
	Name   string
	ID     int
	Amount float64
}

// NutrientProfile holds the resolved amount of every canonical nutrient.
// Masses are grams, Calories is kcal. The zero value is a valid empty profile.
type NutrientProfile struct {
	Protein       float64 `json:"protein"`
	Fiber         float64 `json:"fiber"`
	SaturatedFat  float64 `json:"saturatedFat"`
	TotalFat      float64 `json:"totalFat"`
	Carbohydrates float64 `json:"carbohydrates"`
	Calories      float64 `json:"calories"`
}

// Set assigns amount to the given category
func (p *NutrientProfile) Set(n CanonicalNutrient, amount float64) {
	switch n {
	case NutrientProtein:
		p.Protein = amount
	case NutrientFiber:
		p.Fiber = amount
	case NutrientSaturatedFat:
		p.SaturatedFat = amount
	case NutrientTotalFat:
		p.TotalFat = amount
	case NutrientCarbohydrates:
		p.Carbohydrates = amount
	case NutrientCalories:
		p.Calories = amount
	}
}

// Get returns the amount stored for the given category
func (p NutrientProfile) Get(n CanonicalNutrient) float64 {
	switch n {
	case NutrientProtein:
		return p.Protein
	case NutrientFiber:
		return p.Fiber
	case NutrientSaturatedFat:
		return p.SaturatedFat
	case NutrientTotalFat:
		return p.TotalFat
	case NutrientCarbohydrates:
		return p.Carbohydrates
	case NutrientCalories:
		return p.Calories
	}
	return 0
}

// SynonymEntry lists the keys that identify one canonical nutrient
type SynonymEntry struct {
	Nutrient CanonicalNutrient
	Names    []string
	IDs      []int
}

type synonymKeys struct {
	entry SynonymEntry
	names map[string]struct{}
	ids   map[int]struct{}
}

// SynonymTable maps nutrient names and identifiers to canonical categories.
// Entries are evaluated in the order they were declared and the table is
// never modified after construction.
type SynonymTable struct {
	entries []synonymKeys
}

// NewSynonymTable builds a table from entries, keeping their order.
// Names must be non-empty and identifiers positive, so an observation with a
// missing name or id can never match.
func NewSynonymTable(entries []SynonymEntry) (*SynonymTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrInvalidSynonymTable)
	}

	seen := make(map[CanonicalNutrient]bool, len(entries))
	table := &SynonymTable{entries: make([]synonymKeys, 0, len(entries))}

	for i, e := range entries {
		if !e.Nutrient.Valid() {
			return nil, fmt.Errorf("%w: entry %d has unknown category %d", ErrInvalidSynonymTable, i, int(e.Nutrient))
		}
		if seen[e.Nutrient] {
			return nil, fmt.Errorf("%w: category %s listed twice", ErrInvalidSynonymTable, e.Nutrient)
		}
		seen[e.Nutrient] = true

		if len(e.Names) == 0 && len(e.IDs) == 0 {
			return nil, fmt.Errorf("%w: category %s has no keys", ErrInvalidSynonymTable, e.Nutrient)
		}

		keys := synonymKeys{
			entry: SynonymEntry{
				Nutrient: e.Nutrient,
				Names:    append([]string(nil), e.Names...),
				IDs:      append([]int(nil), e.IDs...),
			},
			names: make(map[string]struct{}, len(e.Names)),
			ids:   make(map[int]struct{}, len(e.IDs)),
		}
		for _, name := range e.Names {
			if name == "" {
				return nil, fmt.Errorf("%w: category %s has an empty name", ErrInvalidSynonymTable, e.Nutrient)
			}
			keys.names[name] = struct{}{}
		}
		for _, id := range e.IDs {
			if id <= 0 {
				return nil, fmt.Errorf("%w: category %s has non-positive id %d", ErrInvalidSynonymTable, e.Nutrient, id)
			}
			keys.ids[id] = struct{}{}
		}

		table.entries = append(table.entries, keys)
	}

	return table, nil
}

// Match returns the first category whose keys contain name (exact,
// case-sensitive) or id.
func (t *SynonymTable) Match(name string, id int) (CanonicalNutrient, bool) {
	for _, keys := range t.entries {
		if _, ok := keys.names[name]; ok {
			return keys.entry.Nutrient, true
		}
		if _, ok := keys.ids[id]; ok {
			return keys.entry.Nutrient, true
		}
	}
	return 0, false
}

// Entries returns a copy of the table entries in evaluation order
func (t *SynonymTable) Entries() []SynonymEntry {
	out := make([]SynonymEntry, len(t.entries))
	for i, keys := range t.entries {
		out[i] = SynonymEntry{
			Nutrient: keys.entry.Nutrient,
			Names:    append([]string(nil), keys.entry.Names...),
			IDs:      append([]int(nil), keys.entry.IDs...),
		}
	}
	return out
}

// Overlaps describes every key that appears under more than one category.
// Such keys always resolve to the earliest category.
func (t *SynonymTable) Overlaps() []string {
	nameOwners := make(map[string][]string)
	idOwners := make(map[int][]string)
	for _, keys := range t.entries {
		for name := range keys.names {
			nameOwners[name] = append(nameOwners[name], keys.entry.Nutrient.String())
		}
		for id := range keys.ids {
			idOwners[id] = append(idOwners[id], keys.entry.Nutrient.String())
		}
	}

	var overlaps []string
	for name, owners := range nameOwners {
		if len(owners) > 1 {
			overlaps = append(overlaps, fmt.Sprintf("name %q: %s", name, strings.Join(owners, ", ")))
		}
	}
	for id, owners := range idOwners {
		if len(owners) > 1 {
			overlaps = append(overlaps, fmt.Sprintf("id %d: %s", id, strings.Join(owners, ", ")))
		}
	}
	sort.Strings(overlaps)
	return overlaps
}
