package synonyms

import "github.com/macrolens/foodscore/internal/domain"

// USDA FoodData Central nutrient IDs
const (
	NutrientIDProtein              = 1003 // Protein (g)
	NutrientIDTotalFat             = 1004 // Total lipid (fat) (g)
	NutrientIDCarbohydrate         = 1005 // Carbohydrate, by difference (g)
	NutrientIDEnergy               = 1008 // Energy (kcal)
	NutrientIDCarbohydrateSum      = 1050 // Carbohydrate, by summation (g)
	NutrientIDFiber                = 1079 // Fiber, total dietary (g)
	NutrientIDTotalFatNLEA         = 1085 // Total fat (NLEA) (g)
	NutrientIDSaturatedFat         = 1258 // Fatty acids, total saturated (g)
	NutrientIDEnergyAtwaterGeneral = 2047 // Energy (Atwater General Factors) (kcal)
	NutrientIDEnergyAtwaterSpecial = 2048 // Energy (Atwater Specific Factors) (kcal)
)

// defaultEntries is the built-in table, evaluated top to bottom
var defaultEntries = []domain.SynonymEntry{
	{
		Nutrient: domain.NutrientProtein,
		Names:    []string{"Protein"},
		IDs:      []int{NutrientIDProtein},
	},
	{
		Nutrient: domain.NutrientFiber,
		Names:    []string{"Fiber, total dietary", "Total dietary fiber (AOAC 2011.25)"},
		IDs:      []int{NutrientIDFiber},
	},
	{
		Nutrient: domain.NutrientSaturatedFat,
		Names:    []string{"Fatty acids, total saturated"},
		IDs:      []int{NutrientIDSaturatedFat},
	},
	{
		Nutrient: domain.NutrientTotalFat,
		Names:    []string{"Total lipid (fat)", "Total fat (NLEA)"},
		IDs:      []int{NutrientIDTotalFat, NutrientIDTotalFatNLEA},
	},
	{
		Nutrient: domain.NutrientCarbohydrates,
		Names:    []string{"Carbohydrate, by difference", "Carbohydrate, by summation"},
		IDs:      []int{NutrientIDCarbohydrate, NutrientIDCarbohydrateSum},
	},
	{
		Nutrient: domain.NutrientCalories,
		Names:    []string{"Energy", "Energy (Atwater General Factors)", "Energy (Atwater Specific Factors)"},
		IDs:      []int{NutrientIDEnergy, NutrientIDEnergyAtwaterGeneral, NutrientIDEnergyAtwaterSpecial},
	},
}

// Default returns the built-in synonym table
func Default() *domain.SynonymTable {
	table, err := domain.NewSynonymTable(defaultEntries)
	if err != nil {
		panic("synonyms: invalid built-in table: " + err.Error())
	}
	return table
}
