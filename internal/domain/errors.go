package domain

import "errors"

var (
	// ErrInputMissing is returned when the dataset source does not exist
	ErrInputMissing = errors.New("input dataset not found")

	// ErrInputEmpty is returned when the dataset source has no content
	ErrInputEmpty = errors.New("input dataset is empty")

	// ErrInputMalformed is returned when the dataset is not a valid JSON document
	ErrInputMalformed = errors.New("input dataset is malformed")

	// ErrOutputWrite is returned when score records cannot be persisted
	ErrOutputWrite = errors.New("failed to write score records")

	// ErrFoodNotFound is returned when a food cannot be found in the USDA database
	ErrFoodNotFound = errors.New("food not found in USDA database")

	// ErrUSDAAPIFailure is returned when a USDA API request fails
	ErrUSDAAPIFailure = errors.New("USDA API request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidSynonymTable is returned when a synonym table cannot be built
	ErrInvalidSynonymTable = errors.New("invalid nutrient synonym table")

	// ErrNoScores is returned when no scoring run has completed yet
	ErrNoScores = errors.New("no scores available")
)
