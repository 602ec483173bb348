package usecase

import (
	"context"
	"strings"

	"github.com/macrolens/foodscore/internal/domain"
	"go.uber.org/zap"
)

// ScoringServiceConfig holds configuration for the scoring service
type ScoringServiceConfig struct {
	// TraceMatch enables step-by-step debug traces for foods whose
	// description contains it (case-insensitive). Empty disables tracing.
	TraceMatch string
}

// ScoringService resolves and scores food items against a synonym table
type ScoringService struct {
	table      *domain.SynonymTable
	traceMatch string
	logger     *zap.Logger
}

// NewScoringService creates a new scoring service
func NewScoringService(table *domain.SynonymTable, config ScoringServiceConfig, logger *zap.Logger) *ScoringService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ScoringService{
		table:      table,
		traceMatch: strings.ToLower(strings.TrimSpace(config.TraceMatch)),
		logger:     logger,
	}
}

// ScoreFood resolves a food's nutrients and scores it
func (s *ScoringService) ScoreFood(food domain.FoundationFood) domain.FoodScoreRecord {
	observations := food.Observations()
	profile := Resolve(observations, s.table)
	record := Score(profile, food.Description)

	if s.shouldTrace(food.Description) {
		s.trace(food, observations, profile, record)
	}

	return record
}

// ScoreFoods scores foods in input order
func (s *ScoringService) ScoreFoods(ctx context.Context, foods []domain.FoundationFood) ([]domain.FoodScoreRecord, error) {
	records := make([]domain.FoodScoreRecord, 0, len(foods))

	for _, food := range foods {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		records = append(records, s.ScoreFood(food))
	}

	return records, nil
}

func (s *ScoringService) shouldTrace(foodName string) bool {
	if s.traceMatch == "" {
		return false
	}
	return strings.Contains(strings.ToLower(foodName), s.traceMatch)
}

// trace only observes; it must not influence the record.
func (s *ScoringService) trace(
	food domain.FoundationFood,
	observations []domain.RawNutrientObservation,
	profile domain.NutrientProfile,
	record domain.FoodScoreRecord,
) {
	log := s.logger.With(zap.String("food", food.Description))

	log.Debug("tracing food", zap.Int("observations", len(observations)))

	for _, obs := range observations {
		nutrient, ok := s.table.Match(obs.Name, obs.ID)
		if !ok {
			continue
		}
		log.Debug("matched nutrient",
			zap.String("name", obs.Name),
			zap.Int("id", obs.ID),
			zap.Stringer("category", nutrient),
			zap.Float64("amount", obs.Amount))
	}

	calories, estimated := EffectiveCalories(profile)
	log.Debug("resolved profile",
		zap.Float64("protein", profile.Protein),
		zap.Float64("fiber", profile.Fiber),
		zap.Float64("saturatedFat", profile.SaturatedFat),
		zap.Float64("totalFat", profile.TotalFat),
		zap.Float64("carbohydrates", profile.Carbohydrates),
		zap.Float64("declaredCalories", profile.Calories),
		zap.Float64("calories", calories),
		zap.Bool("caloriesEstimated", estimated))

	log.Debug("scored food",
		zap.Float64("proteinScore", record.ProteinScore),
		zap.Float64("fiberScore", record.FiberScore),
		zap.Float64("saturatedFatScore", record.SaturatedFatScore),
		zap.Float64("totalScore", record.TotalScore))
}
