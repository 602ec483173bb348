package usda

import (
	"context"
	"errors"
	"fmt"

	"github.com/macrolens/foodscore/internal/domain"
	"go.uber.org/zap"
)

// Source loads a dataset by fetching foods from FoodData Central
type Source struct {
	client domain.USDAClient
	fdcIDs []string
	logger *zap.Logger
}

// NewSource creates a dataset source for the given FDC IDs
func NewSource(client domain.USDAClient, fdcIDs []string, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{
		client: client,
		fdcIDs: append([]string(nil), fdcIDs...),
		logger: logger,
	}
}

// Name describes the source
func (s *Source) Name() string {
	return fmt.Sprintf("usda:%d foods", len(s.fdcIDs))
}

// Load fetches every configured food in order. Foods that cannot be fetched
// are skipped; ErrInputMissing is returned when none could be.
func (s *Source) Load(ctx context.Context) (*domain.FoundationDataset, error) {
	if len(s.fdcIDs) == 0 {
		return nil, fmt.Errorf("%w: no FDC IDs configured", domain.ErrInputEmpty)
	}

	dataset := &domain.FoundationDataset{
		Foods: make([]domain.FoundationFood, 0, len(s.fdcIDs)),
	}

	for _, id := range s.fdcIDs {
		food, err := s.client.GetFood(ctx, id)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			s.logger.Warn("skipping food", zap.String("fdcId", id), zap.Error(err))
			dataset.Skipped++
			continue
		}
		dataset.Foods = append(dataset.Foods, *food)
	}

	if len(dataset.Foods) == 0 {
		return nil, fmt.Errorf("%w: no foods retrieved from USDA", domain.ErrInputMissing)
	}

	s.logger.Info("fetched foods", zap.Int("foods", len(dataset.Foods)), zap.Int("skipped", dataset.Skipped))
	return dataset, nil
}
