package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/macrolens/foodscore/internal/domain"
	"go.uber.org/zap"
)

// PipelineConfig holds configuration for the scoring pipeline
type PipelineConfig struct {
	// SampleSize is the number of records logged after each run
	SampleSize int
}

// Pipeline loads a dataset, scores every food and writes the results.
// Flow: load -> score in input order -> write -> log sample
type Pipeline struct {
	source     domain.DatasetSource
	writer     domain.ScoreWriter
	scorer     *ScoringService
	sampleSize int
	logger     *zap.Logger
	now        func() time.Time

	mu     sync.RWMutex
	latest *domain.ScoreRun
}

// NewPipeline creates a new pipeline with dependencies
func NewPipeline(
	source domain.DatasetSource,
	writer domain.ScoreWriter,
	scorer *ScoringService,
	config PipelineConfig,
	logger *zap.Logger,
) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	sampleSize := config.SampleSize
	if sampleSize < 0 {
		sampleSize = 0
	}

	return &Pipeline{
		source:     source,
		writer:     writer,
		scorer:     scorer,
		sampleSize: sampleSize,
		logger:     logger,
		now:        time.Now,
	}
}

// Run executes the pipeline once.
//
// Input errors stop the run before anything is scored or written. A write
// error is returned together with the completed run, which also becomes the
// latest run.
func (p *Pipeline) Run(ctx context.Context) (*domain.ScoreRun, error) {
	run := &domain.ScoreRun{
		ID:        uuid.NewString(),
		Source:    p.source.Name(),
		StartedAt: p.now(),
	}
	log := p.logger.With(zap.String("runId", run.ID), zap.String("source", run.Source))

	dataset, err := p.source.Load(ctx)
	if err != nil {
		log.Error("failed to load dataset", zap.Error(err))
		return nil, fmt.Errorf("load dataset from %s: %w", run.Source, err)
	}

	if dataset.Skipped > 0 {
		log.Warn("skipped undecodable food items", zap.Int("skipped", dataset.Skipped))
	}

	records, err := p.scorer.ScoreFoods(ctx, dataset.Foods)
	if err != nil {
		return nil, err
	}

	run.Records = records
	run.Skipped = dataset.Skipped
	run.FinishedAt = p.now()

	p.mu.Lock()
	p.latest = run
	p.mu.Unlock()

	log.Info("scored foods",
		zap.Int("foods", len(records)),
		zap.Int("skipped", run.Skipped),
		zap.Duration("elapsed", run.FinishedAt.Sub(run.StartedAt)))

	var writeErr error
	if err := p.writer.Write(ctx, records); err != nil {
		log.Error("failed to save scores", zap.Error(err))
		writeErr = err
	} else {
		log.Info("scores saved", zap.Int("records", len(records)))
	}

	p.logSample(log, records)

	return run, writeErr
}

// Latest returns the most recent completed run
func (p *Pipeline) Latest() (*domain.ScoreRun, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.latest == nil {
		return nil, domain.ErrNoScores
	}
	return p.latest, nil
}

// Scorer returns the scoring service used by the pipeline
func (p *Pipeline) Scorer() *ScoringService {
	return p.scorer
}

func (p *Pipeline) logSample(log *zap.Logger, records []domain.FoodScoreRecord) {
	n := min(p.sampleSize, len(records))
	for i, r := range records[:n] {
		log.Info("sample score",
			zap.Int("index", i),
			zap.String("food", r.Food),
			zap.Float64("totalScore", r.TotalScore),
			zap.Float64("proteinScore", r.ProteinScore),
			zap.Float64("fiberScore", r.FiberScore),
			zap.Float64("saturatedFatScore", r.SaturatedFatScore))
	}
}
