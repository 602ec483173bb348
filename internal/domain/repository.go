package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching raw payloads
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// USDAClient defines the interface for interacting with USDA FoodData Central API
type USDAClient interface {
	GetFood(ctx context.Context, fdcID string) (*FoundationFood, error)
}

// DatasetSource supplies the food items to score.
// Load fails with ErrInputMissing, ErrInputEmpty or ErrInputMalformed.
type DatasetSource interface {
	Load(ctx context.Context) (*FoundationDataset, error)
	Name() string
}

// ScoreWriter persists score records. Write fails with ErrOutputWrite.
type ScoreWriter interface {
	Write(ctx context.Context, records []FoodScoreRecord) error
}
