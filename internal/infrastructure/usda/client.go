package usda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/macrolens/foodscore/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	maxAttempts      = 3
	maxResponseBytes = 10 << 20
	defaultCacheTTL  = 720 * time.Hour
	defaultTimeout   = 30 * time.Second
)

// ClientConfig holds configuration for the USDA client
type ClientConfig struct {
	APIKey   string
	BaseURL  string
	Cache    domain.CacheRepository // optional
	CacheTTL time.Duration
	Timeout  time.Duration
}

// Client handles communication with the USDA FoodData Central API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	cache       domain.CacheRepository
	cacheTTL    time.Duration
	backoff     func(attempt int) time.Duration
	logger      *zap.Logger
}

// NewClient creates a new USDA API client
func NewClient(config ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	cacheTTL := config.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	// USDA allows 1000 requests per hour
	// rate.Limit is requests per second, so 1000/3600 ≈ 0.278 requests/sec
	limiter := rate.NewLimiter(rate.Limit(1000.0/3600.0), 10)

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		apiKey:      config.APIKey,
		baseURL:     config.BaseURL,
		rateLimiter: limiter,
		cache:       config.Cache,
		cacheTTL:    cacheTTL,
		backoff:     exponentialBackoff,
		logger:      logger,
	}
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// GetFood retrieves a food with its full nutrient list by FDC ID.
// Transport errors, 429 and 5xx responses are retried; 404 maps to
// ErrFoodNotFound and other client errors fail immediately.
func (c *Client) GetFood(ctx context.Context, fdcID string) (*domain.FoundationFood, error) {
	cacheKey := "usda:food:" + fdcID
	if food, ok := c.fromCache(ctx, cacheKey); ok {
		c.logger.Debug("food served from cache", zap.String("fdcId", fdcID))
		return food, nil
	}

	params := url.Values{}
	params.Add("api_key", c.apiKey)
	params.Add("format", "full")
	reqURL := fmt.Sprintf("%s/v1/food/%s?%s", c.baseURL, url.PathEscape(fdcID), params.Encode())
	if _, err := url.Parse(reqURL); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, c.backoff(attempt-1)); err != nil {
				return nil, err
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		body, status, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn("request failed", zap.String("fdcId", fdcID), zap.Int("attempt", attempt), zap.Error(err))
			lastErr = err
			continue
		}

		switch {
		case status == http.StatusOK:
			food, err := decodeFood(body)
			if err != nil {
				return nil, err
			}
			c.toCache(ctx, cacheKey, body)
			return food, nil
		case status == http.StatusNotFound:
			return nil, fmt.Errorf("%w: fdcId %s", domain.ErrFoodNotFound, fdcID)
		case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
			c.logger.Warn("retryable API error",
				zap.String("fdcId", fdcID), zap.Int("attempt", attempt), zap.Int("status", status))
			lastErr = fmt.Errorf("%w: status %d", domain.ErrUSDAAPIFailure, status)
		default:
			return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrUSDAAPIFailure, status, string(body))
		}
	}

	c.logger.Error("all retries failed", zap.String("fdcId", fdcID), zap.Error(lastErr))
	return nil, lastErr
}

// doRequest executes an HTTP GET request and returns the (size limited) body
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "foodscore/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrUSDAAPIFailure, err)
	}
	defer resp.Body.Close()

	body, err := readLimitedBody(resp.Body, maxResponseBytes)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: reading body: %v", domain.ErrUSDAAPIFailure, err)
	}
	return body, resp.StatusCode, nil
}

func (c *Client) fromCache(ctx context.Context, key string) (*domain.FoundationFood, bool) {
	if c.cache == nil {
		return nil, false
	}
	body, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	food, err := decodeFood(body)
	if err != nil {
		_ = c.cache.Delete(ctx, key)
		return nil, false
	}
	return food, true
}

func (c *Client) toCache(ctx context.Context, key string, body []byte) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, key, body, c.cacheTTL); err != nil {
		c.logger.Warn("failed to cache food", zap.String("key", key), zap.Error(err))
	}
}

func decodeFood(body []byte) (*domain.FoundationFood, error) {
	var resp foodResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	food := MapToFoundationFood(&resp)
	return &food, nil
}

func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
