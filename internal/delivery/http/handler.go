package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/macrolens/foodscore/internal/domain"
	"github.com/macrolens/foodscore/internal/infrastructure/dataset"
	"github.com/macrolens/foodscore/internal/usecase"
	"go.uber.org/zap"
)

// Version is reported by the health check
const Version = "1.0.0"

// maxDocumentSize bounds POSTed Foundation Foods documents
const maxDocumentSize = 64 << 20

// Handler holds dependencies for HTTP handlers
type Handler struct {
	pipeline *usecase.Pipeline
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(pipeline *usecase.Pipeline, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{pipeline: pipeline, logger: logger}
}

// ScoreDocumentResponse is returned when scoring a posted document
type ScoreDocumentResponse struct {
	Skipped int                      `json:"skipped"`
	Scores  []domain.FoodScoreRecord `json:"scores"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "foodscore",
		"version": Version,
	})
}

// LatestScores returns the most recent pipeline run
func (h *Handler) LatestScores(c *gin.Context) {
	run, err := h.pipeline.Latest()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

// SearchScores returns records of the latest run whose food name contains
// the food query parameter (case-insensitive)
func (h *Handler) SearchScores(c *gin.Context) {
	query := strings.TrimSpace(c.Query("food"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'food' is required"})
		return
	}

	run, err := h.pipeline.Latest()
	if err != nil {
		h.respondError(c, err)
		return
	}

	needle := strings.ToLower(query)
	matches := make([]domain.FoodScoreRecord, 0)
	for _, r := range run.Records {
		if strings.Contains(strings.ToLower(r.Food), needle) {
			matches = append(matches, r)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"runId":  run.ID,
		"query":  query,
		"scores": matches,
	})
}

// ScoreDocument scores a posted Foundation Foods document without
// persisting the result
func (h *Handler) ScoreDocument(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxDocumentSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	ds, err := dataset.Decode(body, h.logger)
	if err != nil {
		h.respondError(c, err)
		return
	}

	records, err := h.pipeline.Scorer().ScoreFoods(c.Request.Context(), ds.Foods)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ScoreDocumentResponse{Skipped: ds.Skipped, Scores: records})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNoScores):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInputEmpty), errors.Is(err, domain.ErrInputMalformed):
		status = http.StatusBadRequest
	default:
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
