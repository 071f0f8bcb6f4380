package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"travelrec/internal/model"
	"travelrec/internal/service"
)

// RecommendationHandler handles recommendation HTTP requests
type RecommendationHandler struct {
	evaluator service.Evaluator
	logger    zerolog.Logger
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(evaluator service.Evaluator, logger zerolog.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		evaluator: evaluator,
		logger:    logger,
	}
}

// Recommend handles POST /api/v1/recommendations
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req model.RecommendationRequest
	// an empty body is a missing query, not malformed JSON
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request: " + err.Error()})
		return
	}
	h.respond(c, req.Query)
}

// RecommendQuery handles GET /api/v1/recommendations?q=...
func (h *RecommendationHandler) RecommendQuery(c *gin.Context) {
	var req model.RecommendationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request: " + err.Error()})
		return
	}
	h.respond(c, req.Query)
}

func (h *RecommendationHandler) respond(c *gin.Context, query string) {
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Query is required"})
		return
	}

	resp := h.evaluator.Evaluate(c.Request.Context(), query)

	logger := h.logger.With().Str("request_id", c.GetString(requestIDKey)).Logger()
	if !resp.Success {
		logger.Warn().Str("query", query).Str("error", resp.Error).Msg("Recommendation failed")
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	logger.Info().
		Str("query", query).
		Str("category", resp.Category).
		Int("count", resp.Count).
		Int("alternatives", len(resp.Alternatives)).
		Msg("Recommendation served")
	c.JSON(http.StatusOK, resp)
}
