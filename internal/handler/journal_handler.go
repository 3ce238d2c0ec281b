package handler

import (
	"errors"
	"net/http"

	"github.com/neuronest/neuronest/internal/ai"
	"github.com/neuronest/neuronest/internal/service"
	"github.com/neuronest/neuronest/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type JournalHandler struct {
	journalService *service.JournalService
}

func NewJournalHandler(journalService *service.JournalService) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

type SummaryRequest struct {
	Period string `json:"period"`
}

// Summary handles POST /journal/summary.
func (h *JournalHandler) Summary(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	logger.Log.Info("Journal summary requested",
		zap.String("user_id", user.ID.String()),
		zap.String("period", req.Period),
	)

	summary, err := h.journalService.Summarize(c.Request.Context(), user.ID)
	if err != nil {
		respondAIError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

type RecommendationRequest struct {
	Mood string `json:"mood" binding:"required"`
}

// Recommendations handles POST /mindspace/recommendations.
func (h *JournalHandler) Recommendations(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	logger.Log.Info("Mindspace recommendations requested",
		zap.String("user_id", user.ID.String()),
		zap.String("mood", req.Mood),
	)

	recs, err := h.journalService.Recommend(c.Request.Context(), req.Mood)
	if err != nil {
		respondAIError(c, err)
		return
	}

	c.JSON(http.StatusOK, recs)
}

// respondAIError maps AI-proxy failures to status codes: 503 when the client
// is unconfigured, 502 for upstream failures and malformed replies, 500 for
// everything unexpected.
func respondAIError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrAINotConfigured) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "AI Service Unavailable: Client not configured.",
		})
		return
	}

	var apiErr *ai.APIError
	if errors.As(err, &apiErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Error()})
		return
	}

	var formatErr *service.UpstreamFormatError
	if errors.As(err, &formatErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": formatErr.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "An unexpected error occurred while contacting the AI service.",
	})
}
