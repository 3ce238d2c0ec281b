package handler

import (
	"net/http"
	"strconv"

	"github.com/neuronest/neuronest/internal/service"

	"github.com/gin-gonic/gin"
)

type InsightsHandler struct {
	insightsService *service.InsightsService
}

func NewInsightsHandler(insightsService *service.InsightsService) *InsightsHandler {
	return &InsightsHandler{insightsService: insightsService}
}

// Get handles GET /insights?period_days=.
func (h *InsightsHandler) Get(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	periodDays, err := strconv.Atoi(c.DefaultQuery("period_days", "30"))
	if err != nil || periodDays < 1 {
		periodDays = 30
	}

	insights, err := h.insightsService.Compute(user.ID, periodDays)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Could not generate growth insights.",
		})
		return
	}

	c.JSON(http.StatusOK, insights)
}
