package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/neuronest/neuronest/internal/models"
	"github.com/neuronest/neuronest/internal/service"
	"github.com/neuronest/neuronest/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ThoughtHandler struct {
	thoughtService *service.ThoughtService
}

func NewThoughtHandler(thoughtService *service.ThoughtService) *ThoughtHandler {
	return &ThoughtHandler{thoughtService: thoughtService}
}

type CreateThoughtRequest struct {
	Content string      `json:"content" binding:"required"`
	Mood    models.Mood `json:"mood" binding:"required"`
}

// Create handles POST /thoughts.
func (h *ThoughtHandler) Create(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateThoughtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	thought, err := h.thoughtService.Create(user.ID, req.Content, req.Mood)
	if err != nil {
		var vErr service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Could not create thought due to a server error.",
		})
		return
	}

	c.JSON(http.StatusCreated, thought)
}

// List handles GET /thoughts?skip=&limit=.
func (h *ThoughtHandler) List(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	thoughts, err := h.thoughtService.List(user.ID, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Could not retrieve thoughts due to a server error.",
		})
		return
	}

	c.JSON(http.StatusOK, thoughts)
}

// Water handles PUT /thoughts/:id/water. Malformed and foreign ids both read
// as not found, so callers cannot probe other users' thoughts.
func (h *ThoughtHandler) Water(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	thoughtID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Thought not found"})
		return
	}

	thought, err := h.thoughtService.Water(user.ID, thoughtID)
	if err != nil {
		if errors.Is(err, service.ErrThoughtNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Thought not found"})
			return
		}

		logger.Log.Error("Watering failed",
			zap.String("thought_id", thoughtID.String()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Could not water thought due to a server error.",
		})
		return
	}

	c.JSON(http.StatusOK, thought)
}
