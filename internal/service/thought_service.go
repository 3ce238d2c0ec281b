package service

import (
	"errors"
	"strings"
	"time"

	"github.com/neuronest/neuronest/internal/models"
	"github.com/neuronest/neuronest/internal/repository"
	"github.com/neuronest/neuronest/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrThoughtNotFound = errors.New("thought not found")
	ErrEmptyContent    = ValidationError("content must not be empty")
	ErrInvalidMood     = ValidationError("mood must be one of: positive, neutral, negative")
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

type ThoughtService struct {
	thoughtRepo *repository.ThoughtRepository
}

func NewThoughtService(thoughtRepo *repository.ThoughtRepository) *ThoughtService {
	return &ThoughtService{thoughtRepo: thoughtRepo}
}

// Create plants a new thought seed at growth stage 0 with both timestamps set
// to now.
func (s *ThoughtService) Create(ownerID uuid.UUID, content string, mood models.Mood) (*models.Thought, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if !mood.IsValid() {
		return nil, ErrInvalidMood
	}

	now := time.Now().UTC()
	thought := &models.Thought{
		ID:            uuid.New(),
		Content:       content,
		Mood:          mood,
		GrowthStage:   0,
		CreatedAt:     now,
		LastWateredAt: now,
		UserID:        ownerID,
	}

	if err := s.thoughtRepo.CreateThought(thought); err != nil {
		logger.Log.Error("Failed to create thought",
			zap.String("user_id", ownerID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Thought created",
		zap.String("thought_id", thought.ID.String()),
		zap.String("user_id", ownerID.String()),
		zap.String("mood", string(mood)),
	)

	return thought, nil
}

// List returns the owner's thoughts, newest first.
func (s *ThoughtService) List(ownerID uuid.UUID, skip, limit int) ([]models.Thought, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	thoughts, err := s.thoughtRepo.GetThoughtsByOwner(ownerID, skip, limit)
	if err != nil {
		logger.Log.Error("Failed to list thoughts",
			zap.String("user_id", ownerID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return thoughts, nil
}

// Water advances a thought's growth stage by one, capped at the flowering
// stage, and refreshes last_watered_at. Thoughts owned by other users are
// indistinguishable from absent ones.
func (s *ThoughtService) Water(ownerID, thoughtID uuid.UUID) (*models.Thought, error) {
	thought, err := s.thoughtRepo.WaterThought(ownerID, thoughtID)
	if err != nil {
		logger.Log.Error("Failed to water thought",
			zap.String("thought_id", thoughtID.String()),
			zap.String("user_id", ownerID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if thought == nil {
		logger.Log.Warn("Thought not found for watering",
			zap.String("thought_id", thoughtID.String()),
			zap.String("user_id", ownerID.String()),
		)
		return nil, ErrThoughtNotFound
	}

	logger.Log.Info("Thought watered",
		zap.String("thought_id", thought.ID.String()),
		zap.Int("growth_stage", thought.GrowthStage),
	)

	return thought, nil
}
