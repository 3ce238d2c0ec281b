package testutil

import (
	"context"
	"time"

	"github.com/neuronest/neuronest/internal/ai"
	"github.com/neuronest/neuronest/internal/models"
	"github.com/neuronest/neuronest/internal/utils"

	"github.com/google/uuid"
)

// CreateTestUser builds a user with a hashed password.
func CreateTestUser(username, password string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// CreateTestThought builds a thought at growth stage 0 created now.
func CreateTestThought(userID uuid.UUID, content string, mood models.Mood) *models.Thought {
	return CreateTestThoughtAt(userID, content, mood, time.Now().UTC())
}

// CreateTestThoughtAt builds a thought with a specific creation time, for
// period and trend tests.
func CreateTestThoughtAt(userID uuid.UUID, content string, mood models.Mood, createdAt time.Time) *models.Thought {
	return &models.Thought{
		ID:            uuid.New(),
		Content:       content,
		Mood:          mood,
		GrowthStage:   0,
		CreatedAt:     createdAt,
		LastWateredAt: createdAt,
		UserID:        userID,
	}
}

// StubGenerator implements ai.Generator with a canned reply, recording every
// request it receives.
type StubGenerator struct {
	Response string
	Err      error
	Requests []ai.GenerateRequest
}

func (g *StubGenerator) Generate(_ context.Context, req ai.GenerateRequest) (string, error) {
	g.Requests = append(g.Requests, req)
	if g.Err != nil {
		return "", g.Err
	}
	return g.Response, nil
}
