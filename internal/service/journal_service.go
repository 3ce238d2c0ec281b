package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/neuronest/neuronest/internal/ai"
	"github.com/neuronest/neuronest/internal/models"
	"github.com/neuronest/neuronest/internal/repository"
	"github.com/neuronest/neuronest/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrAINotConfigured means no upstream API credential was provided at startup.
var ErrAINotConfigured = errors.New("AI service unavailable: client not configured")

// UpstreamFormatError means the upstream model replied with something other
// than the strict JSON shape we asked for. The full raw text is logged; only
// a truncated excerpt travels in the error.
type UpstreamFormatError struct {
	Excerpt string
}

func (e *UpstreamFormatError) Error() string {
	return fmt.Sprintf("AI service returned an invalid format. Raw start: %q", e.Excerpt)
}

const (
	summaryModel       = "claude-3-5-sonnet-20240620"
	summaryMaxTokens   = 2000
	summaryTemperature = 0.7
	summaryPeriodDays  = 7
	summaryEntryCap    = 50

	recommendMaxTokens   = 1000
	recommendTemperature = 0.6

	rawExcerptLen = 100
)

const summarySystemPrompt = `You are an AI assistant for the NeuroNest mental wellness app. Your task is to analyze the user's provided journal entries (thoughts) from the past week and generate a supportive summary.

The entries are provided in the format: "- YYYY-MM-DD: [mood] Content of the thought"

Analyze these entries and provide a response ONLY in the following JSON format. Do not include any introductory text, closing remarks, or markdown formatting. The output must be a single, valid JSON object.

JSON Format:
{
  "summary": "A brief overall summary of the user's week based specifically on the provided entries. Mention trends or key themes observed. Use a warm and encouraging tone.",
  "insight": "Identify one key pattern or insight observed directly from the provided entries.",
  "recommendation": "Suggest one actionable, positive recommendation based on the insight. Keep it simple and encouraging.",
  "highlights": [
    {
      "date": "The date (YYYY-MM-DD) of a specific significant entry from the provided list.",
      "entry": "The exact content of that entry.",
      "comment": "A short, encouraging AI comment on that specific entry."
    }
  ]
}

Select one or two entries for the 'highlights' section. Ensure the date and entry content match the input exactly. Make the content encouraging, supportive, and focused on growth and self-compassion.`

const recommendSystemPrompt = `You are an AI assistant for the NeuroNest mental wellness app. Your task is to recommend 2-3 simple meditation, breathing, or mindfulness exercises suitable for a user feeling a specific mood.

Provide the response ONLY in the following JSON format. Do not include any introductory text, closing remarks, or markdown formatting. The output must be a single, valid JSON object.

JSON Format:
{
  "recommendations": [
    {
      "id": "unique_practice_id",
      "title": "Practice Title",
      "duration_minutes": 5,
      "description": "A brief, clear description of the practice and its benefits for the mood."
    }
  ]
}

Keep descriptions concise and encouraging. Ensure the 'id' is a simple snake_case string. Tailor the recommendations to the provided mood.`

type Highlight struct {
	Date    string `json:"date"`
	Entry   string `json:"entry"`
	Comment string `json:"comment"`
}

type JournalSummary struct {
	Summary        string      `json:"summary"`
	Insight        string      `json:"insight"`
	Recommendation string      `json:"recommendation"`
	Highlights     []Highlight `json:"highlights"`
}

type Practice struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"duration_minutes"`
	Description     string `json:"description"`
}

type Recommendations struct {
	Recommendations []Practice `json:"recommendations"`
}

// JournalService proxies journal data to the upstream language model for
// summaries and practice recommendations.
type JournalService struct {
	thoughtRepo *repository.ThoughtRepository
	generator   ai.Generator
}

// NewJournalService builds the service. generator may be nil when no upstream
// credential is configured; both operations then fail with ErrAINotConfigured.
func NewJournalService(thoughtRepo *repository.ThoughtRepository, generator ai.Generator) *JournalService {
	return &JournalService{
		thoughtRepo: thoughtRepo,
		generator:   generator,
	}
}

// Summarize generates an AI summary of the owner's last week of thoughts.
// With no entries in the period it returns a canned response without calling
// upstream.
func (s *JournalService) Summarize(ctx context.Context, ownerID uuid.UUID) (*JournalSummary, error) {
	if s.generator == nil {
		logger.Log.Warn("Summary requested but AI client is not configured")
		return nil, ErrAINotConfigured
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -summaryPeriodDays)

	thoughts, err := s.thoughtRepo.GetThoughtsForPeriod(ownerID, start, end, summaryEntryCap)
	if err != nil {
		logger.Log.Error("Failed to fetch thoughts for summary",
			zap.String("user_id", ownerID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	if len(thoughts) == 0 {
		logger.Log.Info("No thoughts in period, returning canned summary",
			zap.String("user_id", ownerID.String()),
		)
		return &JournalSummary{
			Summary:        "No journal entries found for the past week to generate a summary.",
			Insight:        "Try adding some thoughts in the Growth Space!",
			Recommendation: "Start by planting a seed about how you're feeling today.",
			Highlights:     []Highlight{},
		}, nil
	}

	userMessage := fmt.Sprintf(
		"Here are my journal entries from the past week:\n%s\n\nPlease generate the journal summary based only on these entries.",
		formatEntries(thoughts),
	)

	text, err := s.generator.Generate(ctx, ai.GenerateRequest{
		Model:       summaryModel,
		MaxTokens:   summaryMaxTokens,
		Temperature: summaryTemperature,
		System:      summarySystemPrompt,
		UserMessage: userMessage,
	})
	if err != nil {
		return nil, s.upstreamError("summary", err)
	}

	var result JournalSummary
	if err := parseStrictJSON(text, &result, "summary", "insight", "recommendation", "highlights"); err != nil {
		logger.Log.Error("Failed to parse AI summary response",
			zap.Error(err),
			zap.String("raw_response", text),
		)
		return nil, &UpstreamFormatError{Excerpt: truncate(text, rawExcerptLen)}
	}
	if result.Highlights == nil {
		logger.Log.Error("AI summary highlights is not a list",
			zap.String("raw_response", text),
		)
		return nil, &UpstreamFormatError{Excerpt: truncate(text, rawExcerptLen)}
	}

	logger.Log.Info("Journal summary generated",
		zap.String("user_id", ownerID.String()),
		zap.Int("entries", len(thoughts)),
	)

	return &result, nil
}

// Recommend asks the upstream model for 2-3 short practices tailored to a
// free-text mood.
func (s *JournalService) Recommend(ctx context.Context, mood string) (*Recommendations, error) {
	if s.generator == nil {
		logger.Log.Warn("Recommendations requested but AI client is not configured")
		return nil, ErrAINotConfigured
	}

	mood = strings.ToLower(strings.TrimSpace(mood))

	text, err := s.generator.Generate(ctx, ai.GenerateRequest{
		Model:       summaryModel,
		MaxTokens:   recommendMaxTokens,
		Temperature: recommendTemperature,
		System:      recommendSystemPrompt,
		UserMessage: fmt.Sprintf("Recommend 2-3 practices for someone feeling: %s", mood),
	})
	if err != nil {
		return nil, s.upstreamError("recommendations", err)
	}

	var result Recommendations
	if err := parseStrictJSON(text, &result, "recommendations"); err != nil {
		logger.Log.Error("Failed to parse AI recommendations response",
			zap.Error(err),
			zap.String("raw_response", text),
		)
		return nil, &UpstreamFormatError{Excerpt: truncate(text, rawExcerptLen)}
	}
	if result.Recommendations == nil {
		logger.Log.Error("AI recommendations key is not a list",
			zap.String("raw_response", text),
		)
		return nil, &UpstreamFormatError{Excerpt: truncate(text, rawExcerptLen)}
	}

	logger.Log.Info("Practice recommendations generated",
		zap.String("mood", mood),
		zap.Int("count", len(result.Recommendations)),
	)

	return &result, nil
}

// upstreamError logs and passes through typed upstream failures; anything
// else is reported generically so internal detail stays out of responses.
func (s *JournalService) upstreamError(op string, err error) error {
	var apiErr *ai.APIError
	if errors.As(err, &apiErr) {
		logger.Log.Error("Upstream AI error",
			zap.String("operation", op),
			zap.Int("status", apiErr.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}
	if errors.Is(err, ai.ErrNoContent) {
		logger.Log.Error("Upstream AI returned no text content",
			zap.String("operation", op),
		)
		return &UpstreamFormatError{Excerpt: ""}
	}

	logger.Log.Error("Unexpected error calling upstream AI",
		zap.String("operation", op),
		zap.Error(err),
	)
	return fmt.Errorf("AI service error while generating %s", op)
}

// formatEntries renders thoughts as "- YYYY-MM-DD: [mood] content" lines,
// oldest first so the model reads them in chronological order.
func formatEntries(thoughts []models.Thought) string {
	lines := make([]string, 0, len(thoughts))
	for i := len(thoughts) - 1; i >= 0; i-- {
		t := thoughts[i]
		lines = append(lines, fmt.Sprintf("- %s: [%s] %s", t.CreatedAt.Format("2006-01-02"), t.Mood, t.Content))
	}
	return strings.Join(lines, "\n")
}

// parseStrictJSON decodes text into out and verifies every required top-level
// key is present.
func parseStrictJSON(text string, out interface{}, requiredKeys ...string) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return err
	}
	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			return fmt.Errorf("missing required key %q in AI response", key)
		}
	}
	return json.Unmarshal([]byte(text), out)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
