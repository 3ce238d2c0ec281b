package service

import (
	"time"

	"github.com/neuronest/neuronest/internal/models"
	"github.com/neuronest/neuronest/internal/repository"
	"github.com/neuronest/neuronest/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPeriodDays = 30
	insightsCap       = 1000

	TrendNoData     = "No data"
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// Insights aggregates a user's thoughts over a period.
type Insights struct {
	TotalThoughts     int                 `json:"total_thoughts"`
	MoodDistribution  map[models.Mood]int `json:"mood_distribution"`
	RecentGrowthTrend string              `json:"recent_growth_trend"`
}

type InsightsService struct {
	thoughtRepo *repository.ThoughtRepository
}

func NewInsightsService(thoughtRepo *repository.ThoughtRepository) *InsightsService {
	return &InsightsService{thoughtRepo: thoughtRepo}
}

// Compute builds mood counts and a trend label for the owner's last
// periodDays of thoughts. The trend compares entry counts on either side of
// the period midpoint; a >20% difference tips the label. It is a heuristic,
// noisy on small samples.
func (s *InsightsService) Compute(ownerID uuid.UUID, periodDays int) (*Insights, error) {
	if periodDays < 1 {
		periodDays = defaultPeriodDays
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -periodDays)

	thoughts, err := s.thoughtRepo.GetThoughtsForPeriod(ownerID, start, end, insightsCap)
	if err != nil {
		logger.Log.Error("Failed to fetch thoughts for insights",
			zap.String("user_id", ownerID.String()),
			zap.Int("period_days", periodDays),
			zap.Error(err),
		)
		return nil, err
	}

	if len(thoughts) == 0 {
		return &Insights{
			TotalThoughts:     0,
			MoodDistribution:  emptyDistribution(),
			RecentGrowthTrend: TrendNoData,
		}, nil
	}

	distribution := emptyDistribution()
	for _, t := range thoughts {
		distribution[t.Mood]++
	}

	mid := start.Add(end.Sub(start) / 2)
	firstHalf := 0
	for _, t := range thoughts {
		if t.CreatedAt.Before(mid) {
			firstHalf++
		}
	}
	secondHalf := len(thoughts) - firstHalf

	trend := TrendStable
	switch {
	case float64(secondHalf) > float64(firstHalf)*1.2:
		trend = TrendIncreasing
	case firstHalf > 0 && float64(firstHalf) > float64(secondHalf)*1.2:
		trend = TrendDecreasing
	}

	logger.Log.Info("Insights computed",
		zap.String("user_id", ownerID.String()),
		zap.Int("total", len(thoughts)),
		zap.String("trend", trend),
	)

	return &Insights{
		TotalThoughts:     len(thoughts),
		MoodDistribution:  distribution,
		RecentGrowthTrend: trend,
	}, nil
}

// emptyDistribution returns a zero count for every mood, so responses always
// carry all enumerated keys.
func emptyDistribution() map[models.Mood]int {
	dist := make(map[models.Mood]int, len(models.Moods))
	for _, mood := range models.Moods {
		dist[mood] = 0
	}
	return dist
}
