package service_test

import (
	"testing"
	"time"

	"github.com/neuronest/neuronest/internal/models"
	"github.com/neuronest/neuronest/internal/repository"
	"github.com/neuronest/neuronest/internal/service"
	"github.com/neuronest/neuronest/internal/testutil"
	"github.com/neuronest/neuronest/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type InsightsServiceIntegrationTestSuite struct {
	suite.Suite
	testDB          *testutil.TestDatabase
	insightsService *service.InsightsService
	owner           *models.User
}

func (s *InsightsServiceIntegrationTestSuite) SetupSuite() {
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())
	thoughtRepo := repository.NewThoughtRepository(s.testDB.DB)
	s.insightsService = service.NewInsightsService(thoughtRepo)
}

func (s *InsightsServiceIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *InsightsServiceIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)

	owner, err := testutil.CreateTestUser("insights-owner", "OwnerPass123")
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.testDB.DB.Create(owner).Error)
	s.owner = owner
}

// addThought inserts a thought created daysAgo days in the past.
func (s *InsightsServiceIntegrationTestSuite) addThought(mood models.Mood, daysAgo int) {
	createdAt := time.Now().UTC().AddDate(0, 0, -daysAgo)
	thought := testutil.CreateTestThoughtAt(s.owner.ID, "entry", mood, createdAt)
	require.NoError(s.T(), s.testDB.DB.Create(thought).Error)
}

func (s *InsightsServiceIntegrationTestSuite) TestEmptyPeriod() {
	insights, err := s.insightsService.Compute(s.owner.ID, 30)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), 0, insights.TotalThoughts)
	assert.Equal(s.T(), service.TrendNoData, insights.RecentGrowthTrend)

	// Zero-filled distribution still carries every mood key.
	require.Len(s.T(), insights.MoodDistribution, len(models.Moods))
	for _, mood := range models.Moods {
		assert.Equal(s.T(), 0, insights.MoodDistribution[mood])
	}
}

func (s *InsightsServiceIntegrationTestSuite) TestDistributionSumsToTotal() {
	s.addThought(models.MoodPositive, 1)
	s.addThought(models.MoodPositive, 2)
	s.addThought(models.MoodNegative, 3)

	insights, err := s.insightsService.Compute(s.owner.ID, 30)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), 3, insights.TotalThoughts)
	assert.Equal(s.T(), 2, insights.MoodDistribution[models.MoodPositive])
	assert.Equal(s.T(), 0, insights.MoodDistribution[models.MoodNeutral])
	assert.Equal(s.T(), 1, insights.MoodDistribution[models.MoodNegative])

	sum := 0
	for _, count := range insights.MoodDistribution {
		sum += count
	}
	assert.Equal(s.T(), insights.TotalThoughts, sum)
}

func (s *InsightsServiceIntegrationTestSuite) TestTrendIncreasing() {
	// One entry in the first half, four in the second: 4 > 1*1.2.
	s.addThought(models.MoodNeutral, 25)
	for i := 0; i < 4; i++ {
		s.addThought(models.MoodPositive, 1)
	}

	insights, err := s.insightsService.Compute(s.owner.ID, 30)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), service.TrendIncreasing, insights.RecentGrowthTrend)
}

func (s *InsightsServiceIntegrationTestSuite) TestTrendDecreasing() {
	for i := 0; i < 4; i++ {
		s.addThought(models.MoodNegative, 25)
	}
	s.addThought(models.MoodNeutral, 1)

	insights, err := s.insightsService.Compute(s.owner.ID, 30)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), service.TrendDecreasing, insights.RecentGrowthTrend)
}

func (s *InsightsServiceIntegrationTestSuite) TestTrendStable() {
	s.addThought(models.MoodNeutral, 25)
	s.addThought(models.MoodNeutral, 1)

	insights, err := s.insightsService.Compute(s.owner.ID, 30)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), service.TrendStable, insights.RecentGrowthTrend)
}

func (s *InsightsServiceIntegrationTestSuite) TestOldEntriesExcluded() {
	s.addThought(models.MoodPositive, 45)
	s.addThought(models.MoodNeutral, 2)

	insights, err := s.insightsService.Compute(s.owner.ID, 30)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, insights.TotalThoughts)
	assert.Equal(s.T(), 0, insights.MoodDistribution[models.MoodPositive])
}

func (s *InsightsServiceIntegrationTestSuite) TestInvalidPeriodFallsBackToDefault() {
	s.addThought(models.MoodNeutral, 2)

	insights, err := s.insightsService.Compute(s.owner.ID, -5)

	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, insights.TotalThoughts)
}

func TestInsightsServiceIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(InsightsServiceIntegrationTestSuite))
}
