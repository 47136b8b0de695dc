package usecase

import (
	"context"

	"journal/internal/domain/entity"

	"github.com/google/uuid"
)

// AnalyticsUsecase computes journaling statistics over a consistent snapshot
// of one user's entries. An empty window covers the whole history.
type AnalyticsUsecase interface {
	Dashboard(ctx context.Context, userID uuid.UUID, window entity.DateRange) (*entity.DashboardAnalytics, error)
	Streak(ctx context.Context, userID uuid.UUID) (*entity.StreakInfo, error)
	MoodDistribution(ctx context.Context, userID uuid.UUID, window entity.DateRange) ([]entity.MoodDistribution, error)
	MostFrequentMood(ctx context.Context, userID uuid.UUID, window entity.DateRange) (string, error)
	MostUsedTags(ctx context.Context, userID uuid.UUID, count int, window entity.DateRange) ([]entity.TagUsage, error)
	WordCountTrends(ctx context.Context, userID uuid.UUID, window entity.DateRange) ([]entity.WordCountTrend, error)
}
