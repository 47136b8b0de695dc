package impl

import (
	"context"
	"log/slog"
	"time"

	"journal/internal/domain/analytics"
	"journal/internal/domain/entity"
	"journal/internal/domain/repository"
	"journal/internal/domain/service"
	logs "journal/internal/infra/log"
	"journal/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// analyticsService implements the AnalyticsUsecase interface.
type analyticsService struct {
	txManager repository.TransactionManager
	clock     service.Clock
	logger    *slog.Logger
}

// AnalyticsServiceParams holds dependencies for AnalyticsService, injected by Fx.
type AnalyticsServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Clock     service.Clock
	Logger    *slog.Logger
}

// NewAnalyticsService is the constructor for analyticsService.
func NewAnalyticsService(params AnalyticsServiceParams) usecase.AnalyticsUsecase {
	return &analyticsService{
		txManager: params.TxManager,
		clock:     params.Clock,
		logger:    params.Logger,
	}
}

func (srv *analyticsService) log(ctx context.Context) *slog.Logger {
	return logs.FromContext(ctx, srv.logger)
}

// snapshot is everything the analytics views read, loaded in one transaction.
type snapshot struct {
	window  []*entity.Entry
	history []time.Time
	today   time.Time
}

func (srv *analyticsService) load(ctx context.Context, userID uuid.UUID, window entity.DateRange, withHistory bool) (*snapshot, error) {
	snap := &snapshot{today: entity.NormalizeDate(srv.clock.Now().UTC())}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		entryRepo := repoFactory.NewEntryRepository()

		entries, err := entryRepo.QueryByUser(ctx, userID, repository.EntryFilter{DateRange: window.Normalized()})
		if err != nil {
			return err
		}
		snap.window = entries

		if withHistory {
			snap.history, err = entryRepo.ListEntryDates(ctx, userID)
		}

		return err
	})
	if err != nil {
		return nil, logStoreFault(ctx, srv.logger, err, "load analytics snapshot")
	}

	return snap, nil
}

// Dashboard composes every view. The streak and the first/last entry dates
// always cover the whole history.
func (srv *analyticsService) Dashboard(ctx context.Context, userID uuid.UUID, window entity.DateRange) (*entity.DashboardAnalytics, error) {
	snap, err := srv.load(ctx, userID, window, true)
	if err != nil {
		return nil, err
	}

	dashboard := analytics.Dashboard(snap.window, snap.history, snap.today)
	srv.log(ctx).Debug("Dashboard computed",
		slog.Any("user_id", userID),
		slog.Int("entries", dashboard.TotalEntries),
		slog.Int("current_streak", dashboard.StreakInfo.CurrentStreak),
	)

	return &dashboard, nil
}

func (srv *analyticsService) Streak(ctx context.Context, userID uuid.UUID) (*entity.StreakInfo, error) {
	var dates []time.Time
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		dates, err = repoFactory.NewEntryRepository().ListEntryDates(ctx, userID)

		return err
	})
	if err != nil {
		return nil, logStoreFault(ctx, srv.logger, err, "compute streak")
	}

	info := analytics.Streak(dates, entity.NormalizeDate(srv.clock.Now().UTC()))

	return &info, nil
}

func (srv *analyticsService) MoodDistribution(ctx context.Context, userID uuid.UUID, window entity.DateRange) ([]entity.MoodDistribution, error) {
	snap, err := srv.load(ctx, userID, window, false)
	if err != nil {
		return nil, err
	}

	return analytics.MoodDistribution(snap.window), nil
}

// MostFrequentMood returns "" when the window holds no entries.
func (srv *analyticsService) MostFrequentMood(ctx context.Context, userID uuid.UUID, window entity.DateRange) (string, error) {
	snap, err := srv.load(ctx, userID, window, false)
	if err != nil {
		return "", err
	}

	mood, _ := analytics.MostFrequentMood(snap.window)

	return mood, nil
}

// MostUsedTags ranks tags by usage. A count below one uses the default of ten.
func (srv *analyticsService) MostUsedTags(ctx context.Context, userID uuid.UUID, count int, window entity.DateRange) ([]entity.TagUsage, error) {
	snap, err := srv.load(ctx, userID, window, false)
	if err != nil {
		return nil, err
	}

	return analytics.TagUsage(snap.window, count), nil
}

func (srv *analyticsService) WordCountTrends(ctx context.Context, userID uuid.UUID, window entity.DateRange) ([]entity.WordCountTrend, error) {
	snap, err := srv.load(ctx, userID, window, false)
	if err != nil {
		return nil, err
	}

	return analytics.WordCountTrend(snap.window), nil
}
