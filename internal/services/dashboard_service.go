package services

import (
	"context"

	"github.com/Yashika2244-hub/fraud-detection-api/internal/analytics"
	"github.com/Yashika2244-hub/fraud-detection-api/internal/dataset"
	"github.com/Yashika2244-hub/fraud-detection-api/internal/repositories"
	"github.com/Yashika2244-hub/fraud-detection-api/pkg"
	"go.uber.org/zap"
)

// DashboardService backs the KPI page. Each call re-fetches and re-derives
// the merged view from scratch; nothing is cached between requests.
type DashboardService interface {
	Summary(ctx context.Context, traceID string, f analytics.Filter) (analytics.Summary, error)
	Filters(ctx context.Context, traceID string) (analytics.FilterOptions, error)
	Breakdowns(ctx context.Context, traceID string) (analytics.Breakdowns, error)
}

type DashboardServiceImpl struct {
	logger *zap.Logger
	repo   repositories.DatasetRepository
}

func NewDashboardService(logger *zap.Logger, repo repositories.DatasetRepository) DashboardService {
	return &DashboardServiceImpl{logger: logger, repo: repo}
}

func (s *DashboardServiceImpl) Summary(ctx context.Context, traceID string, f analytics.Filter) (analytics.Summary, error) {
	view, err := s.mergedView(ctx, traceID)
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Summarize(view, f), nil
}

func (s *DashboardServiceImpl) Filters(ctx context.Context, traceID string) (analytics.FilterOptions, error) {
	view, err := s.mergedView(ctx, traceID)
	if err != nil {
		return analytics.FilterOptions{}, err
	}
	return analytics.Options(view), nil
}

func (s *DashboardServiceImpl) Breakdowns(ctx context.Context, traceID string) (analytics.Breakdowns, error) {
	view, err := s.mergedView(ctx, traceID)
	if err != nil {
		return analytics.Breakdowns{}, err
	}
	return analytics.Breakdown(view), nil
}

func (s *DashboardServiceImpl) mergedView(ctx context.Context, traceID string) (*dataset.RowSet, error) {
	in, err := s.repo.FetchSource(ctx, traceID)
	if err != nil {
		return nil, err
	}
	view, err := dataset.Merge(in)
	if err != nil {
		s.logger.Warn("merge failed", zap.String(pkg.TraceId, traceID), zap.Error(err))
		return nil, pkg.NewAppError(pkg.ErrDataShapeCode, "merging source tables failed", err)
	}
	return view, nil
}
