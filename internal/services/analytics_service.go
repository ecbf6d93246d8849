package services

import (
	"context"
	"fmt"

	"github.com/Yashika2244-hub/fraud-detection-api/internal/analytics"
	"github.com/Yashika2244-hub/fraud-detection-api/internal/dataset"
	"github.com/Yashika2244-hub/fraud-detection-api/internal/repositories"
	"github.com/Yashika2244-hub/fraud-detection-api/pkg"
	"go.uber.org/zap"
)

// AnalyticsService runs the statistical comparator and the anomaly detectors
// over a freshly assembled merged view.
type AnalyticsService interface {
	Statistics(ctx context.Context, traceID string) (analytics.Comparison, error)
	Outliers(ctx context.Context, traceID string, method analytics.Method, param float64) (*analytics.Detection, error)
}

type AnalyticsServiceImpl struct {
	logger *zap.Logger
	repo   repositories.DatasetRepository
}

func NewAnalyticsService(logger *zap.Logger, repo repositories.DatasetRepository) AnalyticsService {
	return &AnalyticsServiceImpl{logger: logger, repo: repo}
}

func (s *AnalyticsServiceImpl) Statistics(ctx context.Context, traceID string) (analytics.Comparison, error) {
	view, err := s.mergedView(ctx, traceID)
	if err != nil {
		return analytics.Comparison{}, err
	}
	return analytics.Compare(view), nil
}

func (s *AnalyticsServiceImpl) Outliers(ctx context.Context, traceID string, method analytics.Method, param float64) (*analytics.Detection, error) {
	if err := validateDetector(method, param); err != nil {
		return nil, err
	}
	view, err := s.mergedView(ctx, traceID)
	if err != nil {
		return nil, err
	}
	switch method {
	case analytics.MethodZScore:
		return analytics.DetectZScore(view, param)
	default:
		return analytics.DetectIQR(view, param)
	}
}

func validateDetector(method analytics.Method, param float64) error {
	switch method {
	case analytics.MethodZScore:
		if param < pkg.ZScoreThresholdMin || param > pkg.ZScoreThresholdMax {
			return pkg.NewAppError(pkg.ErrInvalidInputCode,
				fmt.Sprintf("z-score threshold must be between %.1f and %.1f", pkg.ZScoreThresholdMin, pkg.ZScoreThresholdMax), nil)
		}
	case analytics.MethodIQR:
		if param < pkg.IQRMultiplierMin || param > pkg.IQRMultiplierMax {
			return pkg.NewAppError(pkg.ErrInvalidInputCode,
				fmt.Sprintf("IQR multiplier must be between %.1f and %.1f", pkg.IQRMultiplierMin, pkg.IQRMultiplierMax), nil)
		}
	default:
		return pkg.NewAppError(pkg.ErrInvalidInputCode, fmt.Sprintf("unknown detection method %q", method), nil)
	}
	return nil
}

func (s *AnalyticsServiceImpl) mergedView(ctx context.Context, traceID string) (*dataset.RowSet, error) {
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
