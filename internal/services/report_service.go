package services

import (
	"context"
	"fmt"

	"github.com/Yashika2244-hub/fraud-detection-api/internal/dataset"
	"github.com/Yashika2244-hub/fraud-detection-api/internal/reports"
	"github.com/Yashika2244-hub/fraud-detection-api/internal/repositories"
	"github.com/Yashika2244-hub/fraud-detection-api/pkg"
	"go.uber.org/zap"
)

// ReportService runs the canned report catalog.
type ReportService interface {
	List() []reports.Report
	Run(ctx context.Context, traceID string, id reports.ID) (reports.Report, *dataset.RowSet, error)
}

type ReportServiceImpl struct {
	logger *zap.Logger
	repo   repositories.DatasetRepository
}

func NewReportService(logger *zap.Logger, repo repositories.DatasetRepository) ReportService {
	return &ReportServiceImpl{logger: logger, repo: repo}
}

func (s *ReportServiceImpl) List() []reports.Report {
	return reports.Catalog()
}

func (s *ReportServiceImpl) Run(ctx context.Context, traceID string, id reports.ID) (reports.Report, *dataset.RowSet, error) {
	report, ok := reports.Lookup(id)
	if !ok {
		return reports.Report{}, nil, pkg.NewAppError(pkg.ErrRecordNotFoundCode, fmt.Sprintf("unknown report %q", id), nil)
	}
	rs, err := s.repo.FetchRowSet(ctx, traceID, report.Query)
	if err != nil {
		return report, nil, err
	}
	s.logger.Debug("report executed",
		zap.String(pkg.TraceId, traceID),
		zap.String("report", string(id)),
		zap.Int("rows", rs.Len()),
	)
	return report, rs, nil
}
