package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Yashika2244-hub/fraud-detection-api/internal/dataset"
	"github.com/Yashika2244-hub/fraud-detection-api/internal/repositories"
	"github.com/Yashika2244-hub/fraud-detection-api/pkg"
	"go.uber.org/zap"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// readOnlyVerbs are the statement prefixes accepted on the ad-hoc query
// endpoint. The source is a read-only boundary; everything else is rejected
// before it reaches the database.
var readOnlyVerbs = []string{"SELECT", "SHOW", "WITH", "DESCRIBE", "DESC", "EXPLAIN"}

// CatalogService serves raw-table browsing and ad-hoc queries.
type CatalogService interface {
	Tables(ctx context.Context, traceID string) ([]string, error)
	TableData(ctx context.Context, traceID, name string, limit int) (*dataset.RowSet, error)
	RunQuery(ctx context.Context, traceID, query string) (*dataset.RowSet, error)
}

type CatalogServiceImpl struct {
	logger *zap.Logger
	repo   repositories.DatasetRepository
}

func NewCatalogService(logger *zap.Logger, repo repositories.DatasetRepository) CatalogService {
	return &CatalogServiceImpl{logger: logger, repo: repo}
}

func (s *CatalogServiceImpl) Tables(ctx context.Context, traceID string) ([]string, error) {
	return s.repo.ListTables(ctx, traceID)
}

func (s *CatalogServiceImpl) TableData(ctx context.Context, traceID, name string, limit int) (*dataset.RowSet, error) {
	if !tableNamePattern.MatchString(name) {
		return nil, pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid table name", nil)
	}
	query := fmt.Sprintf("SELECT * FROM `%s`", name)
	if limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, limit)
	}
	return s.repo.FetchRowSet(ctx, traceID, query)
}

func (s *CatalogServiceImpl) RunQuery(ctx context.Context, traceID, query string) (*dataset.RowSet, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, pkg.NewAppError(pkg.ErrInvalidInputCode, "query is empty", nil)
	}
	if !isReadOnly(trimmed) {
		return nil, pkg.NewAppError(pkg.ErrInvalidInputCode, "only read-only statements are allowed", pkg.ErrReadOnlyQueries)
	}
	s.logger.Info("running ad-hoc query", zap.String(pkg.TraceId, traceID), zap.Int("length", len(trimmed)))
	return s.repo.FetchRowSet(ctx, traceID, trimmed)
}

func isReadOnly(query string) bool {
	upper := strings.ToUpper(query)
	for _, verb := range readOnlyVerbs {
		if strings.HasPrefix(upper, verb+" ") || upper == verb {
			return true
		}
	}
	return false
}
