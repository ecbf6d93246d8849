package repositories

import (
	"context"

	"github.com/Yashika2244-hub/fraud-detection-api/internal/dataset"
	"github.com/Yashika2244-hub/fraud-detection-api/pkg"
	"github.com/Yashika2244-hub/fraud-detection-api/pkg/database"
	"go.uber.org/zap"
)

// Fixed source queries feeding the merge pipeline.
const (
	queryTransactions = `SELECT * FROM transaction`
	queryUsers        = `SELECT id, gender, AgeGroup FROM user`
	queryMerchants    = `SELECT merchant_id, merchant_state FROM merchants`
	queryCards        = `SELECT id AS card_id, card_brand FROM cards`
)

// DatasetRepository issues read-only queries against the relational source.
// Every call acquires a scoped connection and releases it before returning;
// failures surface as an empty row-set plus an error.
type DatasetRepository interface {
	// FetchRowSet runs one query and returns its rectangular result.
	FetchRowSet(ctx context.Context, traceID, query string) (*dataset.RowSet, error)
	// ListTables enumerates the table names available on the source.
	ListTables(ctx context.Context, traceID string) ([]string, error)
	// FetchSource retrieves the four row-sets the merge pipeline composes.
	FetchSource(ctx context.Context, traceID string) (dataset.MergeInput, error)
}

type DatasetRepositoryImpl struct {
	logger *zap.Logger
	conn   database.Connector
}

func NewDatasetRepository(logger *zap.Logger, conn database.Connector) DatasetRepository {
	return &DatasetRepositoryImpl{logger: logger, conn: conn}
}

func (d *DatasetRepositoryImpl) FetchRowSet(ctx context.Context, traceID, query string) (*dataset.RowSet, error) {
	db, release, err := d.conn.Acquire(ctx)
	if err != nil {
		return dataset.New(), pkg.NewAppError(pkg.ErrDBUnavailableCode, "database unreachable", err)
	}
	defer release()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return dataset.New(), pkg.HandleSQLError(traceID, d.logger, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return dataset.New(), pkg.HandleSQLError(traceID, d.logger, err)
	}

	rs := dataset.New(columns...)
	values := make([]any, len(columns))
	scanTargets := make([]any, len(columns))
	for i := range values {
		scanTargets[i] = &values[i]
	}
	for rows.Next() {
		if err = rows.Scan(scanTargets...); err != nil {
			return dataset.New(), pkg.HandleSQLError(traceID, d.logger, err)
		}
		row := make(dataset.Row, len(columns))
		for i, col := range columns {
			row[col] = normalize(values[i])
		}
		rs.Append(row)
	}
	if err = rows.Err(); err != nil {
		return dataset.New(), pkg.HandleSQLError(traceID, d.logger, err)
	}

	d.logger.Debug("row-set fetched",
		zap.String(pkg.TraceId, traceID),
		zap.Int("rows", rs.Len()),
		zap.Int("columns", len(columns)),
	)
	return rs, nil
}

func (d *DatasetRepositoryImpl) ListTables(ctx context.Context, traceID string) ([]string, error) {
	rs, err := d.FetchRowSet(ctx, traceID, "SHOW TABLES")
	if err != nil {
		return []string{}, err
	}
	tables := make([]string, 0, rs.Len())
	for _, r := range rs.Rows {
		if len(rs.Columns) == 0 {
			break
		}
		if name, ok := dataset.String(r[rs.Columns[0]]); ok {
			tables = append(tables, name)
		}
	}
	return tables, nil
}

func (d *DatasetRepositoryImpl) FetchSource(ctx context.Context, traceID string) (dataset.MergeInput, error) {
	var in dataset.MergeInput
	var err error
	if in.Transactions, err = d.FetchRowSet(ctx, traceID, queryTransactions); err != nil {
		return in, err
	}
	if in.Users, err = d.FetchRowSet(ctx, traceID, queryUsers); err != nil {
		return in, err
	}
	if in.Merchants, err = d.FetchRowSet(ctx, traceID, queryMerchants); err != nil {
		return in, err
	}
	if in.Cards, err = d.FetchRowSet(ctx, traceID, queryCards); err != nil {
		return in, err
	}
	return in, nil
}

// normalize converts driver values into the row-set scalar vocabulary.
// Text and numeric columns arrive as []byte from the MySQL driver.
func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
