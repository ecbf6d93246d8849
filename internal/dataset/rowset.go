package dataset

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Row maps column name to a scalar value: string, float64, int64, time.Time or nil.
type Row map[string]any

// RowSet is an ordered collection of uniformly-shaped rows returned by a query.
// It is created fresh per query and never mutated after the consuming step.
type RowSet struct {
	Columns []string
	Rows    []Row
}

func New(columns ...string) *RowSet {
	return &RowSet{Columns: columns}
}

func (rs *RowSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rows)
}

func (rs *RowSet) Empty() bool {
	return rs.Len() == 0
}

func (rs *RowSet) HasColumn(name string) bool {
	if rs == nil {
		return false
	}
	for _, c := range rs.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Append adds a row. The caller is responsible for keeping the column set uniform.
func (rs *RowSet) Append(r Row) {
	rs.Rows = append(rs.Rows, r)
}

// Float coerces a cell value to float64. Returns false for nil and for values
// with no numeric reading.
func Float(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) {
			return 0, false
		}
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case []byte:
		f, err := strconv.ParseFloat(string(x), 64)
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// String coerces a cell value to its string form. Returns false for nil.
func String(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case []byte:
		return string(x), true
	case time.Time:
		return x.Format(time.RFC3339), true
	default:
		return fmt.Sprintf("%v", x), true
	}
}
