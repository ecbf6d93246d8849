package views

import (
	"github.com/Yashika2244-hub/fraud-detection-api/internal/dataset"
)

// Table is the JSON rendering of a row-set.
type Table struct {
	Columns  []string      `json:"columns"`
	Rows     []dataset.Row `json:"rows"`
	RowCount int           `json:"rowCount"`
}

func TableFrom(rs *dataset.RowSet) Table {
	if rs == nil {
		return Table{Columns: []string{}, Rows: []dataset.Row{}}
	}
	t := Table{
		Columns:  rs.Columns,
		Rows:     rs.Rows,
		RowCount: rs.Len(),
	}
	if t.Columns == nil {
		t.Columns = []string{}
	}
	if t.Rows == nil {
		t.Rows = []dataset.Row{}
	}
	return t
}

// QueryRequest is the body of the ad-hoc query endpoint.
type QueryRequest struct {
	Query string `json:"query" binding:"required"`
}
