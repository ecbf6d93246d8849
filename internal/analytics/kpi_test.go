package analytics

import (
	"testing"
	"time"

	"github.com/Yashika2244-hub/fraud-detection-api/internal/dataset"
	"github.com/stretchr/testify/assert"
)

func kpiView() *dataset.RowSet {
	rs := dataset.New("client_id", "amount", "date", "fraud_classification", "gender", "hour")
	rows := []dataset.Row{
		{"client_id": int64(1), "amount": 100.10, "date": time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), "fraud_classification": "Non-Fraud", "gender": "Female"},
		{"client_id": int64(2), "amount": 250.25, "date": time.Date(2024, 2, 6, 11, 0, 0, 0, time.UTC), "fraud_classification": "Fraud", "gender": "Male"},
		{"client_id": int64(3), "amount": 400.40, "date": time.Date(2025, 1, 7, 12, 0, 0, 0, time.UTC), "fraud_classification": "Fraud", "gender": "Female"},
	}
	for _, r := range rows {
		rs.Append(r)
	}
	return rs
}

func TestSummarize_EmptyViewYieldsZeros(t *testing.T) {
	s := Summarize(dataset.New("amount"), Filter{})
	assert.Equal(t, Summary{}, s)

	s = Summarize(nil, Filter{})
	assert.Equal(t, 0, s.TotalTransactions)
	assert.Equal(t, 0.0, s.TotalAmount)
	assert.Equal(t, 0, s.TotalFraudTransactions)
	assert.Equal(t, 0.0, s.TotalFraudAmount)
}

func TestSummarize_Totals(t *testing.T) {
	s := Summarize(kpiView(), Filter{})

	assert.Equal(t, 3, s.TotalTransactions)
	assert.Equal(t, 750.75, s.TotalAmount)
	assert.Equal(t, 2, s.TotalFraudTransactions)
	assert.Equal(t, 650.65, s.TotalFraudAmount)
}

func TestSummarize_Filters(t *testing.T) {
	view := kpiView()

	byYear := Summarize(view, Filter{Year: 2024})
	assert.Equal(t, 2, byYear.TotalTransactions)
	assert.Equal(t, 1, byYear.TotalFraudTransactions)

	byMonth := Summarize(view, Filter{Year: 2024, Month: 2})
	assert.Equal(t, 1, byMonth.TotalTransactions)
	assert.Equal(t, 250.25, byMonth.TotalAmount)

	byGender := Summarize(view, Filter{Gender: "Female"})
	assert.Equal(t, 2, byGender.TotalTransactions)
	assert.Equal(t, 400.40, byGender.TotalFraudAmount)

	// "All" sentinel behaves like no filter
	all := Summarize(view, Filter{Gender: "All"})
	assert.Equal(t, 3, all.TotalTransactions)
}

func TestSummarize_NullDateRowsExcludedFromTimeFilters(t *testing.T) {
	view := kpiView()
	view.Append(dataset.Row{"client_id": int64(4), "amount": 10.0, "date": nil, "fraud_classification": "Non-Fraud", "gender": "Male"})

	all := Summarize(view, Filter{})
	assert.Equal(t, 4, all.TotalTransactions)

	byYear := Summarize(view, Filter{Year: 2024})
	assert.Equal(t, 2, byYear.TotalTransactions)
}

func TestOptions_DistinctSorted(t *testing.T) {
	opts := Options(kpiView())

	assert.Equal(t, []int{2024, 2025}, opts.Years)
	assert.Equal(t, []int{1, 2}, opts.Months)
	assert.Equal(t, []string{"Female", "Male"}, opts.Genders)
}
