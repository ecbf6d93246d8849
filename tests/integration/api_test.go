package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Yashika2244-hub/fraud-detection-api/app"
	"github.com/Yashika2244-hub/fraud-detection-api/configs"
	"github.com/Yashika2244-hub/fraud-detection-api/internal/dataset"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSource replaces the MySQL-backed repository with canned row-sets so the
// full HTTP surface can be exercised without a database.
type fakeSource struct {
	lastQuery string
}

func (f *fakeSource) FetchRowSet(_ context.Context, _, query string) (*dataset.RowSet, error) {
	f.lastQuery = query
	rs := dataset.New("id", "amount")
	rs.Append(dataset.Row{"id": int64(1), "amount": "$1,200.50"})
	rs.Append(dataset.Row{"id": int64(2), "amount": "$15.75"})
	return rs, nil
}

func (f *fakeSource) ListTables(_ context.Context, _ string) ([]string, error) {
	return []string{"cards", "merchants", "transaction", "user"}, nil
}

func (f *fakeSource) FetchSource(_ context.Context, _ string) (dataset.MergeInput, error) {
	return sourceFixture(), nil
}

// sourceFixture builds a small but fully joined data set: six transactions,
// one with an unparseable amount that the cleaning step drops.
func sourceFixture() dataset.MergeInput {
	tx := dataset.New("id", "client_id", "merchant_id", "card_id", "amount", "date", "fraud_classification")
	rows := []dataset.Row{
		{"id": int64(1), "client_id": int64(1), "merchant_id": int64(10), "card_id": int64(100), "amount": "$1,200.50", "date": "2019-03-05 14:30:00", "fraud_classification": "Fraud"},
		{"id": int64(2), "client_id": int64(1), "merchant_id": int64(10), "card_id": int64(100), "amount": "$15.75", "date": "2019-03-06 02:10:00", "fraud_classification": "Non-Fraud"},
		{"id": int64(3), "client_id": int64(2), "merchant_id": int64(11), "card_id": int64(101), "amount": "$980.00", "date": "2019-04-01 09:00:00", "fraud_classification": "Fraud"},
		{"id": int64(4), "client_id": int64(2), "merchant_id": int64(11), "card_id": int64(101), "amount": "$20.00", "date": "2020-01-15 18:45:00", "fraud_classification": "Non-Fraud"},
		{"id": int64(5), "client_id": int64(1), "merchant_id": int64(11), "card_id": int64(100), "amount": "N/A", "date": "2019-05-05 10:00:00", "fraud_classification": "Non-Fraud"},
		{"id": int64(6), "client_id": int64(2), "merchant_id": int64(10), "card_id": int64(101), "amount": "$42.10", "date": "2019-06-20 22:05:00", "fraud_classification": "Non-Fraud"},
	}
	for _, r := range rows {
		tx.Append(r)
	}

	users := dataset.New("id", "gender", "AgeGroup")
	users.Append(dataset.Row{"id": int64(1), "gender": "Female", "AgeGroup": "26-35"})
	users.Append(dataset.Row{"id": int64(2), "gender": "Male", "AgeGroup": "36-45"})

	merchants := dataset.New("merchant_id", "merchant_state")
	merchants.Append(dataset.Row{"merchant_id": int64(10), "merchant_state": "CA"})
	merchants.Append(dataset.Row{"merchant_id": int64(11), "merchant_state": "NY"})

	cards := dataset.New("card_id", "card_brand")
	cards.Append(dataset.Row{"card_id": int64(100), "card_brand": "Visa"})
	cards.Append(dataset.Row{"card_id": int64(101), "card_brand": "Mastercard"})

	return dataset.MergeInput{Transactions: tx, Users: users, Merchants: merchants, Cards: cards}
}

func startServer(t *testing.T) (*httptest.Server, *fakeSource) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &fakeSource{}
	cfg := &configs.Config{
		Port:          "0",
		QueryRowLimit: 100,
		ExportDir:     t.TempDir(),
	}
	srv := app.NewServer(zap.NewNop(), cfg, repo)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts, repo
}

func getJSON(t *testing.T, url string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body), "body: %s", raw)
	return resp, body
}

func dataOf(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "missing data envelope in %v", body)
	return data
}

func TestHealth(t *testing.T) {
	ts, _ := startServer(t)
	resp, body := getJSON(t, ts.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestTraceHeader(t *testing.T) {
	ts, _ := startServer(t)

	// generated when absent
	resp, err := http.Get(ts.URL + "/api/v1/dashboard/summary")
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("X-Trace-Id"))

	// echoed when supplied
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/dashboard/summary", nil)
	require.NoError(t, err)
	req.Header.Set("X-Trace-Id", "trace-abc")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "trace-abc", resp.Header.Get("X-Trace-Id"))
}

func TestDashboardSummary(t *testing.T) {
	ts, _ := startServer(t)
	resp, body := getJSON(t, ts.URL+"/api/v1/dashboard/summary")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	summary := dataOf(t, body)["summary"].(map[string]interface{})
	assert.EqualValues(t, 5, summary["totalTransactions"]) // row with amount "N/A" is dropped
	assert.EqualValues(t, 2258.35, summary["totalAmount"])
	assert.EqualValues(t, 2, summary["totalFraudTransactions"])
	assert.EqualValues(t, 2180.5, summary["totalFraudAmount"])
}

func TestDashboardSummary_Idempotent(t *testing.T) {
	ts, _ := startServer(t)
	_, first := getJSON(t, ts.URL+"/api/v1/dashboard/summary")
	_, second := getJSON(t, ts.URL+"/api/v1/dashboard/summary")
	// trace ids differ per request; the payload must not
	assert.Equal(t, first["data"], second["data"])
}

func TestDashboardSummary_Filtered(t *testing.T) {
	ts, _ := startServer(t)
	resp, body := getJSON(t, ts.URL+"/api/v1/dashboard/summary?year=2019&gender=Female")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	summary := dataOf(t, body)["summary"].(map[string]interface{})
	assert.EqualValues(t, 2, summary["totalTransactions"])
	assert.EqualValues(t, 1216.25, summary["totalAmount"])
}

func TestDashboardSummary_BadMonth(t *testing.T) {
	ts, _ := startServer(t)
	resp, body := getJSON(t, ts.URL+"/api/v1/dashboard/summary?month=13")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "APP_INVALID_INPUT", body["code"])
}

func TestDashboardFilters(t *testing.T) {
	ts, _ := startServer(t)
	resp, body := getJSON(t, ts.URL+"/api/v1/dashboard/filters")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	filters := dataOf(t, body)["filters"].(map[string]interface{})
	assert.ElementsMatch(t, []interface{}{2019.0, 2020.0}, filters["years"])
	assert.ElementsMatch(t, []interface{}{"Female", "Male"}, filters["genders"])
}

func TestDashboardBreakdowns(t *testing.T) {
	ts, _ := startServer(t)
	resp, body := getJSON(t, ts.URL+"/api/v1/dashboard/breakdowns")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	breakdowns := dataOf(t, body)["breakdowns"].(map[string]interface{})
	labels := breakdowns["labelCounts"].(map[string]interface{})
	assert.EqualValues(t, 2, labels["Fraud"])
	assert.EqualValues(t, 3, labels["Non-Fraud"])
}

func TestAnalyticsStatistics(t *testing.T) {
	ts, _ := startServer(t)
	resp, body := getJSON(t, ts.URL+"/api/v1/analytics/statistics")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	comparison := dataOf(t, body)["comparison"].(map[string]interface{})
	fraud := comparison["fraud"].(map[string]interface{})
	assert.EqualValues(t, 2, fraud["count"])
}

func TestAnalyticsOutliers_IQR(t *testing.T) {
	ts, _ := startServer(t)
	resp, body := getJSON(t, ts.URL+"/api/v1/analytics/outliers?method=iqr")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// amounts [15.75, 20, 42.10, 980, 1200.50]: fences at the default
	// multiplier are wide enough that nothing is flagged
	data := dataOf(t, body)
	assert.EqualValues(t, 0, data["totalCount"])
}

func TestAnalyticsOutliers_ThresholdOutOfRange(t *testing.T) {
	ts, _ := startServer(t)
	resp, body := getJSON(t, ts.URL+"/api/v1/analytics/outliers?method=zscore&threshold=10")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "APP_INVALID_INPUT", body["code"])
}

func TestReportsList(t *testing.T) {
	ts, _ := startServer(t)
	resp, body := getJSON(t, ts.URL+"/api/v1/reports")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	reports := dataOf(t, body)["reports"].([]interface{})
	assert.Len(t, reports, 12)
}

func TestRunReport(t *testing.T) {
	ts, repo := startServer(t)
	resp, body := getJSON(t, ts.URL+"/api/v1/reports/monthly_fraud_trend")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, repo.lastQuery, "DATE_FORMAT")

	result := dataOf(t, body)["result"].(map[string]interface{})
	assert.EqualValues(t, 2, result["rowCount"])
}

func TestRunReport_Unknown(t *testing.T) {
	ts, _ := startServer(t)
	resp, body := getJSON(t, ts.URL+"/api/v1/reports/no_such_report")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "APP_NOT_FOUND", body["code"])
}

func TestListTables(t *testing.T) {
	ts, _ := startServer(t)
	resp, body := getJSON(t, ts.URL+"/api/v1/tables")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.ElementsMatch(t,
		[]interface{}{"cards", "merchants", "transaction", "user"},
		dataOf(t, body)["tables"])
}

func TestGetTable_AppliesLimit(t *testing.T) {
	ts, repo := startServer(t)
	resp, _ := getJSON(t, ts.URL+"/api/v1/tables/transaction?limit=25")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "SELECT * FROM `transaction` LIMIT 25", repo.lastQuery)
}

func TestGetTable_BadName(t *testing.T) {
	ts, _ := startServer(t)
	resp, body := getJSON(t, ts.URL+"/api/v1/tables/transaction;drop")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "APP_INVALID_INPUT", body["code"])
}

func TestAdHocQuery(t *testing.T) {
	ts, _ := startServer(t)

	resp, body := postJSON(t, ts.URL+"/api/v1/query", map[string]string{"query": "SELECT id FROM transaction"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := dataOf(t, body)["result"].(map[string]interface{})
	assert.EqualValues(t, 2, result["rowCount"])
}

func TestAdHocQuery_RejectsWrites(t *testing.T) {
	ts, _ := startServer(t)
	resp, body := postJSON(t, ts.URL+"/api/v1/query", map[string]string{"query": "DELETE FROM transaction"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "APP_INVALID_INPUT", body["code"])
}

func TestExports(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schema.sql"), []byte("CREATE TABLE t (id INT);"), 0o644))

	srv := app.NewServer(zap.NewNop(), &configs.Config{Port: "0", QueryRowLimit: 100, ExportDir: dir}, &fakeSource{})
	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	resp, body := getJSON(t, ts.URL+"/api/v1/exports")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	files := dataOf(t, body)["files"].([]interface{})
	require.Len(t, files, 1)
	file := files[0].(map[string]interface{})
	assert.Equal(t, "schema.sql", file["name"])
	assert.Equal(t, "text/plain", file["contentType"])

	// bytes pass through unchanged
	dl, err := http.Get(ts.URL + "/api/v1/exports/schema.sql")
	require.NoError(t, err)
	defer dl.Body.Close()
	raw, err := io.ReadAll(dl.Body)
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE t (id INT);", string(raw))

	missing, err := http.Get(ts.URL + "/api/v1/exports/nope.pdf")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func postJSON(t *testing.T, url string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &body), "body: %s", out)
	return resp, body
}
