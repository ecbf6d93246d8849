// Package reports holds the closed set of canned analytics queries. Each
// report carries its fixed SQL text so the supported set is checked at build
// time rather than by string lookup.
package reports

// ID names one canned report.
type ID string

const (
	AllTransactions      ID = "all_transactions"
	FraudTransactions    ID = "fraud_transactions"
	FraudByMerchantState ID = "fraud_by_merchant_state"
	FraudByMerchantID    ID = "fraud_by_merchant_id"
	FraudByGender        ID = "fraud_by_gender"
	MonthlyFraudTrend    ID = "monthly_fraud_trend"
	FraudByAgeGroup      ID = "fraud_by_age_group"
	TopClientsByFraud    ID = "top_clients_by_fraud"
	MovingAverage        ID = "moving_average"
	TimeOfDayCategory    ID = "time_of_day_category"
	TopFraudCardBrand    ID = "top_fraud_card_brand"
	TopErrorUsers        ID = "top_error_users"
)

// Report pairs an ID with its title and query text.
type Report struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
	Query string `json:"-"`
}

var catalog = []Report{
	{
		ID:    AllTransactions,
		Title: "Show all transactions",
		Query: `SELECT * FROM transaction LIMIT 100`,
	},
	{
		ID:    FraudTransactions,
		Title: "Fraud transactions",
		Query: `SELECT * FROM transaction WHERE fraud_classification = 'Fraud' LIMIT 100`,
	},
	{
		ID:    FraudByMerchantState,
		Title: "Fraud amount by merchant state",
		Query: `SELECT m.merchant_state, SUM(t.amount) AS fraud_cases
FROM transaction t
JOIN merchants m ON t.merchant_id = m.merchant_id
WHERE t.fraud_classification = 'Fraud'
GROUP BY m.merchant_state
ORDER BY fraud_cases DESC
LIMIT 10`,
	},
	{
		ID:    FraudByMerchantID,
		Title: "Fraud amount by merchant",
		Query: `SELECT m.merchant_id, SUM(t.amount) AS total
FROM merchants m
JOIN transaction t ON m.merchant_id = t.merchant_id
WHERE fraud_classification = 'Fraud'
GROUP BY m.merchant_id
ORDER BY total DESC
LIMIT 10`,
	},
	{
		ID:    FraudByGender,
		Title: "Fraud cases by gender",
		Query: `SELECT u.gender, COUNT(t.id) AS fraud_cases
FROM transaction t
JOIN user u ON t.client_id = u.id
WHERE t.fraud_classification = 'Fraud'
GROUP BY u.gender`,
	},
	{
		ID:    MonthlyFraudTrend,
		Title: "Monthly fraud trend",
		Query: `SELECT DATE_FORMAT(date, '%M') AS month, SUM(amount) AS fraud_amount
FROM transaction
WHERE fraud_classification = 'Fraud' AND DATE_FORMAT(date, '%M') IS NOT NULL
GROUP BY month
ORDER BY fraud_amount DESC`,
	},
	{
		ID:    FraudByAgeGroup,
		Title: "Fraud transactions by age group",
		Query: `SELECT u.AgeGroup, SUM(t.amount) AS fraud_amount
FROM transaction t
JOIN user u ON u.id = t.client_id
WHERE t.fraud_classification = 'Fraud'
GROUP BY u.AgeGroup
ORDER BY fraud_amount DESC`,
	},
	{
		ID:    TopClientsByFraud,
		Title: "Top clients by fraud amount (ranking)",
		Query: `SELECT client_id, SUM(amount) AS total_fraud,
RANK() OVER (ORDER BY SUM(amount) DESC) AS ranking
FROM transaction
WHERE fraud_classification = 'Fraud'
GROUP BY client_id`,
	},
	{
		ID:    MovingAverage,
		Title: "Moving average of fraud transactions",
		Query: `SELECT id, client_id, amount, fraud_classification,
AVG(amount) OVER (PARTITION BY client_id ORDER BY date ROWS BETWEEN 2 PRECEDING AND CURRENT ROW) AS moving_avg
FROM transaction`,
	},
	{
		ID:    TimeOfDayCategory,
		Title: "Fraud detection by transaction time",
		Query: `SELECT id, client_id, amount, DATE_FORMAT(date, '%H:%i:%s') AS transaction_time,
CASE
    WHEN HOUR(date) BETWEEN 0 AND 6 THEN 'Late Night'
    WHEN HOUR(date) BETWEEN 7 AND 12 THEN 'Morning'
    WHEN HOUR(date) BETWEEN 13 AND 18 THEN 'Afternoon'
    ELSE 'Evening'
END AS time_category
FROM transaction`,
	},
	{
		ID:    TopFraudCardBrand,
		Title: "Card brand with most fraud transactions",
		Query: `SELECT card_brand FROM cards
WHERE id = (
    SELECT card_id FROM transaction
    WHERE fraud_classification = 'Fraud'
    GROUP BY card_id
    ORDER BY COUNT(id) DESC
    LIMIT 1
)`,
	},
	{
		ID:    TopErrorUsers,
		Title: "Top users with most transaction errors",
		Query: `SELECT u.id AS user_id, u.creditscorecategory, COUNT(t.errors) AS total_errors
FROM transaction t
JOIN user u ON t.client_id = u.id
WHERE t.errors IS NOT NULL
GROUP BY u.id, u.creditscorecategory
ORDER BY total_errors DESC
LIMIT 10`,
	},
}

// Catalog returns the reports in their fixed presentation order.
func Catalog() []Report {
	out := make([]Report, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup resolves an ID against the catalog.
func Lookup(id ID) (Report, bool) {
	for _, r := range catalog {
		if r.ID == id {
			return r, true
		}
	}
	return Report{}, false
}
