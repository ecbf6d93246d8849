package analytics

import (
	"testing"

	"github.com/Yashika2244-hub/fraud-detection-api/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakdown_EmptyView(t *testing.T) {
	b := Breakdown(nil)
	assert.Empty(t, b.LabelCounts)
	assert.Empty(t, b.FraudByGender)
	assert.Empty(t, b.TopMerchantsByCount)
}

func TestBreakdown_GroupCounts(t *testing.T) {
	rs := dataset.New("amount", "fraud_classification", "gender", "card_brand", "card_type", "use_chip", "AgeGroup", "hour", "merchant_id")
	rows := []dataset.Row{
		{"amount": 100.0, "fraud_classification": "Fraud", "gender": "Female", "card_brand": "Visa", "card_type": "Credit", "use_chip": "Chip Transaction", "AgeGroup": "26-35", "hour": int64(2), "merchant_id": int64(1)},
		{"amount": 300.0, "fraud_classification": "Fraud", "gender": "Female", "card_brand": "Amex", "card_type": "Debit", "use_chip": "Online Transaction", "AgeGroup": "26-35", "hour": int64(2), "merchant_id": int64(1)},
		{"amount": 50.0, "fraud_classification": "Fraud", "gender": "Male", "card_brand": "Visa", "card_type": "Credit", "use_chip": "Chip Transaction", "AgeGroup": "36-45", "hour": int64(14), "merchant_id": int64(2)},
		{"amount": 10.0, "fraud_classification": "Non-Fraud", "gender": "Male", "card_brand": "Visa", "card_type": "Credit", "use_chip": "Chip Transaction", "AgeGroup": "36-45", "hour": int64(9), "merchant_id": int64(2)},
	}
	for _, r := range rows {
		rs.Append(r)
	}

	b := Breakdown(rs)

	assert.Equal(t, map[string]int{"Fraud": 3, "Non-Fraud": 1}, b.LabelCounts)
	assert.Equal(t, 2, b.FraudByGender["Female"])
	assert.Equal(t, 1, b.FraudByGender["Male"])
	assert.Equal(t, 2, b.FraudByCardBrand["Visa"])
	assert.Equal(t, 2, b.FraudByHour[int64(2)])
	assert.Equal(t, 1, b.FraudByHour[int64(14)])

	require.Len(t, b.TopMerchantsByCount, 2)
	assert.Equal(t, "1", b.TopMerchantsByCount[0].MerchantID)
	assert.Equal(t, 2, b.TopMerchantsByCount[0].Count)

	require.Len(t, b.TopMerchantsByValue, 2)
	assert.Equal(t, "1", b.TopMerchantsByValue[0].MerchantID)
	assert.Equal(t, 400.0, b.TopMerchantsByValue[0].Amount)
}
