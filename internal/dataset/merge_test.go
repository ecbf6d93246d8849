package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowset(columns []string, rows ...Row) *RowSet {
	rs := New(columns...)
	for _, r := range rows {
		rs.Append(r)
	}
	return rs
}

func sourceInput() MergeInput {
	return MergeInput{
		Transactions: rowset(
			[]string{"id", "client_id", "merchant_id", "card_id", "amount", "date", "fraud_classification"},
			Row{"id": int64(1), "client_id": int64(10), "merchant_id": int64(100), "card_id": int64(7), "amount": "$1,234.56", "date": time.Date(2025, 3, 11, 14, 30, 0, 0, time.UTC), "fraud_classification": "Fraud"},
			Row{"id": int64(2), "client_id": int64(11), "merchant_id": int64(101), "card_id": int64(8), "amount": "$200", "date": time.Date(2025, 3, 12, 2, 0, 0, 0, time.UTC), "fraud_classification": "Non-Fraud"},
			Row{"id": int64(3), "client_id": int64(99), "merchant_id": int64(100), "card_id": int64(7), "amount": "N/A", "date": nil, "fraud_classification": "Non-Fraud"},
		),
		Users: rowset(
			[]string{"id", "gender", "AgeGroup"},
			Row{"id": int64(10), "gender": "Female", "AgeGroup": "26-35"},
			Row{"id": int64(11), "gender": "Male", "AgeGroup": "36-45"},
		),
		Merchants: rowset(
			[]string{"merchant_id", "merchant_state"},
			Row{"merchant_id": int64(100), "merchant_state": "CA"},
			Row{"merchant_id": int64(101), "merchant_state": "NY"},
		),
		Cards: rowset(
			[]string{"card_id", "card_brand"},
			Row{"card_id": int64(7), "card_brand": "Visa"},
			Row{"card_id": int64(8), "card_brand": "Mastercard"},
		),
	}
}

func TestCleanAmount_StripsCurrencyNoise(t *testing.T) {
	tx := rowset(
		[]string{"id", "amount"},
		Row{"id": int64(1), "amount": "$1,234.56"},
		Row{"id": int64(2), "amount": "$200"},
		Row{"id": int64(3), "amount": "N/A"},
		Row{"id": int64(4), "amount": nil},
		Row{"id": int64(5), "amount": 42.5},
	)

	out, err := CleanAmount(tx)
	require.NoError(t, err)

	// two rows dropped: unparseable text and null
	assert.Equal(t, 3, out.Len())
	assert.Equal(t, 1234.56, out.Rows[0][ColAmount])
	assert.Equal(t, 200.0, out.Rows[1][ColAmount])
	assert.Equal(t, 42.5, out.Rows[2][ColAmount])

	// input untouched
	assert.Equal(t, "$1,234.56", tx.Rows[0][ColAmount])
}

func TestCleanAmount_MissingColumnFails(t *testing.T) {
	_, err := CleanAmount(rowset([]string{"id"}, Row{"id": int64(1)}))
	require.Error(t, err)
	var mergeErr *MergeError
	assert.ErrorAs(t, err, &mergeErr)
}

func TestMerge_EmptyInputFails(t *testing.T) {
	in := sourceInput()
	in.Merchants = New("merchant_id", "merchant_state")

	view, err := Merge(in)
	require.Error(t, err)
	assert.Nil(t, view)
}

func TestMerge_JoinsAttributesAndPreservesRowCount(t *testing.T) {
	view, err := Merge(sourceInput())
	require.NoError(t, err)

	// one row dropped in cleaning ("N/A"), both survivors joined
	require.Equal(t, 2, view.Len())
	assert.Equal(t, "Female", view.Rows[0][ColGender])
	assert.Equal(t, "26-35", view.Rows[0][ColAgeGroup])
	assert.Equal(t, "CA", view.Rows[0][ColMerchantState])
	assert.Equal(t, "Visa", view.Rows[0][ColCardBrand])
	assert.Equal(t, "Mastercard", view.Rows[1][ColCardBrand])
}

func TestMerge_UnmatchedLeftRowKeepsOwnFields(t *testing.T) {
	in := sourceInput()
	in.Transactions = rowset(
		in.Transactions.Columns,
		Row{"id": int64(9), "client_id": int64(404), "merchant_id": int64(100), "card_id": int64(7), "amount": "$50", "date": nil, "fraud_classification": "Non-Fraud"},
	)

	view, err := Merge(in)
	require.NoError(t, err)
	require.Equal(t, 1, view.Len())

	r := view.Rows[0]
	assert.Equal(t, 50.0, r[ColAmount])
	assert.Nil(t, r[ColGender])
	assert.Nil(t, r[ColAgeGroup])
	assert.Equal(t, "CA", r[ColMerchantState])
}

func TestMerge_DuplicateRightHandKeyFails(t *testing.T) {
	in := sourceInput()
	in.Cards.Append(Row{"card_id": int64(7), "card_brand": "Discover"})

	view, err := Merge(in)
	require.Error(t, err)
	assert.Nil(t, view)
	assert.Contains(t, err.Error(), "duplicate key")
}

func TestMerge_DerivesHourFromTimestamp(t *testing.T) {
	view, err := Merge(sourceInput())
	require.NoError(t, err)

	assert.True(t, view.HasColumn(ColHour))
	assert.Equal(t, int64(14), view.Rows[0][ColHour])
	assert.Equal(t, int64(2), view.Rows[1][ColHour])
}

func TestMerge_UnparseableDateCoercesToNull(t *testing.T) {
	in := sourceInput()
	in.Transactions = rowset(
		in.Transactions.Columns,
		Row{"id": int64(1), "client_id": int64(10), "merchant_id": int64(100), "card_id": int64(7), "amount": "$10", "date": "not a date", "fraud_classification": "Fraud"},
	)

	view, err := Merge(in)
	require.NoError(t, err)
	require.Equal(t, 1, view.Len())
	assert.Nil(t, view.Rows[0][ColDate])
	assert.Nil(t, view.Rows[0][ColHour])
}

func TestMerge_DayFirstDateString(t *testing.T) {
	in := sourceInput()
	in.Transactions = rowset(
		in.Transactions.Columns,
		Row{"id": int64(1), "client_id": int64(10), "merchant_id": int64(100), "card_id": int64(7), "amount": "$10", "date": "11-03-2025", "fraud_classification": "Fraud"},
	)

	view, err := Merge(in)
	require.NoError(t, err)
	ts, ok := view.Rows[0][ColDate].(time.Time)
	require.True(t, ok)
	assert.Equal(t, time.March, ts.Month())
	assert.Equal(t, 11, ts.Day())
	assert.Equal(t, int64(0), view.Rows[0][ColHour])
}

func TestMerge_MissingDateColumnYieldsNullHour(t *testing.T) {
	in := sourceInput()
	in.Transactions = rowset(
		[]string{"id", "client_id", "merchant_id", "card_id", "amount", "fraud_classification"},
		Row{"id": int64(1), "client_id": int64(10), "merchant_id": int64(100), "card_id": int64(7), "amount": "$10", "fraud_classification": "Fraud"},
	)

	view, err := Merge(in)
	require.NoError(t, err)
	assert.True(t, view.HasColumn(ColHour))
	assert.Nil(t, view.Rows[0][ColHour])
}

func TestMerge_MixedKeyTypesStillJoin(t *testing.T) {
	in := sourceInput()
	// fetcher may surface ids as strings depending on column type
	in.Users = rowset(
		[]string{"id", "gender", "AgeGroup"},
		Row{"id": "10", "gender": "Female", "AgeGroup": "26-35"},
		Row{"id": "11", "gender": "Male", "AgeGroup": "36-45"},
	)

	view, err := Merge(in)
	require.NoError(t, err)
	assert.Equal(t, "Female", view.Rows[0][ColGender])
}

func TestMerge_IsRepeatable(t *testing.T) {
	first, err := Merge(sourceInput())
	require.NoError(t, err)
	second, err := Merge(sourceInput())
	require.NoError(t, err)

	assert.Equal(t, first.Columns, second.Columns)
	assert.Equal(t, first.Rows, second.Rows)
}
