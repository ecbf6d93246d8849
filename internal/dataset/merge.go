package dataset

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Column names of the denormalized transaction view.
const (
	ColAmount        = "amount"
	ColDate          = "date"
	ColHour          = "hour"
	ColClientID      = "client_id"
	ColMerchantID    = "merchant_id"
	ColCardID        = "card_id"
	ColFraudLabel    = "fraud_classification"
	ColGender        = "gender"
	ColAgeGroup      = "AgeGroup"
	ColMerchantState = "merchant_state"
	ColCardBrand     = "card_brand"
)

// currencyPattern strips the currency symbol and thousands separators
// before the numeric parse, e.g. "$1,234.56" -> "1234.56".
var currencyPattern = regexp.MustCompile(`[$,]`)

// MergeInput carries the four source row-sets.
type MergeInput struct {
	Transactions *RowSet
	Users        *RowSet // id, gender, AgeGroup
	Merchants    *RowSet // merchant_id, merchant_state
	Cards        *RowSet // card_id (aliased from id), card_brand
}

// MergeError reports a merge-blocking condition. The pipeline never produces
// a partial merge: on any MergeError the output is empty.
type MergeError struct {
	Stage string
	Err   error
}

func (e *MergeError) Error() string { return fmt.Sprintf("merge %s: %v", e.Stage, e.Err) }
func (e *MergeError) Unwrap() error { return e.Err }

func mergeErrorf(stage, format string, args ...any) error {
	return &MergeError{Stage: stage, Err: fmt.Errorf(format, args...)}
}

// Merge assembles the denormalized transaction view: clean the monetary
// column, left-join user, merchant and card attributes, then derive the
// hour-of-day column from the transaction timestamp.
//
// Left joins never drop or duplicate transaction rows; the output row count
// equals the cleaned transaction count. A duplicate key on a right-hand side
// would silently fan rows out, so it is rejected instead.
func Merge(in MergeInput) (*RowSet, error) {
	if in.Transactions.Empty() || in.Users.Empty() || in.Merchants.Empty() || in.Cards.Empty() {
		return nil, mergeErrorf("guard", "one or more source tables are empty")
	}

	view, err := CleanAmount(in.Transactions)
	if err != nil {
		return nil, err
	}

	if err := joinLeft(view, in.Users, ColClientID, "id", ColGender, ColAgeGroup); err != nil {
		return nil, err
	}
	if err := joinLeft(view, in.Merchants, ColMerchantID, ColMerchantID, ColMerchantState); err != nil {
		return nil, err
	}
	if err := joinLeft(view, in.Cards, ColCardID, ColCardID, ColCardBrand); err != nil {
		return nil, err
	}

	deriveHour(view)
	return view, nil
}

// CleanAmount coerces the monetary column to text, removes currency noise and
// parses it as a float. Rows whose amount has no numeric reading are dropped,
// not zero-filled. The input row-set is left untouched.
func CleanAmount(tx *RowSet) (*RowSet, error) {
	if !tx.HasColumn(ColAmount) {
		return nil, mergeErrorf("clean", "transactions missing %q column", ColAmount)
	}
	out := New(append([]string(nil), tx.Columns...)...)
	for _, r := range tx.Rows {
		amount, ok := ParseAmount(r[ColAmount])
		if !ok {
			continue
		}
		clean := make(Row, len(r)+4)
		for k, v := range r {
			clean[k] = v
		}
		clean[ColAmount] = amount
		out.Append(clean)
	}
	return out, nil
}

// ParseAmount reads a monetary cell. Accepts numeric values as-is and strings
// after stripping "$" and ",".
func ParseAmount(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case string:
		s := currencyPattern.ReplaceAllString(strings.TrimSpace(x), "")
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	case []byte:
		return ParseAmount(string(x))
	default:
		return Float(v)
	}
}

// joinLeft merges attrCols of right into left rows matching on
// left[leftKey] == right[rightKey]. Unmatched left rows get nil attributes.
func joinLeft(left, right *RowSet, leftKey, rightKey string, attrCols ...string) error {
	if !left.HasColumn(leftKey) {
		return mergeErrorf("join", "left side missing join key %q", leftKey)
	}
	if !right.HasColumn(rightKey) {
		return mergeErrorf("join", "right side missing join key %q", rightKey)
	}

	index := make(map[string]Row, right.Len())
	for _, r := range right.Rows {
		key, ok := joinKey(r[rightKey])
		if !ok {
			continue
		}
		if _, dup := index[key]; dup {
			return mergeErrorf("join", "duplicate key %q on right-hand side of %q", key, rightKey)
		}
		index[key] = r
	}

	left.Columns = append(left.Columns, attrCols...)
	for _, l := range left.Rows {
		key, ok := joinKey(l[leftKey])
		match := index[key]
		for _, col := range attrCols {
			if ok && match != nil {
				l[col] = match[col]
			} else {
				l[col] = nil
			}
		}
	}
	return nil
}

// joinKey canonicalizes a key cell so that e.g. int64(7), float64(7) and "7"
// all address the same right-hand row.
func joinKey(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case int64:
		return strconv.FormatInt(x, 10), true
	case int:
		return strconv.Itoa(x), true
	case float64:
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10), true
		}
		return strconv.FormatFloat(x, 'g', -1, 64), true
	case []byte:
		return strings.TrimSpace(string(x)), true
	case string:
		return strings.TrimSpace(x), true
	default:
		s, ok := String(v)
		return s, ok
	}
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
	"02-01-2006", // source exports carry day-first dates
}

// deriveHour normalizes the date column to time.Time (unparseable values
// coerce to nil, never an error) and appends the hour-of-day column. A view
// without a date column still gets the hour column, fully null.
func deriveHour(view *RowSet) {
	view.Columns = append(view.Columns, ColHour)
	if !view.HasColumn(ColDate) {
		for _, r := range view.Rows {
			r[ColHour] = nil
		}
		return
	}
	for _, r := range view.Rows {
		ts, ok := parseTimestamp(r[ColDate])
		if !ok {
			r[ColDate] = nil
			r[ColHour] = nil
			continue
		}
		r[ColDate] = ts
		r[ColHour] = int64(ts.Hour())
	}
}

func parseTimestamp(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case []byte:
		return parseTimestamp(string(x))
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
