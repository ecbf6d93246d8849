package analytics

import (
	"sort"

	"github.com/Yashika2244-hub/fraud-detection-api/internal/dataset"
	"github.com/Yashika2244-hub/fraud-detection-api/pkg"
)

// MerchantFraud is one entry of the high-risk merchant rankings.
type MerchantFraud struct {
	MerchantID string  `json:"merchantId"`
	Count      int     `json:"count"`
	Amount     float64 `json:"amount"`
}

// Breakdowns holds the group-count reductions behind the dashboard charts.
// Every map is keyed by the raw column value; empty view yields empty maps.
type Breakdowns struct {
	LabelCounts         map[string]int  `json:"labelCounts"`
	FraudByGender       map[string]int  `json:"fraudByGender"`
	FraudByCardBrand    map[string]int  `json:"fraudByCardBrand"`
	FraudByCardType     map[string]int  `json:"fraudByCardType"`
	FraudByChip         map[string]int  `json:"fraudByChip"`
	FraudByAgeGroup     map[string]int  `json:"fraudByAgeGroup"`
	FraudByHour         map[int64]int   `json:"fraudByHour"`
	TopMerchantsByCount []MerchantFraud `json:"topMerchantsByCount"`
	TopMerchantsByValue []MerchantFraud `json:"topMerchantsByValue"`
}

const topMerchantLimit = 10

// Breakdown computes all chart reductions in one pass over the merged view.
func Breakdown(view *dataset.RowSet) Breakdowns {
	b := Breakdowns{
		LabelCounts:      map[string]int{},
		FraudByGender:    map[string]int{},
		FraudByCardBrand: map[string]int{},
		FraudByCardType:  map[string]int{},
		FraudByChip:      map[string]int{},
		FraudByAgeGroup:  map[string]int{},
		FraudByHour:      map[int64]int{},
	}
	if view == nil {
		return b
	}

	type merchantAgg struct {
		count  int
		amount float64
	}
	merchants := map[string]*merchantAgg{}

	for _, r := range view.Rows {
		label, ok := dataset.String(r[dataset.ColFraudLabel])
		if !ok {
			continue
		}
		b.LabelCounts[label]++
		if label != string(pkg.FraudLabelFraud) {
			continue
		}

		countInto(b.FraudByGender, r[dataset.ColGender])
		countInto(b.FraudByCardBrand, r[dataset.ColCardBrand])
		countInto(b.FraudByCardType, r["card_type"])
		countInto(b.FraudByChip, r["use_chip"])
		countInto(b.FraudByAgeGroup, r[dataset.ColAgeGroup])
		if hour, ok := dataset.Float(r[dataset.ColHour]); ok {
			b.FraudByHour[int64(hour)]++
		}

		if id, ok := dataset.String(r[dataset.ColMerchantID]); ok {
			agg := merchants[id]
			if agg == nil {
				agg = &merchantAgg{}
				merchants[id] = agg
			}
			agg.count++
			if amount, ok := dataset.Float(r[dataset.ColAmount]); ok {
				agg.amount += amount
			}
		}
	}

	ranked := make([]MerchantFraud, 0, len(merchants))
	for id, agg := range merchants {
		ranked = append(ranked, MerchantFraud{MerchantID: id, Count: agg.count, Amount: round2(agg.amount)})
	}
	b.TopMerchantsByCount = topBy(ranked, func(a, z MerchantFraud) bool { return a.Count > z.Count })
	b.TopMerchantsByValue = topBy(ranked, func(a, z MerchantFraud) bool { return a.Amount > z.Amount })
	return b
}

func countInto(m map[string]int, v any) {
	if s, ok := dataset.String(v); ok {
		m[s]++
	}
}

func topBy(entries []MerchantFraud, less func(a, z MerchantFraud) bool) []MerchantFraud {
	out := append([]MerchantFraud(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		if less(out[i], out[j]) {
			return true
		}
		if less(out[j], out[i]) {
			return false
		}
		return out[i].MerchantID < out[j].MerchantID // stable order for equal ranks
	})
	if len(out) > topMerchantLimit {
		out = out[:topMerchantLimit]
	}
	return out
}
