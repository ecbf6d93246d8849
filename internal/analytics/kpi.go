package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/Yashika2244-hub/fraud-detection-api/internal/dataset"
	"github.com/Yashika2244-hub/fraud-detection-api/pkg"
)

// Filter narrows the merged view before the KPI reduction. Zero values mean
// "All" for the corresponding dimension.
type Filter struct {
	Year   int
	Month  int
	Gender string
}

// Summary holds the dashboard KPI scalars. Amounts are rounded to two
// decimal places.
type Summary struct {
	TotalTransactions      int     `json:"totalTransactions"`
	TotalAmount            float64 `json:"totalAmount"`
	TotalFraudTransactions int     `json:"totalFraudTransactions"`
	TotalFraudAmount       float64 `json:"totalFraudAmount"`
}

// Summarize reduces the merged view to the four KPI scalars. A nil or empty
// view yields all zeros, never an error.
func Summarize(view *dataset.RowSet, f Filter) Summary {
	var s Summary
	if view == nil {
		return s
	}
	var total, fraudTotal float64
	for _, r := range view.Rows {
		if !matches(r, f) {
			continue
		}
		amount, ok := dataset.Float(r[dataset.ColAmount])
		if !ok {
			continue
		}
		s.TotalTransactions++
		total += amount
		if label, _ := dataset.String(r[dataset.ColFraudLabel]); label == string(pkg.FraudLabelFraud) {
			s.TotalFraudTransactions++
			fraudTotal += amount
		}
	}
	s.TotalAmount = round2(total)
	s.TotalFraudAmount = round2(fraudTotal)
	return s
}

func matches(r dataset.Row, f Filter) bool {
	if f.Year != 0 || f.Month != 0 {
		ts, ok := r[dataset.ColDate].(time.Time)
		if !ok {
			return false
		}
		if f.Year != 0 && ts.Year() != f.Year {
			return false
		}
		if f.Month != 0 && int(ts.Month()) != f.Month {
			return false
		}
	}
	if f.Gender != "" && f.Gender != pkg.FilterAll {
		gender, ok := dataset.String(r[dataset.ColGender])
		if !ok || gender != f.Gender {
			return false
		}
	}
	return true
}

// FilterOptions lists the distinct filter values present in the view, sorted,
// for populating the dashboard slicers.
type FilterOptions struct {
	Years   []int    `json:"years"`
	Months  []int    `json:"months"`
	Genders []string `json:"genders"`
}

func Options(view *dataset.RowSet) FilterOptions {
	years := map[int]struct{}{}
	months := map[int]struct{}{}
	genders := map[string]struct{}{}
	if view != nil {
		for _, r := range view.Rows {
			if ts, ok := r[dataset.ColDate].(time.Time); ok {
				years[ts.Year()] = struct{}{}
				months[int(ts.Month())] = struct{}{}
			}
			if g, ok := dataset.String(r[dataset.ColGender]); ok {
				genders[g] = struct{}{}
			}
		}
	}
	opts := FilterOptions{
		Years:   make([]int, 0, len(years)),
		Months:  make([]int, 0, len(months)),
		Genders: make([]string, 0, len(genders)),
	}
	for y := range years {
		opts.Years = append(opts.Years, y)
	}
	for m := range months {
		opts.Months = append(opts.Months, m)
	}
	for g := range genders {
		opts.Genders = append(opts.Genders, g)
	}
	sort.Ints(opts.Years)
	sort.Ints(opts.Months)
	sort.Strings(opts.Genders)
	return opts
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
