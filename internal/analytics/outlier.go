package analytics

import (
	"errors"
	"math"
	"sort"

	"github.com/Yashika2244-hub/fraud-detection-api/internal/dataset"
	"github.com/Yashika2244-hub/fraud-detection-api/pkg"
	"gonum.org/v1/gonum/stat"
)

// Method selects an anomaly detection formula.
type Method string

const (
	MethodZScore Method = "zscore"
	MethodIQR    Method = "iqr"
)

var (
	// ErrZeroVariance marks the z-score method as undefined when every value
	// in the column is identical. Reported, never propagated as a division by zero.
	ErrZeroVariance = errors.New("z-score undefined: amount column has zero variance")
	ErrNoData       = errors.New("no numeric amounts in view")
)

// Flagged is one anomalous row. Score is the absolute z-score for the z
// method; for IQR the flag itself is the result and Score carries the amount
// for ordering.
type Flagged struct {
	Row   dataset.Row `json:"row"`
	Score float64     `json:"score"`
}

// Detection is the full flagged subset plus the fraud-labeled cross-tabulation.
type Detection struct {
	Method       Method    `json:"method"`
	Parameter    float64   `json:"parameter"` // z threshold or IQR multiplier
	LowerBound   float64   `json:"lowerBound,omitempty"`
	UpperBound   float64   `json:"upperBound,omitempty"`
	Flagged      []Flagged `json:"flagged"`
	FraudFlagged []Flagged `json:"fraudFlagged"`
}

// DetectZScore standardizes the amount column with the population standard
// deviation (no degrees-of-freedom correction) and flags rows whose absolute
// z exceeds the threshold.
func DetectZScore(view *dataset.RowSet, threshold float64) (*Detection, error) {
	amounts, rows := amountColumn(view)
	if len(amounts) == 0 {
		return nil, ErrNoData
	}

	mean := stat.Mean(amounts, nil)
	sd := stat.PopStdDev(amounts, nil)
	if sd == 0 {
		return nil, ErrZeroVariance
	}

	det := &Detection{Method: MethodZScore, Parameter: threshold}
	for i, amount := range amounts {
		z := math.Abs((amount - mean) / sd)
		if z > threshold {
			det.append(rows[i], z)
		}
	}
	det.sortByScore()
	return det, nil
}

// DetectIQR flags rows outside [Q1 - k*IQR, Q3 + k*IQR] with
// linear-interpolation quartiles.
func DetectIQR(view *dataset.RowSet, multiplier float64) (*Detection, error) {
	amounts, rows := amountColumn(view)
	if len(amounts) == 0 {
		return nil, ErrNoData
	}

	sorted := append([]float64(nil), amounts...)
	sort.Float64s(sorted)
	q1 := Quantile(sorted, 0.25)
	q3 := Quantile(sorted, 0.75)
	iqr := q3 - q1

	det := &Detection{
		Method:     MethodIQR,
		Parameter:  multiplier,
		LowerBound: q1 - multiplier*iqr,
		UpperBound: q3 + multiplier*iqr,
	}
	for i, amount := range amounts {
		if amount < det.LowerBound || amount > det.UpperBound {
			det.append(rows[i], amount)
		}
	}
	det.sortByScore()
	return det, nil
}

func (d *Detection) append(r dataset.Row, score float64) {
	f := Flagged{Row: r, Score: score}
	d.Flagged = append(d.Flagged, f)
	if label, _ := dataset.String(r[dataset.ColFraudLabel]); label == string(pkg.FraudLabelFraud) {
		d.FraudFlagged = append(d.FraudFlagged, f)
	}
}

func (d *Detection) sortByScore() {
	desc := func(fs []Flagged) {
		sort.SliceStable(fs, func(i, j int) bool { return fs[i].Score > fs[j].Score })
	}
	desc(d.Flagged)
	desc(d.FraudFlagged)
}

func amountColumn(view *dataset.RowSet) ([]float64, []dataset.Row) {
	if view == nil {
		return nil, nil
	}
	amounts := make([]float64, 0, view.Len())
	rows := make([]dataset.Row, 0, view.Len())
	for _, r := range view.Rows {
		if amount, ok := dataset.Float(r[dataset.ColAmount]); ok {
			amounts = append(amounts, amount)
			rows = append(rows, r)
		}
	}
	return amounts, rows
}

// Quantile computes the p-quantile of a sorted slice with the linear
// interpolation used by spreadsheet tools (R type 7): the convention the
// reference quartile figures for this dashboard were produced with.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
