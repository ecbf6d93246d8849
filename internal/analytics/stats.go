package analytics

import (
	"math"
	"sort"

	"github.com/Yashika2244-hub/fraud-detection-api/internal/dataset"
	"github.com/Yashika2244-hub/fraud-detection-api/pkg"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Conclusion strings reported alongside the test result.
const (
	ConclusionSignificant    = "statistically significant difference"
	ConclusionNotSignificant = "no significant difference"
	ConclusionInsufficient   = "insufficient data"
)

// GroupStats describes the monetary column of one label group.
type GroupStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Comparison is the fraud vs non-fraud mean-difference analysis.
type Comparison struct {
	Fraud        GroupStats `json:"fraud"`
	NonFraud     GroupStats `json:"nonFraud"`
	FraudRate    float64    `json:"fraudRatePercent"`
	TStatistic   float64    `json:"tStatistic"`
	PValue       float64    `json:"pValue"`
	Significant  bool       `json:"significant"`
	Insufficient bool       `json:"insufficient"`
	Conclusion   string     `json:"conclusion"`
}

// Compare partitions the view by fraud label and runs Welch's unequal-variance
// t-test on the monetary column. Rows labeled neither "Fraud" nor "Non-Fraud"
// are excluded from both groups. With fewer than 2 observations on either
// side the test is undefined and reported as insufficient data.
func Compare(view *dataset.RowSet) Comparison {
	var fraud, nonFraud []float64
	total := 0
	if view != nil {
		for _, r := range view.Rows {
			amount, ok := dataset.Float(r[dataset.ColAmount])
			if !ok {
				continue
			}
			label, _ := dataset.String(r[dataset.ColFraudLabel])
			switch label {
			case string(pkg.FraudLabelFraud):
				fraud = append(fraud, amount)
			case string(pkg.FraudLabelNonFraud):
				nonFraud = append(nonFraud, amount)
			default:
				continue
			}
			total++
		}
	}

	cmp := Comparison{
		Fraud:    describe(fraud),
		NonFraud: describe(nonFraud),
	}
	if total > 0 {
		cmp.FraudRate = round2(float64(len(fraud)) / float64(total) * 100)
	}

	if len(fraud) < 2 || len(nonFraud) < 2 {
		cmp.Insufficient = true
		cmp.Conclusion = ConclusionInsufficient
		return cmp
	}

	cmp.TStatistic, cmp.PValue = welchT(fraud, nonFraud)
	cmp.Significant = cmp.PValue < pkg.SignificanceLevel
	if cmp.Significant {
		cmp.Conclusion = ConclusionSignificant
	} else {
		cmp.Conclusion = ConclusionNotSignificant
	}
	return cmp
}

func describe(xs []float64) GroupStats {
	if len(xs) == 0 {
		return GroupStats{}
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	gs := GroupStats{
		Count:  len(xs),
		Mean:   stat.Mean(xs, nil),
		Median: Quantile(sorted, 0.5),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
	if len(xs) > 1 {
		gs.StdDev = stat.StdDev(xs, nil)
	}
	return gs
}

// welchT computes the unequal-variance two-sample t statistic and its
// two-tailed p-value, with Welch-Satterthwaite degrees of freedom.
func welchT(a, b []float64) (t, p float64) {
	na, nb := float64(len(a)), float64(len(b))
	ma, mb := stat.Mean(a, nil), stat.Mean(b, nil)
	va, vb := stat.Variance(a, nil), stat.Variance(b, nil)

	sea, seb := va/na, vb/nb
	se := math.Sqrt(sea + seb)
	if se == 0 {
		// Both groups constant: identical means are indistinguishable,
		// distinct means are trivially separated.
		if ma == mb {
			return 0, 1
		}
		return math.Inf(sign(ma - mb)), 0
	}

	t = (ma - mb) / se
	df := (sea + seb) * (sea + seb) / (sea*sea/(na-1) + seb*seb/(nb-1))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p = 2 * dist.CDF(-math.Abs(t))
	return t, p
}

func sign(x float64) int {
	if x < 0 {
		return -1
	}
	return 1
}
