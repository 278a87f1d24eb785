// Package stats computes per-checkpoint summary statistics over trial tables
// and appends them as summary rows.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultLevel is the two-sided confidence level used for the CI rows.
const DefaultLevel = 0.95

// SummaryRows is the number of rows AppendSummary adds. Downstream readers
// slice the last SummaryRows rows by position, so the order is fixed:
// mean, standard deviation, CI lower bound, CI upper bound.
const SummaryRows = 4

// RowLabels names the appended rows in order.
var RowLabels = [SummaryRows]string{"Mean", "S.D.", "95% CI LB", "95% CI UB"}

// Summary holds the statistics of one column.
//
// Fields that are undefined for the sample size are NaN: with N == 0 every
// field is NaN, with N == 1 only Mean is defined.
type Summary struct {
	Numeric   bool
	N         int
	Mean      float64
	StdDev    float64 // sample standard deviation (divisor N-1)
	StdErr    float64 // StdDev / sqrt(N)
	TCritical float64 // two-tailed Student-t quantile with N-1 df
	Lower     float64
	Upper     float64
}

// Values returns the summary in appended-row order.
func (s Summary) Values() [SummaryRows]float64 {
	return [SummaryRows]float64{s.Mean, s.StdDev, s.Lower, s.Upper}
}

// Margin is the half-width of the confidence interval.
func (s Summary) Margin() float64 {
	return s.TCritical * s.StdErr
}

// TCritical returns the two-tailed critical value of the Student-t
// distribution with df degrees of freedom at the given confidence level,
// i.e. the 1-(1-level)/2 quantile. NaN for df < 1 or a level outside (0, 1).
func TCritical(df, level float64) float64 {
	if math.IsNaN(df) || df < 1 || !(level > 0 && level < 1) {
		return math.NaN()
	}
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return t.Quantile(1 - (1-level)/2)
}

// Summarize computes the statistics of a sample. NaN entries are missing
// values and do not count toward N. Small samples never fail; undefined
// fields are NaN.
func Summarize(values []float64, level float64) Summary {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}

	nan := math.NaN()
	s := Summary{
		Numeric:   true,
		N:         len(clean),
		Mean:      nan,
		StdDev:    nan,
		StdErr:    nan,
		TCritical: nan,
		Lower:     nan,
		Upper:     nan,
	}

	if s.N == 0 {
		return s
	}
	s.Mean = stat.Mean(clean, nil)
	if s.N < 2 {
		return s
	}

	n := float64(s.N)
	s.StdDev = math.Sqrt(stat.Variance(clean, nil))
	s.StdErr = s.StdDev / math.Sqrt(n)
	s.TCritical = TCritical(n-1, level)

	margin := s.Margin()
	s.Lower = s.Mean - margin
	s.Upper = s.Mean + margin
	return s
}
