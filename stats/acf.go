package stats

import (
	"math"

	"github.com/sartorproj/tsanalysis/timeseries"
)

// ConfidenceZ is the two-sided 95% normal quantile used for ACF/PACF bands.
const ConfidenceZ = 1.96

// LagResult holds a correlation function evaluated at lags 0..L.
// Lags, Values and ConfidenceIntervals always have the same length.
type LagResult struct {
	Lags                []int        `json:"lags"`
	Values              []float64    `json:"values"`
	ConfidenceIntervals [][2]float64 `json:"confidence_intervals"`
	SignificantLags     []int        `json:"significant_lags"`
}

// ACFResult represents the result of ACF analysis.
// The Ljung-Box fields are nil when the test was not computed.
type ACFResult struct {
	LagResult
	LjungBoxStatistic *float64 `json:"ljung_box_statistic"`
	LjungBoxPValue    *float64 `json:"ljung_box_p_value"`
}

// EmptyLagResult returns the degenerate result with no lags.
func EmptyLagResult() LagResult {
	return LagResult{
		Lags:                []int{},
		Values:              []float64{},
		ConfidenceIntervals: [][2]float64{},
		SignificantLags:     []int{},
	}
}

// EmptyACF returns the ACF result used for series that are too short.
func EmptyACF() *ACFResult {
	return &ACFResult{LagResult: EmptyLagResult()}
}

// EffectiveLags clamps a requested lag count to n/4.
func EffectiveLags(n, requested int) int {
	maxLag := min(requested, n/4)
	if maxLag < 0 {
		return 0
	}
	return maxLag
}

// ConfidenceBand returns the large-sample 95% band 1.96/sqrt(n).
func ConfidenceBand(n int) float64 {
	if n <= 0 {
		return 0
	}
	return ConfidenceZ / math.Sqrt(float64(n))
}

// Autocorrelations computes the biased sample autocorrelation of x for lags
// 0 to maxLag:
//
//	c(k) = (1/n) * sum_{t=0}^{n-k-1} (x[t]-mean)(x[t+k]-mean),  acf(k) = c(k)/c(0)
//
// acf(0) is exactly 1. A constant series has acf(k) = 0 for every k > 0.
func Autocorrelations(x []float64, maxLag int) []float64 {
	n := len(x)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return []float64{}
	}

	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	c0 := 0.0
	for _, v := range x {
		d := v - mean
		c0 += d * d
	}

	acf := make([]float64, maxLag+1)
	acf[0] = 1
	if c0 == 0 {
		return acf
	}

	for k := 1; k <= maxLag; k++ {
		sum := 0.0
		for t := 0; t+k < n; t++ {
			sum += (x[t] - mean) * (x[t+k] - mean)
		}
		acf[k] = sum / c0
	}

	return acf
}

// ACF calculates the autocorrelation function of the series for lags
// 0..min(maxLags, n/4), with 95% confidence bands and the Ljung-Box statistic.
// Series shorter than MinACFLength yield EmptyACF.
func ACF(series *timeseries.Series, maxLags int) *ACFResult {
	n := series.Len()
	if n < MinACFLength {
		return EmptyACF()
	}

	maxLag := EffectiveLags(n, maxLags)
	values := Autocorrelations(series.Values, maxLag)
	band := ConfidenceBand(n)

	result := &ACFResult{LagResult: newLagResult(values, band)}

	if n > 20 && maxLag > 1 {
		lb := ljungBoxFromACF(values, n, maxLag, maxLag)
		result.LjungBoxStatistic = &lb.Statistic
		result.LjungBoxPValue = &lb.PValue
	}

	return result
}

// SignificantLags returns the lags k >= 1 where |values[k]| exceeds confBound.
func SignificantLags(values []float64, confBound float64) []int {
	significant := []int{}
	for i := 1; i < len(values); i++ { // Skip lag 0
		if math.Abs(values[i]) > confBound {
			significant = append(significant, i)
		}
	}
	return significant
}

func newLagResult(values []float64, band float64) LagResult {
	lags := make([]int, len(values))
	intervals := make([][2]float64, len(values))
	for i := range values {
		lags[i] = i
		intervals[i] = [2]float64{-band, band}
	}

	return LagResult{
		Lags:                lags,
		Values:              values,
		ConfidenceIntervals: intervals,
		SignificantLags:     SignificantLags(values, band),
	}
}
