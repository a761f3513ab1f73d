package stats

import (
	"math"

	"github.com/sartorproj/tsanalysis/timeseries"
)

// DecompositionResult represents the decomposition of a time series.
type DecompositionResult struct {
	Original *timeseries.Series
	Trend    *timeseries.Series
	Seasonal *timeseries.Series
	Residual *timeseries.Series
	Period   int
	Type     string // "additive" or "multiplicative"
}

// Decompose performs seasonal decomposition of a time series.
// Uses classical decomposition with moving average for trend.
// Type can be "additive" (Y = T + S + R) or "multiplicative" (Y = T * S * R).
// Trend and residual are NaN where the centred moving average is undefined.
// Returns nil when the series is shorter than two periods.
func Decompose(series *timeseries.Series, period int, decompositionType string) *DecompositionResult {
	n := series.Len()
	if period < 2 || n < 2*period {
		return nil
	}

	multiplicative := decompositionType == "multiplicative"
	if !multiplicative {
		decompositionType = "additive"
	}

	trend := movingAverageTrend(series.Values, period)

	detrended := make([]float64, n)
	for i := 0; i < n; i++ {
		switch {
		case math.IsNaN(trend[i]):
			detrended[i] = math.NaN()
		case multiplicative:
			if trend[i] == 0 {
				detrended[i] = math.NaN()
			} else {
				detrended[i] = series.Values[i] / trend[i]
			}
		default:
			detrended[i] = series.Values[i] - trend[i]
		}
	}

	pattern := seasonalPattern(detrended, period, multiplicative)

	seasonal := make([]float64, n)
	residual := make([]float64, n)
	for i := 0; i < n; i++ {
		seasonal[i] = pattern[i%period]
		switch {
		case math.IsNaN(trend[i]):
			residual[i] = math.NaN()
		case multiplicative:
			if trend[i] == 0 || seasonal[i] == 0 {
				residual[i] = math.NaN()
			} else {
				residual[i] = series.Values[i] / (trend[i] * seasonal[i])
			}
		default:
			residual[i] = series.Values[i] - trend[i] - seasonal[i]
		}
	}

	return &DecompositionResult{
		Original: series,
		Trend:    timeseries.NewNamed("trend", trend),
		Seasonal: timeseries.NewNamed("seasonal", seasonal),
		Residual: timeseries.NewNamed("residual", residual),
		Period:   period,
		Type:     decompositionType,
	}
}

// seasonalPattern averages the detrended values per season and normalises the
// pattern to mean 0 (additive) or mean 1 (multiplicative).
func seasonalPattern(detrended []float64, period int, multiplicative bool) []float64 {
	pattern := make([]float64, period)
	counts := make([]int, period)

	for i, v := range detrended {
		if !math.IsNaN(v) {
			pattern[i%period] += v
			counts[i%period]++
		}
	}
	for i := range pattern {
		if counts[i] > 0 {
			pattern[i] /= float64(counts[i])
		}
	}

	mean := 0.0
	for _, v := range pattern {
		mean += v
	}
	mean /= float64(period)

	for i := range pattern {
		if multiplicative {
			if mean != 0 {
				pattern[i] /= mean
			}
		} else {
			pattern[i] -= mean
		}
	}

	return pattern
}

// movingAverageTrend calculates trend using centered moving average.
// Even periods use the 2 x period moving average.
func movingAverageTrend(x []float64, period int) []float64 {
	n := len(x)
	trend := make([]float64, n)
	for i := range trend {
		trend[i] = math.NaN()
	}

	half := period / 2

	if period%2 == 0 {
		for i := half; i < n-half; i++ {
			sum := 0.5*x[i-half] + 0.5*x[i+half]
			for j := i - half + 1; j < i+half; j++ {
				sum += x[j]
			}
			trend[i] = sum / float64(period)
		}
	} else {
		for i := half; i < n-half; i++ {
			sum := 0.0
			for j := i - half; j <= i+half; j++ {
				sum += x[j]
			}
			trend[i] = sum / float64(period)
		}
	}

	return trend
}

// DecompositionSummary condenses a classical additive decomposition into the
// figures reported by the seasonality detector.
type DecompositionSummary struct {
	Period           int       `json:"period"`
	Model            string    `json:"model"`
	SeasonalPattern  []float64 `json:"seasonal_pattern"`
	SeasonalStrength float64   `json:"seasonal_strength"`
	TrendStrength    float64   `json:"trend_strength"`
	SeasonalDiffs    int       `json:"seasonal_diffs"`
}

// SummarizeDecomposition decomposes the series at period and summarises the
// components. Returns nil when the series is shorter than two periods.
func SummarizeDecomposition(series *timeseries.Series, period int) *DecompositionSummary {
	decomp := Decompose(series, period, "additive")
	if decomp == nil {
		return nil
	}

	pattern := make([]float64, period)
	copy(pattern, decomp.Seasonal.Values[:period])

	return &DecompositionSummary{
		Period:           period,
		Model:            decomp.Type,
		SeasonalPattern:  pattern,
		SeasonalStrength: componentStrength(decomp.Seasonal.Values, decomp.Residual.Values),
		TrendStrength:    componentStrength(decomp.Trend.Values, decomp.Residual.Values),
		SeasonalDiffs:    NSDiffs(series, period, 1),
	}
}
