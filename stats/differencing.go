package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/tsanalysis/timeseries"
)

// NDiffs determines the number of first differences required for stationarity.
// testType is "adf" (default, the ADF approximation) or "kpss".
// maxD is the maximum number of differences to consider (default 2).
// Differencing stops early when the differenced series gets shorter than
// MinStationarityLength.
func NDiffs(series *timeseries.Series, maxD int, testType string) int {
	if maxD <= 0 {
		maxD = 2
	}
	if testType == "" {
		testType = "adf"
	}

	current := series
	for d := 0; d < maxD; d++ {
		isStationary := false

		if testType == "kpss" {
			if result := KPSS(current, "c", 0); result != nil && result.IsStationary {
				isStationary = true
			}
		} else {
			isStationary = ADF(current).IsStationary
		}

		if isStationary {
			return d
		}

		current = current.Diff()
		if current.Len() < MinStationarityLength {
			return d
		}
	}

	return maxD
}

// NSDiffs determines the number of seasonal differences required.
// Uses seasonal strength measure: if F_S >= 0.64, one seasonal difference is suggested.
// period is the seasonal period (e.g., 12 for monthly data with yearly seasonality).
func NSDiffs(series *timeseries.Series, period int, maxD int) int {
	if maxD <= 0 {
		maxD = 1
	}
	if period <= 1 || series.Len() < 2*period {
		return 0
	}

	current := series
	for d := 0; d < maxD; d++ {
		if SeasonalStrength(current, period) < 0.64 {
			return d
		}

		current = current.SeasonalDiff(period)
		if current.Len() < 2*period {
			return d
		}
	}

	return maxD
}

// SeasonalStrength calculates the strength of seasonality
// F_S = max(0, 1 - Var(R) / Var(S+R)) from a classical additive decomposition.
func SeasonalStrength(series *timeseries.Series, period int) float64 {
	decomp := Decompose(series, period, "additive")
	if decomp == nil {
		return 0
	}
	return componentStrength(decomp.Seasonal.Values, decomp.Residual.Values)
}

// TrendStrength calculates F_T = max(0, 1 - Var(R) / Var(T+R)).
func TrendStrength(series *timeseries.Series, period int) float64 {
	decomp := Decompose(series, period, "additive")
	if decomp == nil {
		return 0
	}
	return componentStrength(decomp.Trend.Values, decomp.Residual.Values)
}

// componentStrength returns max(0, 1 - Var(R)/Var(C+R)) over the positions
// where both components are defined.
func componentStrength(component, residual []float64) float64 {
	r := make([]float64, 0, len(residual))
	cr := make([]float64, 0, len(residual))
	for i := range residual {
		if math.IsNaN(component[i]) || math.IsNaN(residual[i]) {
			continue
		}
		r = append(r, residual[i])
		cr = append(cr, component[i]+residual[i])
	}
	if len(r) < 2 {
		return 0
	}

	varCR := stat.Variance(cr, nil)
	if varCR == 0 {
		return 0
	}

	return math.Max(0, 1-stat.Variance(r, nil)/varCR)
}
