package quality

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/sartorproj/tsanalysis/timeseries"
)

// Correlations returns the Pearson correlation matrix of the named numeric
// columns, computed over pairwise-complete rows and rounded to 4 decimals.
// Undefined coefficients (fewer than two complete rows, zero variance) are
// reported as 0. The result is nil when fewer than two columns are given.
func Correlations(t *timeseries.Table, numeric []string) map[string]map[string]float64 {
	if len(numeric) < 2 {
		return nil
	}

	cols := make([][]float64, len(numeric))
	for i, name := range numeric {
		c, err := t.Column(name)
		if err != nil {
			return nil
		}
		cols[i] = coerceRow(c.Values)
	}

	out := make(map[string]map[string]float64, len(numeric))
	for _, a := range numeric {
		out[a] = make(map[string]float64, len(numeric))
	}
	for i := range numeric {
		for j := i; j < len(numeric); j++ {
			r := pairwisePearson(cols[i], cols[j])
			out[numeric[i]][numeric[j]] = r
			out[numeric[j]][numeric[i]] = r
		}
	}
	return out
}

// coerceRow converts cells to floats, keeping row positions; unusable
// cells become NaN.
func coerceRow(values []any) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		f, ok := timeseries.ToFloat(v)
		if !ok {
			f = math.NaN()
		}
		out[i] = f
	}
	return out
}

func pairwisePearson(x, y []float64) float64 {
	var xs, ys []float64
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return 0
	}
	r, err := stats.Pearson(xs, ys)
	if err != nil || math.IsNaN(r) {
		return 0
	}
	return round(r, statPlaces)
}
