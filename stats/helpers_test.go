package stats

import (
	"math"
	"math/rand/v2"

	"github.com/sartorproj/tsanalysis/timeseries"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func whiteNoise(n int, seed uint64) *timeseries.Series {
	r := newRand(seed)
	values := make([]float64, n)
	for i := range values {
		values[i] = r.NormFloat64()
	}
	return timeseries.New(values)
}

func randomWalk(n int, seed uint64) *timeseries.Series {
	r := newRand(seed)
	values := make([]float64, n)
	level := 0.0
	for i := range values {
		level += r.NormFloat64()
		values[i] = level
	}
	return timeseries.New(values)
}

func ar1(n int, phi float64, seed uint64) *timeseries.Series {
	r := newRand(seed)
	values := make([]float64, n)
	for i := 1; i < n; i++ {
		values[i] = phi*values[i-1] + r.NormFloat64()
	}
	return timeseries.New(values)
}

func sine(n, period int) *timeseries.Series {
	values := make([]float64, n)
	for i := range values {
		values[i] = math.Sin(2 * math.Pi * float64(i) / float64(period))
	}
	return timeseries.New(values)
}

func constant(n int, v float64) *timeseries.Series {
	values := make([]float64, n)
	for i := range values {
		values[i] = v
	}
	return timeseries.New(values)
}
