package timeseries

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Series is an ordered sequence of finite float64 values.
// Series values are treated as read-only by every estimator; transformations
// always return a new Series.
type Series struct {
	Name   string
	Values []float64
}

// New creates a new series from values. The slice is not copied.
func New(values []float64) *Series {
	if values == nil {
		values = []float64{}
	}
	return &Series{Values: values}
}

// NewNamed creates a named series from values.
func NewNamed(name string, values []float64) *Series {
	s := New(values)
	s.Name = name
	return s
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean calculates the arithmetic mean of the series. An empty series has mean 0.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return stat.Mean(s.Values, nil)
}

// Variance calculates the sample variance (n-1 denominator) of the series.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	return stat.Variance(s.Values, nil)
}

// PopVariance calculates the population variance (n denominator) of the series.
func (s *Series) PopVariance() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	_, v := stat.PopMeanVariance(s.Values, nil)
	return v
}

// Std calculates the sample standard deviation of the series.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the minimum value in the series, or NaN when empty.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Min(s.Values)
}

// Max returns the maximum value in the series, or NaN when empty.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Max(s.Values)
}

// Diff calculates the first difference of the series (d=1).
func (s *Series) Diff() *Series {
	return s.DiffN(1)
}

// DiffN calculates the lag-n difference x[t] - x[t-n].
func (s *Series) DiffN(n int) *Series {
	if n <= 0 || len(s.Values) <= n {
		return &Series{Name: s.Name + "_diff", Values: []float64{}}
	}

	result := make([]float64, len(s.Values)-n)
	for i := n; i < len(s.Values); i++ {
		result[i-n] = s.Values[i] - s.Values[i-n]
	}

	return &Series{
		Name:   s.Name + "_diff",
		Values: result,
	}
}

// SeasonalDiff calculates the seasonal difference with period m.
func (s *Series) SeasonalDiff(m int) *Series {
	d := s.DiffN(m)
	d.Name = s.Name + "_seasonal_diff"
	return d
}

// Slice returns a copy of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Name: s.Name, Values: []float64{}}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	return &Series{
		Name:   s.Name,
		Values: values,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)
	return &Series{
		Name:   s.Name,
		Values: values,
	}
}

// Demeaned returns a new slice holding x[t] - mean(x).
func (s *Series) Demeaned() []float64 {
	mean := s.Mean()
	out := make([]float64, len(s.Values))
	for i, v := range s.Values {
		out[i] = v - mean
	}
	return out
}
