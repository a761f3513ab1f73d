package timeseries

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		raw      []any
		expected []float64
	}{
		{"floats", []any{1.5, 2.5, 3.5}, []float64{1.5, 2.5, 3.5}},
		{"mixed types", []any{1, int64(2), float32(3), "4", " 5.5 "}, []float64{1, 2, 3, 4, 5.5}},
		{"drops missing", []any{nil, 1.0, math.NaN(), 2.0}, []float64{1, 2}},
		{"drops infinite", []any{math.Inf(1), 1.0, math.Inf(-1)}, []float64{1}},
		{"drops text", []any{"abc", "1", "", "   ", "n/a"}, []float64{1}},
		{"drops infinite strings", []any{"inf", "NaN", "2"}, []float64{2}},
		{"json number", []any{json.Number("42")}, []float64{42}},
		{"booleans", []any{true, false}, []float64{1, 0}},
		{"empty", []any{}, []float64{}},
		{"nil", nil, []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Clean("col", tt.raw)
			assert.Equal(t, tt.expected, s.Values)
			assert.Equal(t, "col", s.Name)
		})
	}
}

func TestCleanPreservesOrder(t *testing.T) {
	s := Clean("x", []any{"3", nil, 1, "bad", 2.0})
	assert.Equal(t, []float64{3, 1, 2}, s.Values)
}

func TestCleanFloats(t *testing.T) {
	s := CleanFloats("x", []float64{1, math.NaN(), 2, math.Inf(1), 3})
	assert.Equal(t, []float64{1, 2, 3}, s.Values)
}

func TestToFloatRejectsTimes(t *testing.T) {
	_, ok := ToFloat(time.Now())
	assert.False(t, ok)
	_, ok = ToFloat(time.Second)
	assert.False(t, ok)
}

func TestIsMissing(t *testing.T) {
	assert.True(t, IsMissing(nil))
	assert.True(t, IsMissing(math.NaN()))
	assert.True(t, IsMissing(float32(math.NaN())))
	assert.False(t, IsMissing(""))
	assert.False(t, IsMissing(0.0))
	assert.False(t, IsMissing("NA"))
}
