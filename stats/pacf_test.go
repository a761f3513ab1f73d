package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPACFAR1(t *testing.T) {
	series := ar1(2000, 0.7, 5)
	pacf := PACF(series, 10)

	require.Len(t, pacf.Values, 11)
	assert.Equal(t, 1.0, pacf.Values[0])
	assert.InDelta(t, 0.7, pacf.Values[1], 0.06)
	for k := 2; k <= 5; k++ {
		assert.Less(t, math.Abs(pacf.Values[k]), 0.1, "lag %d", k)
	}
	assert.Contains(t, pacf.SignificantLags, 1)
}

func TestPACFMatchesACFAtLagOne(t *testing.T) {
	series := ar1(300, 0.4, 9)
	acf := ACF(series, 20)
	pacf := PACFFromACF(acf, series.Len())

	assert.Equal(t, acf.Values[1], pacf.Values[1])
	assert.Equal(t, acf.Lags, pacf.Lags)
	assert.Equal(t, acf.ConfidenceIntervals, pacf.ConfidenceIntervals)
}

func TestYuleWalkerPACFExactAR1(t *testing.T) {
	acf := []float64{1, 0.5, 0.25, 0.125, 0.0625}
	pacf := YuleWalkerPACF(acf)

	require.Len(t, pacf, 5)
	assert.Equal(t, 1.0, pacf[0])
	assert.Equal(t, 0.5, pacf[1])
	for _, v := range pacf[2:] {
		assert.InDelta(t, 0, v, 1e-12)
	}
}

func TestYuleWalkerPACFSingular(t *testing.T) {
	pacf := YuleWalkerPACF([]float64{1, 1, 1, 1})

	assert.Equal(t, []float64{1, 1, 0, 0}, pacf)
}

func TestPACFConstantSeries(t *testing.T) {
	pacf := PACF(constant(40, 2), 10)

	require.Len(t, pacf.Values, 11)
	for _, v := range pacf.Values[1:] {
		assert.Zero(t, v)
	}
}

func TestPACFEdgeCases(t *testing.T) {
	empty := PACF(whiteNoise(MinPACFLength-1, 1), 10)
	assert.Empty(t, empty.Values)
	assert.Empty(t, empty.Lags)

	zero := PACF(whiteNoise(50, 1), 0)
	assert.Equal(t, []int{0}, zero.Lags)
	assert.Equal(t, []float64{1}, zero.Values)

	atMin := PACF(whiteNoise(MinPACFLength, 1), 50)
	assert.Len(t, atMin.Values, 3)

	assert.Empty(t, PACFFromACF(nil, 0).Values)
}
