package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHurstRandomWalk(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		result := Hurst(randomWalk(2000, seed))

		assert.GreaterOrEqual(t, result.HurstExponent, 0.6, "seed %d", seed)
		assert.LessOrEqual(t, result.HurstExponent, 0.95, "seed %d", seed)
		assert.Equal(t, HurstTrending, result.Interpretation)
	}
}

func TestHurstWhiteNoise(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		result := Hurst(whiteNoise(2000, seed))

		assert.GreaterOrEqual(t, result.HurstExponent, 0.4, "seed %d", seed)
		assert.LessOrEqual(t, result.HurstExponent, 0.6, "seed %d", seed)
	}
}

func TestHurstObservations(t *testing.T) {
	result := Hurst(whiteNoise(1024, 3))

	assert.Equal(t, []int{4, 8, 16, 32, 64, 128, 256}, result.Scales)
	require.Len(t, result.RSValues, len(result.Scales))
	require.Len(t, result.Observations, len(result.Scales))
	for i, o := range result.Observations {
		assert.Equal(t, result.Scales[i], o.Scale)
		assert.Equal(t, result.RSValues[i], o.RSRatio)
	}
	assert.GreaterOrEqual(t, result.RSquared, 0.0)
	assert.LessOrEqual(t, result.RSquared, 1.0)
	assert.Greater(t, result.RegressionSlope, 0.0)
}

func TestHurstDegenerateCases(t *testing.T) {
	short := Hurst(whiteNoise(MinHurstLength-1, 1))
	assert.Equal(t, 0.5, short.HurstExponent)
	assert.Equal(t, HurstInsufficientData, short.Interpretation)

	// n = 50 only allows the 4 and 8 scales.
	atMin := Hurst(whiteNoise(MinHurstLength, 1))
	assert.Equal(t, 0.5, atMin.HurstExponent)
	assert.Equal(t, HurstInsufficientScales, atMin.Interpretation)
	assert.Equal(t, []int{4, 8}, atMin.Scales)

	// Every window has zero variance.
	flat := Hurst(constant(256, 7))
	assert.Equal(t, 0.5, flat.HurstExponent)
	assert.Equal(t, HurstInsufficientScales, flat.Interpretation)
	assert.Empty(t, flat.Scales)
}

func TestHurstDeterministic(t *testing.T) {
	series := randomWalk(500, 9)
	assert.Equal(t, Hurst(series), Hurst(series))
}

func TestExpectedRS(t *testing.T) {
	assert.Zero(t, ExpectedRS(1))

	prev := 0.0
	for _, n := range []int{4, 8, 16, 32, 64, 128, 256, 512} {
		e := ExpectedRS(n)
		assert.Greater(t, e, prev)
		prev = e
	}

	// Both branches of the gamma ratio agree at the switch.
	assert.InEpsilon(t, ExpectedRS(340), ExpectedRS(341), 0.01)
}

func TestHurstScales(t *testing.T) {
	assert.Equal(t, []int{4, 8}, hurstScales(50))
	assert.Equal(t, []int{4, 8, 16}, hurstScales(64))
	assert.Empty(t, hurstScales(15))
}
