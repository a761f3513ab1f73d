package stats

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/tsanalysis/timeseries"
)

func TestKSGMutualInformationGaussian(t *testing.T) {
	r := newRand(3)
	n := 1000
	x := make([]float64, n)
	y := make([]float64, n)
	z := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = r.NormFloat64()
		z[i] = r.NormFloat64()
		y[i] = 0.9*x[i] + math.Sqrt(1-0.81)*z[i]
	}

	// I(X;Y) = -0.5*ln(1-rho^2) for a bivariate normal.
	want := -0.5 * math.Log(1-0.81)
	assert.InDelta(t, want, KSGMutualInformation(x, y, 1), 0.08)
	assert.Less(t, KSGMutualInformation(x, z, 1), 0.05)
}

func TestKSGMutualInformationDegenerate(t *testing.T) {
	assert.Zero(t, KSGMutualInformation([]float64{1, 2}, []float64{1, 2}, 1))
	assert.Zero(t, KSGMutualInformation([]float64{1, 2, 3, 4, 5}, []float64{1, 2}, 1))

	noise := whiteNoise(50, 1).Values
	assert.Zero(t, KSGMutualInformation(constant(50, 1).Values, noise, 1))
	assert.Zero(t, KSGMutualInformation(noise, constant(50, 7).Values, 1))
}

func TestMutualInformationConstantSeries(t *testing.T) {
	for _, n := range []int{MinMILength, 50, 200} {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			result := MutualInformation(constant(n, 7), 30)

			want := EffectiveLags(n, 30)
			require.Len(t, result.MIValues, want+1)
			require.Len(t, result.Lags, want+1)
			for i, v := range result.MIValues {
				assert.Zero(t, v, "lag %d", i)
			}
			assert.Nil(t, result.OptimalLag)
			assert.Zero(t, result.MIThreshold)
			assert.Empty(t, result.SignificantLags)
		})
	}
}

func TestMutualInformationConstantSlice(t *testing.T) {
	// Only the last value differs, so x[:n-k] is constant for every lag.
	values := constant(30, 2).Values
	values[29] = 5

	result := MutualInformation(timeseries.New(values), 30)
	require.Len(t, result.MIValues, EffectiveLags(30, 30)+1)
	for i, v := range result.MIValues {
		assert.Zero(t, v, "lag %d", i)
	}
	assert.Nil(t, result.OptimalLag)
	assert.Empty(t, result.SignificantLags)
}

func TestFirstLocalMinimumShortCurves(t *testing.T) {
	assert.Equal(t, -1, firstLocalMinimum([]float64{0, 1, 0.5}))
	assert.Equal(t, 2, firstLocalMinimum([]float64{0, 1, 0.5, 0.8}))
}

func TestMutualInformationShortSeries(t *testing.T) {
	result := MutualInformation(whiteNoise(MinMILength-1, 1), 30)

	assert.Empty(t, result.Lags)
	assert.Empty(t, result.MIValues)
	assert.Nil(t, result.OptimalLag)
	assert.Zero(t, result.MIThreshold)
}

func TestMutualInformationAtMinimum(t *testing.T) {
	result := MutualInformation(whiteNoise(MinMILength, 1), 30)

	require.Len(t, result.MIValues, 6)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, result.Lags)
	assert.Zero(t, result.MIValues[0])
	for _, v := range result.MIValues {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestMutualInformationThreshold(t *testing.T) {
	result := MutualInformation(ar1(400, 0.9, 4), 30)

	mean, std := stat.PopMeanStdDev(result.MIValues, nil)
	assert.InDelta(t, mean+std, result.MIThreshold, 1e-12)

	require.NotEmpty(t, result.SignificantLags)
	assert.Equal(t, 1, result.SignificantLags[0])
	for _, lag := range result.SignificantLags {
		assert.Greater(t, result.MIValues[lag], result.MIThreshold)
	}
	// Dependence decays with the lag of an AR(1).
	assert.Greater(t, result.MIValues[1], result.MIValues[20])
}

func TestMutualInformationDeterministic(t *testing.T) {
	series := ar1(300, 0.6, 8)
	assert.Equal(t, MutualInformation(series, 20), MutualInformation(series, 20))
}

func TestFirstLocalMinimum(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   int
	}{
		{"too short", []float64{0, 1, 0.5, 0.7}, -1},
		{"first dip", []float64{0, 1, 0.5, 0.7, 0.3, 0.6}, 2},
		{"later dip", []float64{0, 1, 0.8, 0.6, 0.7}, 3},
		{"monotone", []float64{0, 1, 0.9, 0.8, 0.7}, -1},
		{"plateau is not strict", []float64{0, 1, 0.5, 0.5, 0.6}, -1},
		{"lag one ignored", []float64{0.5, 0.1, 0.6, 0.7, 0.8}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, firstLocalMinimum(tt.values))
		})
	}
}
