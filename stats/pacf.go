package stats

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/tsanalysis/timeseries"
)

// PACF calculates the partial autocorrelation function for lags
// 0..min(maxLags, n/4) by solving the Yule-Walker equations of each order.
// Series shorter than MinACFLength yield an empty result.
func PACF(series *timeseries.Series, maxLags int) *LagResult {
	return PACFFromACF(ACF(series, maxLags), series.Len())
}

// PACFFromACF derives the PACF from an already computed ACF of a series of
// length n. The returned bands are identical to the ACF bands.
func PACFFromACF(acf *ACFResult, n int) *LagResult {
	if acf == nil || len(acf.Values) == 0 {
		r := EmptyLagResult()
		return &r
	}

	values := YuleWalkerPACF(acf.Values)
	r := newLagResult(values, ConfidenceBand(n))
	return &r
}

// YuleWalkerPACF returns PACF values for lags 0..len(acf)-1. For each order k
// the k x k Toeplitz system R*phi = r, R[i][j] = acf(|i-j|), r[i] = acf(i+1),
// is solved and phi[k-1] is the partial autocorrelation at lag k.
// PACF(0) = 1 and PACF(1) = ACF(1). A singular system yields 0 for its order.
func YuleWalkerPACF(acf []float64) []float64 {
	if len(acf) == 0 {
		return []float64{}
	}

	pacf := make([]float64, len(acf))
	pacf[0] = 1
	if len(acf) > 1 {
		pacf[1] = acf[1]
	}

	for k := 2; k < len(acf); k++ {
		pacf[k] = yuleWalkerLast(acf, k)
	}

	return pacf
}

// yuleWalkerLast solves the order-k Yule-Walker system and returns the last
// coefficient, or 0 when the system is singular.
func yuleWalkerLast(acf []float64, k int) float64 {
	r := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			r.SetSym(i, j, acf[j-i])
		}
	}
	if mat.Det(r) == 0 {
		return 0
	}

	rhs := mat.NewVecDense(k, append([]float64(nil), acf[1:k+1]...))

	var phi mat.VecDense
	// An ill-conditioned but solvable system still carries a usable solution.
	if err := phi.SolveVec(r, rhs); !usableSolution(err) {
		return 0
	}

	last := phi.AtVec(k - 1)
	if math.IsNaN(last) || math.IsInf(last, 0) {
		return 0
	}
	return last
}
