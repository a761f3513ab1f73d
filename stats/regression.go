package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// olsFit is an ordinary least squares fit of y on the columns of X.
type olsFit struct {
	Coeffs    []float64
	StdErrors []float64
	Residuals []float64
}

// olsRegression regresses y on the rows of x (one row per observation, one
// column per regressor). It returns nil when the design matrix is rank
// deficient or has no residual degrees of freedom.
func olsRegression(x [][]float64, y []float64) *olsFit {
	n := len(y)
	if n == 0 || len(x) != n {
		return nil
	}
	k := len(x[0])
	if n <= k {
		return nil
	}

	design := mat.NewDense(n, k, nil)
	for i, row := range x {
		design.SetRow(i, row)
	}
	obs := mat.NewVecDense(n, append([]float64(nil), y...))

	var xtx mat.SymDense
	xtx.SymOuterK(1, design.T())

	var chol mat.Cholesky
	if ok := chol.Factorize(&xtx); !ok {
		return nil
	}

	var xty mat.VecDense
	xty.MulVec(design.T(), obs)

	var beta mat.VecDense
	if err := chol.SolveVecTo(&beta, &xty); !usableSolution(err) {
		return nil
	}

	var fitted, resid mat.VecDense
	fitted.MulVec(design, &beta)
	resid.SubVec(obs, &fitted)

	sse := mat.Dot(&resid, &resid)
	s2 := sse / float64(n-k)

	var inv mat.SymDense
	if err := chol.InverseTo(&inv); !usableSolution(err) {
		return nil
	}

	fit := &olsFit{
		Coeffs:    make([]float64, k),
		StdErrors: make([]float64, k),
		Residuals: make([]float64, n),
	}
	for i := 0; i < k; i++ {
		fit.Coeffs[i] = beta.AtVec(i)
		fit.StdErrors[i] = math.Sqrt(s2 * inv.At(i, i))
	}
	for i := 0; i < n; i++ {
		fit.Residuals[i] = resid.AtVec(i)
	}

	return fit
}

// usableSolution reports whether a gonum solve result can be used: no error,
// or a finite condition number warning.
func usableSolution(err error) bool {
	if err == nil {
		return true
	}
	var cond mat.Condition
	return errors.As(err, &cond) && !math.IsInf(float64(cond), 1)
}

// bartlettLongRunVariance returns gamma(0) + 2*sum_{l=1}^{lags} w_l*gamma(l)
// with Bartlett weights w_l = 1 - l/(lags+1) and autocovariances normalised by n.
func bartlettLongRunVariance(residuals []float64, lags int) float64 {
	n := len(residuals)
	if n == 0 {
		return 0
	}

	s2 := 0.0
	for _, r := range residuals {
		s2 += r * r
	}
	s2 /= float64(n)

	for l := 1; l <= lags && l < n; l++ {
		cov := 0.0
		for i := l; i < n; i++ {
			cov += residuals[i] * residuals[i-l]
		}
		cov /= float64(n)
		weight := 1.0 - float64(l)/float64(lags+1)
		s2 += 2 * weight * cov
	}

	return s2
}
