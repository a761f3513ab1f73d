package stats

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/tsanalysis/timeseries"
)

// LjungBoxResult represents the result of a Ljung-Box test.
type LjungBoxResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int // Degrees of freedom
}

// LjungBox performs the Ljung-Box portmanteau test on the first lags
// autocorrelations of the series.
// The null hypothesis is that there is no autocorrelation up to lag h.
// If p-value < 0.05, we reject the null and conclude there is significant autocorrelation.
// fitdf is subtracted from the degrees of freedom when testing model residuals;
// pass 0 for a raw series.
func LjungBox(series *timeseries.Series, lags, fitdf int) *LjungBoxResult {
	n := series.Len()
	if n < MinACFLength || lags < 1 {
		return nil
	}

	if lags >= n {
		lags = n - 1
	}

	dof := lags - fitdf
	if dof < 1 {
		dof = 1
	}

	return ljungBoxFromACF(Autocorrelations(series.Values, lags), n, lags, dof)
}

// ljungBoxFromACF computes Q = n(n+2) * sum_{k=1}^{lags} acf(k)^2/(n-k) and its
// chi-squared survival probability.
func ljungBoxFromACF(acf []float64, n, lags, dof int) *LjungBoxResult {
	q := 0.0
	for k := 1; k <= lags && k < len(acf); k++ {
		q += (acf[k] * acf[k]) / float64(n-k)
	}
	q *= float64(n) * float64(n+2)

	chi := distuv.ChiSquared{K: float64(dof)}

	return &LjungBoxResult{
		Statistic: q,
		PValue:    chi.Survival(q),
		Lags:      lags,
		DOF:       dof,
	}
}
