package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/tsanalysis/timeseries"
)

// ADFCriticalValues are the fixed asymptotic critical values compared
// against the ADF-style statistic.
var ADFCriticalValues = map[string]float64{
	"1%":  -3.43,
	"5%":  -2.86,
	"10%": -2.57,
}

// StationarityVerdict is the outcome of a single stationarity test.
type StationarityVerdict struct {
	Statistic      float64            `json:"statistic"`
	PValue         float64            `json:"p_value"`
	CriticalValues map[string]float64 `json:"critical_values"`
	IsStationary   bool               `json:"is_stationary"`
	Lags           int                `json:"lags"`
}

// StationarityResult is the stationarity test battery.
//
// KPSS and PP are nil when they could not be computed; nil means "not
// computed", never "test failed". IsStationary is the ADF verdict. NDiffs is
// the number of first differences after which the ADF check passes (0..2).
type StationarityResult struct {
	ADF          StationarityVerdict  `json:"adf"`
	KPSS         *StationarityVerdict `json:"kpss"`
	PP           *StationarityVerdict `json:"pp"`
	IsStationary bool                 `json:"is_stationary"`
	NDiffs       int                  `json:"ndiffs"`
}

// DegenerateADF returns the verdict used when the ADF check cannot run:
// statistic 0, p-value 1, zero critical values, not stationary.
func DegenerateADF() StationarityVerdict {
	return StationarityVerdict{
		Statistic:      0,
		PValue:         1,
		CriticalValues: map[string]float64{"1%": 0, "5%": 0, "10%": 0},
		IsStationary:   false,
	}
}

// EmptyStationarity returns the battery result used for short series.
func EmptyStationarity() *StationarityResult {
	return &StationarityResult{ADF: DegenerateADF()}
}

// StationarityTests runs the ADF approximation, KPSS and Phillips-Perron on
// the series. Series shorter than MinStationarityLength yield EmptyStationarity.
func StationarityTests(series *timeseries.Series) *StationarityResult {
	if series.Len() < MinStationarityLength {
		return EmptyStationarity()
	}

	adf := ADF(series)
	return &StationarityResult{
		ADF:          adf,
		KPSS:         KPSS(series, "c", 0),
		PP:           PhillipsPerron(series, 0),
		IsStationary: adf.IsStationary,
		NDiffs:       NDiffs(series, 2, "adf"),
	}
}

// ADF performs an approximate Dickey-Fuller unit-root check.
//
// The statistic is corr(diff(x), x[:-1]) * sqrt(n), the p-value is the
// two-sided normal probability 2*(1-Phi(|stat|)), and the series is declared
// stationary when the statistic lies below the 5% critical value -2.86.
// This is a fast approximation of the textbook augmented regression with
// fixed asymptotic critical values, not a replacement for it.
func ADF(series *timeseries.Series) StationarityVerdict {
	n := series.Len()
	if n < 3 {
		return DegenerateADF()
	}

	diff := series.Diff().Values
	lagged := series.Values[:n-1]

	corr := stat.Correlation(diff, lagged, nil)
	if math.IsNaN(corr) || math.IsInf(corr, 0) {
		// Constant differences or levels carry no evidence either way.
		v := DegenerateADF()
		v.CriticalValues = copyCriticalValues(ADFCriticalValues)
		return v
	}

	adfStat := corr * math.Sqrt(float64(n))
	pValue := 2 * distuv.UnitNormal.Survival(math.Abs(adfStat))

	return StationarityVerdict{
		Statistic:      adfStat,
		PValue:         pValue,
		CriticalValues: copyCriticalValues(ADFCriticalValues),
		IsStationary:   adfStat < ADFCriticalValues["5%"],
	}
}

// KPSS performs the Kwiatkowski-Phillips-Schmidt-Shin test for stationarity.
// The null hypothesis is that the series is stationary.
// If p-value < 0.05, we reject the null and conclude the series is non-stationary.
// regression is "c" (level) or "ct" (trend); nlags <= 0 selects
// ceil(12*(n/100)^0.25) Bartlett lags. Returns nil when not computable.
func KPSS(series *timeseries.Series, regression string, nlags int) *StationarityVerdict {
	n := series.Len()
	if n < MinACFLength {
		return nil
	}

	if nlags <= 0 {
		nlags = int(math.Ceil(12 * math.Pow(float64(n)/100, 0.25)))
	}
	if nlags >= n {
		nlags = n - 1
	}

	residuals := make([]float64, n)
	if regression == "ct" {
		t := make([]float64, n)
		for i := range t {
			t[i] = float64(i)
		}
		a, b := stat.LinearRegression(t, series.Values, nil, false)
		for i, v := range series.Values {
			residuals[i] = v - a - b*t[i]
		}
	} else {
		regression = "c"
		copy(residuals, series.Demeaned())
	}

	s2 := bartlettLongRunVariance(residuals, nlags)
	if s2 <= 0 {
		return nil
	}

	etaSq, cum := 0.0, 0.0
	for _, r := range residuals {
		cum += r
		etaSq += cum * cum
	}
	kpssStat := etaSq / (float64(n) * float64(n) * s2)

	var criticalVals map[string]float64
	if regression == "ct" {
		criticalVals = map[string]float64{"10%": 0.119, "5%": 0.146, "1%": 0.216}
	} else {
		criticalVals = map[string]float64{"10%": 0.347, "5%": 0.463, "1%": 0.739}
	}

	pValue := kpssPValue(kpssStat, regression)

	return &StationarityVerdict{
		Statistic:      kpssStat,
		PValue:         pValue,
		CriticalValues: criticalVals,
		IsStationary:   pValue >= 0.05,
		Lags:           nlags,
	}
}

// PhillipsPerron performs the Phillips-Perron test for unit root.
// It runs the Dickey-Fuller regression diff(y) = a + b*y[t-1] and corrects
// the t-statistic of b for serial correlation with a Bartlett long-run
// variance. nlags <= 0 selects floor(4*(n/100)^0.25). Returns nil when the
// regression is degenerate.
func PhillipsPerron(series *timeseries.Series, nlags int) *StationarityVerdict {
	n := series.Len()
	if n < MinACFLength {
		return nil
	}

	if nlags <= 0 {
		nlags = int(math.Floor(4 * math.Pow(float64(n)/100, 0.25)))
	}

	y := series.Diff().Values
	nObs := len(y)
	x := make([][]float64, nObs)
	for i := range x {
		x[i] = []float64{1, series.Values[i]}
	}

	fit := olsRegression(x, y)
	if fit == nil || fit.StdErrors[1] == 0 || math.IsNaN(fit.StdErrors[1]) {
		return nil
	}

	gamma0 := 0.0
	for _, r := range fit.Residuals {
		gamma0 += r * r
	}
	gamma0 /= float64(nObs)

	lambda2 := bartlettLongRunVariance(fit.Residuals, nlags)
	if lambda2 <= 0 || gamma0 <= 0 {
		return nil
	}

	levels := series.Values[:nObs]
	xMean := stat.Mean(levels, nil)
	sumXDev2 := 0.0
	for _, v := range levels {
		d := v - xMean
		sumXDev2 += d * d
	}
	if sumXDev2 == 0 {
		return nil
	}

	tStat := fit.Coeffs[1] / fit.StdErrors[1]
	correction := (lambda2 - gamma0) * math.Sqrt(float64(nObs)) / (2 * math.Sqrt(lambda2) * math.Sqrt(sumXDev2))
	ppStat := math.Sqrt(gamma0/lambda2)*tStat - correction

	pValue := mackinnonPValue(ppStat)

	return &StationarityVerdict{
		Statistic:      ppStat,
		PValue:         pValue,
		CriticalValues: copyCriticalValues(ADFCriticalValues),
		IsStationary:   ppStat < ADFCriticalValues["5%"],
		Lags:           nlags,
	}
}

// mackinnonPValue approximates the p-value of a Dickey-Fuller type statistic
// (constant, no trend) by interpolating MacKinnon (1994) asymptotic quantiles.
func mackinnonPValue(t float64) float64 {
	switch {
	case t < -3.96:
		return 0.001
	case t < -3.43:
		return 0.01
	case t < -2.86:
		return 0.05
	case t < -2.57:
		return 0.10
	case t < -1.94:
		return 0.25
	case t < -1.62:
		return 0.50
	default:
		return math.Min(0.5+(t+1.62)*0.25, 0.99)
	}
}

// kpssPValue approximates the p-value for the KPSS test from the tabulated
// critical values (10%: 0.347, 5%: 0.463, 1%: 0.739 for level stationarity).
func kpssPValue(eta float64, regression string) float64 {
	if regression == "ct" {
		switch {
		case eta > 0.216:
			return 0.01
		case eta > 0.146:
			return 0.05
		case eta > 0.119:
			return 0.10
		default:
			return math.Min(0.10+(0.119-eta)*2, 0.99)
		}
	}

	switch {
	case eta > 0.739:
		return 0.01
	case eta > 0.463:
		return 0.05
	case eta > 0.347:
		return 0.10
	default:
		return math.Min(0.10+(0.347-eta)*0.5, 0.99)
	}
}

func copyCriticalValues(src map[string]float64) map[string]float64 {
	dst := make(map[string]float64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
