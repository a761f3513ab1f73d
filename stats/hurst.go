package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/tsanalysis/timeseries"
)

// Hurst interpretations.
const (
	HurstTrending           = "trending"
	HurstRandomWalk         = "random_walk"
	HurstMeanReverting      = "mean_reverting"
	HurstInsufficientData   = "insufficient_data"
	HurstInsufficientScales = "insufficient_scales"
	HurstInvalidData        = "invalid_data"
	HurstError              = "error"
)

// minHurstScales is the number of usable scales required for the regression.
const minHurstScales = 3

// ScaleObservation is one point of the R/S log-log regression.
type ScaleObservation struct {
	Scale   int     `json:"scale"`
	RSRatio float64 `json:"rs_ratio"`
}

// HurstResult holds the rescaled-range analysis of a series.
//
// RegressionSlope and RegressionIntercept describe the raw OLS fit of
// log10(R/S) on log10(scale). HurstExponent is the slope corrected for the
// small-window bias of R/S (Anis-Lloyd-Peters), so that uncorrelated data
// scores close to 0.5 at every series length.
type HurstResult struct {
	HurstExponent       float64            `json:"hurst_exponent"`
	Scales              []int              `json:"scales"`
	RSValues            []float64          `json:"rs_values"`
	Observations        []ScaleObservation `json:"observations"`
	RegressionSlope     float64            `json:"regression_slope"`
	RegressionIntercept float64            `json:"regression_intercept"`
	RSquared            float64            `json:"r_squared"`
	Interpretation      string             `json:"interpretation"`
}

// DegenerateHurst returns the neutral H = 0.5 result with the given interpretation.
func DegenerateHurst(interpretation string) *HurstResult {
	return &HurstResult{
		HurstExponent:  0.5,
		Scales:         []int{},
		RSValues:       []float64{},
		Observations:   []ScaleObservation{},
		Interpretation: interpretation,
	}
}

// Hurst estimates the Hurst exponent by rescaled-range analysis over dyadic
// window sizes 4, 8, ... up to n/4.
//
// For each scale the series is cut into non-overlapping windows; each window
// contributes R/S, the range of its cumulative mean-centred sum over its
// population standard deviation. Zero-variance windows are skipped and so
// are scales without any usable window.
func Hurst(series *timeseries.Series) *HurstResult {
	n := series.Len()
	if n < MinHurstLength {
		return DegenerateHurst(HurstInsufficientData)
	}

	obs := rescaledRanges(series.Values, hurstScales(n))
	if len(obs) < minHurstScales {
		r := DegenerateHurst(HurstInsufficientScales)
		fillObservations(r, obs)
		return r
	}

	logScales := make([]float64, 0, len(obs))
	logRS := make([]float64, 0, len(obs))
	logExpected := make([]float64, 0, len(obs))
	for _, o := range obs {
		ls, lr := math.Log10(float64(o.Scale)), math.Log10(o.RSRatio)
		if math.IsNaN(lr) || math.IsInf(lr, 0) {
			continue
		}
		logScales = append(logScales, ls)
		logRS = append(logRS, lr)
		logExpected = append(logExpected, math.Log10(ExpectedRS(o.Scale)))
	}

	if len(logScales) < minHurstScales {
		r := DegenerateHurst(HurstInvalidData)
		fillObservations(r, obs)
		return r
	}

	intercept, slope := stat.LinearRegression(logScales, logRS, nil, false)
	rSquared := stat.RSquared(logScales, logRS, nil, intercept, slope)
	_, expectedSlope := stat.LinearRegression(logScales, logExpected, nil, false)

	h := 0.5 + slope - expectedSlope

	r := &HurstResult{
		HurstExponent:       h,
		RegressionSlope:     slope,
		RegressionIntercept: intercept,
		RSquared:            rSquared,
		Interpretation:      interpretHurst(h),
	}
	fillObservations(r, obs)
	return r
}

// ExpectedRS returns the expected R/S of a window of n i.i.d. Gaussian
// values (Anis-Lloyd with the Peters correction).
func ExpectedRS(n int) float64 {
	if n < 2 {
		return 0
	}
	nf := float64(n)

	sum := 0.0
	for i := 1; i < n; i++ {
		sum += math.Sqrt((nf - float64(i)) / float64(i))
	}

	var front float64
	if n <= 340 {
		lg1, _ := math.Lgamma((nf - 1) / 2)
		lg2, _ := math.Lgamma(nf / 2)
		front = math.Exp(lg1-lg2) / math.Sqrt(math.Pi)
	} else {
		front = 1 / math.Sqrt(nf*math.Pi/2)
	}

	return ((nf - 0.5) / nf) * front * sum
}

// hurstScales returns 2^2 .. 2^floor(log2(n/4)).
func hurstScales(n int) []int {
	quarter := n / 4
	scales := []int{}
	for s := 4; s <= quarter; s *= 2 {
		scales = append(scales, s)
	}
	return scales
}

func rescaledRanges(x []float64, scales []int) []ScaleObservation {
	obs := make([]ScaleObservation, 0, len(scales))
	cum := make([]float64, 0, len(x))

	for _, scale := range scales {
		windows := len(x) / scale
		total, valid := 0.0, 0

		for w := 0; w < windows; w++ {
			window := x[w*scale : (w+1)*scale]
			mean, std := stat.PopMeanStdDev(window, nil)
			if std == 0 {
				continue
			}

			cum = cum[:scale]
			for i, v := range window {
				cum[i] = v - mean
			}
			floats.CumSum(cum, cum)

			total += (floats.Max(cum) - floats.Min(cum)) / std
			valid++
		}

		if valid > 0 {
			obs = append(obs, ScaleObservation{Scale: scale, RSRatio: total / float64(valid)})
		}
	}

	return obs
}

func fillObservations(r *HurstResult, obs []ScaleObservation) {
	r.Observations = obs
	r.Scales = make([]int, len(obs))
	r.RSValues = make([]float64, len(obs))
	for i, o := range obs {
		r.Scales[i] = o.Scale
		r.RSValues[i] = o.RSRatio
	}
}

func interpretHurst(h float64) string {
	switch {
	case h < 0.5:
		return HurstMeanReverting
	case h > 0.5:
		return HurstTrending
	default:
		return HurstRandomWalk
	}
}
