package stats

import (
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/tsanalysis/timeseries"
)

// CanonicalPeriods are the common calendar periods probed by fixed-period
// correlation: weekly, monthly, hourly, daily-of-month, yearly.
var CanonicalPeriods = []int{7, 12, 24, 30, 365}

const (
	// maxFourierPeaks is the number of spectral peaks kept.
	maxFourierPeaks = 5
	// dominanceThreshold is the correlation a period needs to be dominant.
	dominanceThreshold = 0.3
	// peakCandidateRatio is the fraction of the strongest peak magnitude a
	// spectral peak needs to be probed as a candidate period.
	peakCandidateRatio = 0.1
)

// SpectralPeak is a local maximum of the periodogram.
type SpectralPeak struct {
	Frequency float64 `json:"frequency"`
	Period    float64 `json:"period"`
	Magnitude float64 `json:"magnitude"`
}

// SeasonalityResult holds the periodicity analysis of a series.
type SeasonalityResult struct {
	SeasonalPeriods       []int                 `json:"seasonal_periods"`
	SeasonalStrengths     []float64             `json:"seasonal_strengths"`
	DominantPeriod        *int                  `json:"dominant_period"`
	SeasonalDecomposition *DecompositionSummary `json:"seasonal_decomposition"`
	FourierPeaks          []SpectralPeak        `json:"fourier_peaks"`
}

// EmptySeasonality returns the seasonality result used for short series.
func EmptySeasonality() *SeasonalityResult {
	return &SeasonalityResult{
		SeasonalPeriods:   []int{},
		SeasonalStrengths: []float64{},
		FourierPeaks:      []SpectralPeak{},
	}
}

// Seasonality detects periodic structure in the series.
//
// Spectral peaks are the local maxima of the periodogram whose period lies in
// [2, min(maxPeriods, n/4)], ranked by magnitude (top 5). Candidate periods
// are the canonical periods shorter than n/2 plus the rounded periods of the
// spectral peaks holding at least 10% of the strongest peak's power; each
// candidate is probed by correlating the series with itself shifted by the
// period. SeasonalStrengths holds |corr| per candidate. The dominant period is
// the candidate with the largest in-phase correlation above 0.3; ties go to
// the shorter period.
func Seasonality(series *timeseries.Series, maxPeriods int) *SeasonalityResult {
	n := series.Len()
	if n < MinSeasonalityLength {
		return EmptySeasonality()
	}

	x := series.Values
	result := EmptySeasonality()
	result.FourierPeaks = FourierPeaks(x, EffectiveLags(n, maxPeriods))

	bestCorr := dominanceThreshold
	for _, period := range candidatePeriods(n, result.FourierPeaks) {
		corr := stat.Correlation(x[:n-period], x[period:], nil)
		if math.IsNaN(corr) {
			continue
		}

		result.SeasonalPeriods = append(result.SeasonalPeriods, period)
		result.SeasonalStrengths = append(result.SeasonalStrengths, math.Abs(corr))

		if corr > bestCorr {
			p := period
			result.DominantPeriod = &p
			bestCorr = corr
		}
	}

	if result.DominantPeriod != nil {
		result.SeasonalDecomposition = SummarizeDecomposition(series, *result.DominantPeriod)
	}

	return result
}

// candidatePeriods returns the sorted, de-duplicated periods to probe.
func candidatePeriods(n int, peaks []SpectralPeak) []int {
	seen := make(map[int]struct{})
	var periods []int
	add := func(p int) {
		if p < 2 || p >= n/2 {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		periods = append(periods, p)
	}

	for _, p := range CanonicalPeriods {
		add(p)
	}
	if len(peaks) > 0 {
		floor := peaks[0].Magnitude * peakCandidateRatio
		for _, pk := range peaks {
			if pk.Magnitude >= floor {
				add(int(math.Round(pk.Period)))
			}
		}
	}

	sort.Ints(periods)
	return periods
}

// FourierPeaks returns up to five periodogram local maxima with periods in
// [2, maxPeriod], strongest first.
func FourierPeaks(x []float64, maxPeriod int) []SpectralPeak {
	freqs, power := Periodogram(x)

	peaks := []SpectralPeak{}
	for i := 1; i < len(power)-1; i++ {
		if !(power[i] > power[i-1] && power[i] > power[i+1]) || freqs[i] <= 0 {
			continue
		}
		period := 1 / freqs[i]
		if period >= 2 && period <= float64(maxPeriod) {
			peaks = append(peaks, SpectralPeak{
				Frequency: freqs[i],
				Period:    period,
				Magnitude: power[i],
			})
		}
	}

	sort.SliceStable(peaks, func(a, b int) bool { return peaks[a].Magnitude > peaks[b].Magnitude })
	if len(peaks) > maxFourierPeaks {
		peaks = peaks[:maxFourierPeaks]
	}
	return peaks
}

// Periodogram returns the one-sided power spectral density estimate of the
// mean-removed series at frequencies k/n, k = 0..n/2 (unit sampling rate).
func Periodogram(x []float64) (freqs, power []float64) {
	n := len(x)
	if n < 2 {
		return []float64{}, []float64{}
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, timeseries.New(x).Demeaned())

	freqs = make([]float64, len(coeffs))
	power = make([]float64, len(coeffs))
	for k, c := range coeffs {
		freqs[k] = fft.Freq(k)
		a := cmplx.Abs(c)
		power[k] = a * a / float64(n)
		// Fold negative frequencies; DC and the Nyquist bin have no mirror.
		if k > 0 && !(n%2 == 0 && k == len(coeffs)-1) {
			power[k] *= 2
		}
	}

	return freqs, power
}
