package stats

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/tsanalysis/timeseries"
)

const (
	// miNeighbors is k of the Kraskov-Stoegbauer-Grassberger estimator.
	miNeighbors = 3
	// miMinSamples is the minimum lagged pair count for a non-zero estimate.
	miMinSamples = 10
	// miJitter scales the tie-breaking noise added to standardised samples.
	miJitter = 1e-10
	miSeed   = 42
)

// MIResult holds the lagged mutual information curve of a series.
type MIResult struct {
	Lags            []int     `json:"lags"`
	MIValues        []float64 `json:"mi_values"`
	OptimalLag      *int      `json:"optimal_lag"`
	MIThreshold     float64   `json:"mi_threshold"`
	SignificantLags []int     `json:"significant_lags"`
}

// EmptyMI returns the mutual information result used for short series.
func EmptyMI() *MIResult {
	return &MIResult{
		Lags:            []int{},
		MIValues:        []float64{},
		SignificantLags: []int{},
	}
}

// MutualInformation estimates I(x[t]; x[t+k]) for k = 0..min(maxLags, n/4)
// with a k-nearest-neighbour estimator. MI(0) is 0 by convention.
//
// OptimalLag is the first lag k >= 2 that is a strict local minimum of the
// curve. MIThreshold is mean(MI) + std(MI) over all lags and SignificantLags
// lists the lags whose MI exceeds it.
//
// A constant series gives an all-zero curve with no optimal lag, and a lag
// whose leading or trailing slice is constant gives 0.
func MutualInformation(series *timeseries.Series, maxLags int) *MIResult {
	n := series.Len()
	if n < MinMILength {
		return EmptyMI()
	}

	maxLag := EffectiveLags(n, maxLags)
	x := series.Values

	lags := make([]int, maxLag+1)
	values := make([]float64, maxLag+1)
	for k := range lags {
		lags[k] = k
	}
	if isConstant(x) {
		return &MIResult{
			Lags:            lags,
			MIValues:        values,
			SignificantLags: []int{},
		}
	}

	for k := 1; k <= maxLag; k++ {
		if n-k < miMinSamples {
			continue
		}
		values[k] = KSGMutualInformation(x[:n-k], x[k:], uint64(k))
	}

	result := &MIResult{
		Lags:            lags,
		MIValues:        values,
		SignificantLags: []int{},
	}

	if i := firstLocalMinimum(values); i >= 0 {
		lag := lags[i]
		result.OptimalLag = &lag
	}

	mean, std := stat.PopMeanStdDev(values, nil)
	result.MIThreshold = mean + std

	for i := 1; i < len(values); i++ {
		if values[i] > result.MIThreshold {
			result.SignificantLags = append(result.SignificantLags, lags[i])
		}
	}

	return result
}

// firstLocalMinimum returns the first index i >= 2 with
// values[i-1] > values[i] < values[i+1], or -1. Curves of three values or
// fewer have no minimum.
func firstLocalMinimum(values []float64) int {
	if len(values) <= 3 {
		return -1
	}
	for i := 2; i < len(values)-1; i++ {
		if values[i] < values[i-1] && values[i] < values[i+1] {
			return i
		}
	}
	return -1
}

// KSGMutualInformation estimates the mutual information in nats between two
// continuous samples of equal length using the Kraskov estimator (algorithm 1)
// with k = 3 neighbours under the max-norm. Both samples are standardised and
// perturbed by a tiny seeded noise so that ties do not bias the neighbour
// counts; the same inputs and stream always give the same estimate.
// Negative estimates are clipped to 0, and a constant sample carries no
// information.
func KSGMutualInformation(x, y []float64, stream uint64) float64 {
	n := len(x)
	if n != len(y) || n <= miNeighbors {
		return 0
	}
	if isConstant(x) || isConstant(y) {
		return 0
	}

	rng := rand.New(rand.NewPCG(miSeed, stream))
	xs := standardise(x, rng)
	ys := standardise(y, rng)

	// Points ordered by x so the neighbour search can stop early.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return xs[order[a]] < xs[order[b]] })

	sortedX := make([]float64, n)
	pos := make([]int, n)
	for rank, idx := range order {
		sortedX[rank] = xs[idx]
		pos[idx] = rank
	}
	sortedY := append([]float64(nil), ys...)
	sort.Float64s(sortedY)

	var sumDigamma float64
	for i := 0; i < n; i++ {
		eps := kthNeighbourDistance(i, xs, ys, order, sortedX, pos[i])
		radius := math.Nextafter(eps, 0)

		nx := countWithin(sortedX, xs[i], radius) - 1
		ny := countWithin(sortedY, ys[i], radius) - 1
		sumDigamma += mathext.Digamma(float64(nx+1)) + mathext.Digamma(float64(ny+1))
	}

	mi := mathext.Digamma(float64(n)) + mathext.Digamma(miNeighbors) - sumDigamma/float64(n)
	return math.Max(0, mi)
}

// kthNeighbourDistance returns the max-norm distance from point i to its k-th
// nearest neighbour in the joint space.
func kthNeighbourDistance(i int, xs, ys []float64, order []int, sortedX []float64, rank int) float64 {
	var best [miNeighbors]float64
	for j := range best {
		best[j] = math.Inf(1)
	}

	consider := func(j int) {
		d := math.Max(math.Abs(xs[i]-xs[j]), math.Abs(ys[i]-ys[j]))
		if d >= best[miNeighbors-1] {
			return
		}
		p := miNeighbors - 1
		for p > 0 && best[p-1] > d {
			best[p] = best[p-1]
			p--
		}
		best[p] = d
	}

	lo, hi := rank-1, rank+1
	for lo >= 0 || hi < len(sortedX) {
		kth := best[miNeighbors-1]
		loOK := lo >= 0 && xs[i]-sortedX[lo] < kth
		hiOK := hi < len(sortedX) && sortedX[hi]-xs[i] < kth
		if !loOK && !hiOK {
			break
		}
		if loOK {
			consider(order[lo])
			lo--
		}
		if hiOK {
			consider(order[hi])
			hi++
		}
	}

	return best[miNeighbors-1]
}

// countWithin counts the values of the sorted slice within radius of v,
// including v itself.
func countWithin(sorted []float64, v, radius float64) int {
	lo := sort.SearchFloat64s(sorted, v-radius)
	hi := sort.Search(len(sorted), func(i int) bool { return sorted[i] > v+radius })
	return hi - lo
}

// isConstant reports whether every value of v is equal.
func isConstant(v []float64) bool {
	return len(v) == 0 || floats.Min(v) == floats.Max(v)
}

// standardise returns (v-mean)/std plus seeded jitter.
func standardise(v []float64, rng *rand.Rand) []float64 {
	mean, std := stat.MeanStdDev(v, nil)
	if std == 0 || math.IsNaN(std) {
		std = 1
	}

	out := make([]float64, len(v))
	scale := 0.0
	for i, x := range v {
		out[i] = (x - mean) / std
		scale += math.Abs(out[i])
	}
	scale = miJitter * math.Max(1, scale/float64(len(v)))

	for i := range out {
		out[i] += scale * rng.NormFloat64()
	}
	return out
}
