package quality

import (
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/tsanalysis/timeseries"
)

// Outlier rule and frequency table parameters.
const (
	IQRMultiplier     = 1.5
	TopFrequentValues = 5
	minMomentSamples  = 4
)

// Quantiles holds the lower and upper quartiles of a numeric column.
type Quantiles struct {
	Q25 float64 `json:"q25"`
	Q75 float64 `json:"q75"`
}

// FrequentValue is one entry of a column's frequency table.
type FrequentValue struct {
	Value      string  `json:"value"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ColumnStats describes one raw column.
//
// The optional numeric fields are nil when the column is not numeric or
// has no usable values, and also when a statistic is undefined for the
// sample (std of a single value, skewness of a constant column). Consumers
// must check them before formatting.
type ColumnStats struct {
	Name         string   `json:"name"`
	InferredType DataType `json:"inferred_type"`
	Count        int      `json:"count"`
	NullCount    int      `json:"null_count"`
	NullPct      float64  `json:"null_pct"`
	UniqueCount  int      `json:"unique_count"`
	UniquePct    float64  `json:"unique_pct"`

	Mean          *float64   `json:"mean"`
	Median        *float64   `json:"median"`
	Std           *float64   `json:"std"`
	Min           *float64   `json:"min"`
	Max           *float64   `json:"max"`
	Quantiles     *Quantiles `json:"quantiles"`
	Skewness      *float64   `json:"skewness"`
	Kurtosis      *float64   `json:"kurtosis"`
	OutliersCount *int       `json:"outliers_count"`
	OutliersPct   *float64   `json:"outliers_pct"`

	Mode               *string         `json:"mode"`
	MostFrequentValues []FrequentValue `json:"most_frequent_values"`
}

// ColumnStatistics computes descriptive statistics for a raw column.
func ColumnStatistics(c timeseries.Column) ColumnStats {
	present := nonMissing(c.Values)
	cs := ColumnStats{
		Name:               c.Name,
		InferredType:       InferType(c.Values),
		Count:              len(c.Values),
		NullCount:          len(c.Values) - len(present),
		MostFrequentValues: []FrequentValue{},
	}
	cs.NullPct = percent(cs.NullCount, cs.Count)

	freq := frequencies(present)
	cs.UniqueCount = len(freq)
	cs.UniquePct = percent(cs.UniqueCount, cs.Count)

	if len(present) == 0 {
		return cs
	}

	if cs.InferredType.IsNumeric() {
		cs.numeric(numericValues(present))
	}

	top := freq
	if len(top) > TopFrequentValues {
		top = top[:TopFrequentValues]
	}
	for _, f := range top {
		cs.MostFrequentValues = append(cs.MostFrequentValues, FrequentValue{
			Value:      f.key,
			Count:      f.count,
			Percentage: percent(f.count, len(present)),
		})
	}
	mode := top[0].key
	cs.Mode = &mode

	return cs
}

// FailedColumn is the placeholder statistics for a column whose analysis
// failed.
func FailedColumn(c timeseries.Column) ColumnStats {
	return ColumnStats{
		Name:               c.Name,
		InferredType:       TypeError,
		Count:              len(c.Values),
		MostFrequentValues: []FrequentValue{},
	}
}

func (cs *ColumnStats) numeric(x []float64) {
	if len(x) == 0 {
		return
	}

	mean, _ := stats.Mean(x)
	median, _ := stats.Median(x)
	std, _ := stats.StandardDeviationSample(x)
	cs.Mean = roundPtr(mean, statPlaces)
	cs.Median = roundPtr(median, statPlaces)
	cs.Std = roundPtr(std, statPlaces)
	cs.Min = roundPtr(floats.Min(x), statPlaces)
	cs.Max = roundPtr(floats.Max(x), statPlaces)

	sorted := sortedCopy(x)
	q1 := stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	q3 := stat.Quantile(0.75, stat.LinInterp, sorted, nil)
	cs.Quantiles = &Quantiles{Q25: round(q1, statPlaces), Q75: round(q3, statPlaces)}

	if len(x) >= minMomentSamples {
		cs.Skewness = roundPtr(stat.Skew(x, nil), statPlaces)
		cs.Kurtosis = roundPtr(stat.ExKurtosis(x, nil), statPlaces)
	}

	outliers := countOutliers(x, q1, q3)
	cs.OutliersCount = &outliers
	pct := percent(outliers, len(x))
	cs.OutliersPct = &pct
}

// countOutliers applies the IQR rule: x is an outlier iff it lies outside
// [q1 - 1.5*IQR, q3 + 1.5*IQR].
func countOutliers(x []float64, q1, q3 float64) int {
	iqr := q3 - q1
	lower := q1 - IQRMultiplier*iqr
	upper := q3 + IQRMultiplier*iqr

	n := 0
	for _, v := range x {
		if v < lower || v > upper {
			n++
		}
	}
	return n
}

type valueCount struct {
	key   string
	count int
}

// frequencies counts distinct cell values, most frequent first. Ties keep
// first-occurrence order.
func frequencies(values []any) []valueCount {
	index := make(map[string]int)
	var counts []valueCount
	for _, v := range values {
		k := cellKey(v)
		if j, ok := index[k]; ok {
			counts[j].count++
			continue
		}
		index[k] = len(counts)
		counts = append(counts, valueCount{key: k, count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})
	return counts
}

func numericValues(values []any) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := timeseries.ToFloat(v); ok {
			out = append(out, f)
		}
	}
	return out
}

func sortedCopy(x []float64) []float64 {
	s := make([]float64, len(x))
	copy(s, x)
	sort.Float64s(s)
	return s
}
