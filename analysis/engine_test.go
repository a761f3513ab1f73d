package analysis

import (
	"bytes"
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/tsanalysis/quality"
	"github.com/sartorproj/tsanalysis/stats"
	"github.com/sartorproj/tsanalysis/timeseries"
)

func seasonalSeries(n int, seed uint64) *timeseries.Series {
	r := rand.New(rand.NewPCG(seed, seed+1))
	values := make([]float64, n)
	for i := range values {
		values[i] = math.Sin(2*math.Pi*float64(i)/20) + 0.1*r.NormFloat64()
	}
	return timeseries.NewNamed("signal", values)
}

func TestAnalyzeSeries(t *testing.T) {
	engine := New(DefaultOptions())
	res := engine.AnalyzeSeries(seasonalSeries(500, 1), 0)

	_, err := uuid.Parse(res.AnalysisID)
	require.NoError(t, err)
	assert.False(t, res.AnalysisTimestamp.IsZero())
	assert.GreaterOrEqual(t, res.ComputationTimeSeconds, 0.0)
	assert.Empty(t, res.ComponentFailures)
	assert.NotNil(t, res.ComponentFailures)
	assert.Nil(t, res.DataQuality)

	assert.Equal(t, "signal", res.SeriesName)
	assert.Equal(t, 500, res.SeriesLength)
	assert.Equal(t, stats.DefaultMaxLags, res.MaxLags)

	assert.Len(t, res.Autocorrelation.Values, 51)
	assert.Equal(t, 1.0, res.Autocorrelation.Values[0])
	assert.NotNil(t, res.Autocorrelation.LjungBoxPValue)
	assert.Len(t, res.PartialAutocorrelation.Values, 51)
	assert.Len(t, res.MutualInformation.MIValues, stats.DefaultMIMaxLags+1)
	assert.NotEmpty(t, res.Hurst.Scales)
	assert.NotNil(t, res.Stationarity.KPSS)

	require.NotNil(t, res.Seasonality.DominantPeriod)
	assert.InDelta(t, 20, *res.Seasonality.DominantPeriod, 1)
}

func TestAnalyzeSeriesLagCaps(t *testing.T) {
	engine := New(DefaultOptions())
	res := engine.AnalyzeSeries(seasonalSeries(400, 2), 12)

	assert.Equal(t, 12, res.MaxLags)
	assert.Len(t, res.Autocorrelation.Lags, 13)
	assert.Len(t, res.PartialAutocorrelation.Lags, 13)
	assert.Len(t, res.MutualInformation.Lags, 13)
}

func TestAnalyzeSeriesDeterministic(t *testing.T) {
	engine := New(DefaultOptions())
	series := seasonalSeries(300, 3)

	a := engine.AnalyzeSeries(series, 30)
	b := engine.AnalyzeSeries(series, 30)

	assert.NotEqual(t, a.AnalysisID, b.AnalysisID)
	assert.Equal(t, a.Autocorrelation, b.Autocorrelation)
	assert.Equal(t, a.PartialAutocorrelation, b.PartialAutocorrelation)
	assert.Equal(t, a.MutualInformation, b.MutualInformation)
	assert.Equal(t, a.Hurst, b.Hurst)
	assert.Equal(t, a.Stationarity, b.Stationarity)
	assert.Equal(t, a.Seasonality, b.Seasonality)
}

func TestAnalyzeSeriesShort(t *testing.T) {
	engine := New(DefaultOptions())

	for _, series := range []*timeseries.Series{nil, timeseries.New(nil), timeseries.New([]float64{1, 2, 3, 4, 5})} {
		res := engine.AnalyzeSeries(series, 50)

		assert.Empty(t, res.ComponentFailures)
		assert.Empty(t, res.Autocorrelation.Values)
		assert.Empty(t, res.PartialAutocorrelation.Values)
		assert.Empty(t, res.MutualInformation.MIValues)
		assert.Equal(t, stats.HurstInsufficientData, res.Hurst.Interpretation)
		assert.Equal(t, 1.0, res.Stationarity.ADF.PValue)
		assert.Nil(t, res.Seasonality.DominantPeriod)
	}
}

func TestAnalyzeSeriesComponentFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	var logs bytes.Buffer

	opts := DefaultOptions()
	opts.Metrics = metrics
	opts.Logger = zerolog.New(&logs)
	engine := New(opts)
	engine.est.hurst = func(*timeseries.Series) *stats.HurstResult { panic("boom") }

	res := engine.AnalyzeSeries(seasonalSeries(200, 4), 20)

	require.Len(t, res.ComponentFailures, 1)
	assert.Equal(t, ComponentFailure{Component: ComponentHurst, Reason: "boom"}, res.ComponentFailures[0])
	assert.Equal(t, 0.5, res.Hurst.HurstExponent)
	assert.Equal(t, stats.HurstError, res.Hurst.Interpretation)

	// Siblings are unaffected.
	assert.Len(t, res.Autocorrelation.Values, 21)
	assert.NotEmpty(t, res.MutualInformation.MIValues)
	assert.NotEmpty(t, res.Seasonality.FourierPeaks)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.failures.WithLabelValues("hurst")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.analyses.WithLabelValues("series")))
	assert.Contains(t, logs.String(), "component failed")
	assert.Contains(t, logs.String(), res.AnalysisID)
}

func TestAnalyzeSeriesACFFailureEmptiesPACF(t *testing.T) {
	engine := New(DefaultOptions())
	engine.est.acf = func(*timeseries.Series, int) *stats.ACFResult { panic("acf") }

	res := engine.AnalyzeSeries(seasonalSeries(200, 5), 20)

	require.Len(t, res.ComponentFailures, 1)
	assert.Equal(t, ComponentACF, res.ComponentFailures[0].Component)
	assert.Equal(t, *stats.EmptyACF(), res.Autocorrelation)
	assert.Empty(t, res.PartialAutocorrelation.Values)
}

func TestAnalyzeSeriesConcurrentRequests(t *testing.T) {
	engine := New(Options{Workers: 2})
	series := seasonalSeries(300, 6)
	want := engine.AnalyzeSeries(series, 25)

	var wg sync.WaitGroup
	results := make([]*Result, 6)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = engine.AnalyzeSeries(series, 25)
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want.Autocorrelation, got.Autocorrelation)
		assert.Equal(t, want.Hurst, got.Hurst)
	}
}

func testTable(t *testing.T, n int) *timeseries.Table {
	t.Helper()
	value := make([]any, n)
	label := make([]any, n)
	for i := 0; i < n; i++ {
		value[i] = math.Sin(float64(i) / 3)
		label[i] = []string{"a", "b", "c"}[i%3]
	}
	tbl, err := timeseries.NewTable(map[string][]any{"value": value, "label": label})
	require.NoError(t, err)
	return tbl
}

func TestAnalyzeTable(t *testing.T) {
	reg := prometheus.NewRegistry()
	opts := DefaultOptions()
	opts.Metrics = NewMetrics(reg)
	engine := New(opts)

	res, err := engine.AnalyzeTable(testTable(t, 150))
	require.NoError(t, err)

	require.NotNil(t, res.DataQuality)
	assert.Equal(t, 150, res.DataQuality.TotalRows)
	assert.Equal(t, 100.0, res.DataQuality.CompletenessScore)
	assert.Equal(t, quality.Analyze(testTable(t, 150)), res.DataQuality)
	assert.Empty(t, res.ComponentFailures)
	assert.Equal(t, 1.0, testutil.ToFloat64(opts.Metrics.analyses.WithLabelValues("table")))
}

func TestAnalyzeTableColumnFailure(t *testing.T) {
	engine := New(DefaultOptions())
	engine.est.column = func(c timeseries.Column) quality.ColumnStats {
		if c.Name == "label" {
			panic("bad column")
		}
		return quality.ColumnStatistics(c)
	}

	res, err := engine.AnalyzeTable(testTable(t, 30))
	require.NoError(t, err)

	require.Len(t, res.ComponentFailures, 1)
	assert.Equal(t, ComponentQuality, res.ComponentFailures[0].Component)
	assert.Equal(t, "label: bad column", res.ComponentFailures[0].Reason)

	cols := res.DataQuality.Columns
	require.Len(t, cols, 2)
	assert.Equal(t, quality.TypeError, cols[0].InferredType)
	assert.Equal(t, quality.TypeFloat, cols[1].InferredType)
}

func TestAnalyzeTableReportFailure(t *testing.T) {
	engine := New(DefaultOptions())
	engine.est.report = func(*timeseries.Table, []quality.ColumnStats) *quality.Report { panic("report") }

	res, err := engine.AnalyzeTable(testTable(t, 10))
	require.NoError(t, err)
	assert.Equal(t, quality.EmptyReport(), res.DataQuality)
	require.Len(t, res.ComponentFailures, 1)
}

func TestAnalyzeTableInvalid(t *testing.T) {
	engine := New(DefaultOptions())

	_, err := engine.AnalyzeTable(nil)
	assert.ErrorIs(t, err, ErrNilTable)

	ragged := &timeseries.Table{Columns: []timeseries.Column{
		{Name: "a", Values: []any{1, 2}},
		{Name: "b", Values: []any{1}},
	}}
	_, err = engine.AnalyzeTable(ragged)
	assert.ErrorIs(t, err, timeseries.ErrRaggedColumns)
}

func TestAnalyzeColumn(t *testing.T) {
	engine := New(DefaultOptions())
	tbl := testTable(t, 120)

	res, err := engine.AnalyzeColumn(tbl, "value", 10)
	require.NoError(t, err)
	assert.Equal(t, "value", res.SeriesName)
	assert.Equal(t, 120, res.SeriesLength)
	require.NotNil(t, res.DataQuality)
	assert.Equal(t, 120, res.DataQuality.TotalRows)
	assert.Empty(t, res.ComponentFailures)

	_, err = engine.AnalyzeColumn(tbl, "nope", 10)
	assert.ErrorIs(t, err, timeseries.ErrColumnNotFound)

	_, err = engine.AnalyzeColumn(nil, "value", 10)
	assert.ErrorIs(t, err, ErrNilTable)
}

func TestAnalyzeColumnInsufficientData(t *testing.T) {
	engine := New(DefaultOptions())
	tbl := testTable(t, 30)

	_, err := engine.AnalyzeColumn(tbl, "value", 10)
	require.ErrorIs(t, err, ErrInsufficientData)

	var ide *InsufficientDataError
	require.ErrorAs(t, err, &ide)
	assert.Equal(t, ComponentHurst, ide.Component)
	assert.Equal(t, stats.MinHurstLength, ide.Required)
	assert.Equal(t, 30, ide.Got)

	// Only the requested components are checked.
	res, err := engine.AnalyzeColumn(tbl, "value", 10, ComponentACF, ComponentStationarity)
	require.NoError(t, err)
	assert.Equal(t, stats.HurstInsufficientData, res.Hurst.Interpretation)

	// Text cells are dropped by cleaning.
	_, err = engine.AnalyzeColumn(tbl, "label", 10, ComponentACF)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestNewDefaults(t *testing.T) {
	engine := New(Options{})

	assert.Equal(t, DefaultWorkers, engine.Pool().Size())
	assert.Equal(t, stats.DefaultMaxLags, engine.opts.MaxLags)
	assert.Equal(t, stats.DefaultMIMaxLags, engine.opts.MIMaxLags)
	assert.Equal(t, stats.DefaultMaxPeriods, engine.opts.MaxPeriods)

	shared := NewPool(3)
	assert.Same(t, shared, New(Options{Pool: shared}).Pool())
}
