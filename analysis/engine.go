package analysis

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sartorproj/tsanalysis/quality"
	"github.com/sartorproj/tsanalysis/stats"
	"github.com/sartorproj/tsanalysis/timeseries"
)

// ErrNilTable is returned when a table operation receives no table.
var ErrNilTable = errors.New("nil table")

// Options configures an Engine. Zero fields take the defaults of
// DefaultOptions.
type Options struct {
	// Workers sizes the pool created when Pool is nil.
	Workers int
	// Pool lets several engines share one bounded pool.
	Pool *Pool

	MaxLags    int
	MIMaxLags  int
	MaxPeriods int

	Logger  zerolog.Logger
	Metrics *Metrics
}

// DefaultOptions returns the engine defaults: 4 workers, 50 ACF/PACF lags,
// 30 mutual information lags and 50 seasonal periods.
func DefaultOptions() Options {
	return Options{
		Workers:    DefaultWorkers,
		MaxLags:    stats.DefaultMaxLags,
		MIMaxLags:  stats.DefaultMIMaxLags,
		MaxPeriods: stats.DefaultMaxPeriods,
		Logger:     zerolog.Nop(),
	}
}

type estimators struct {
	acf          func(*timeseries.Series, int) *stats.ACFResult
	pacf         func(*stats.ACFResult, int) *stats.LagResult
	mi           func(*timeseries.Series, int) *stats.MIResult
	hurst        func(*timeseries.Series) *stats.HurstResult
	stationarity func(*timeseries.Series) *stats.StationarityResult
	seasonality  func(*timeseries.Series, int) *stats.SeasonalityResult
	column       func(timeseries.Column) quality.ColumnStats
	report       func(*timeseries.Table, []quality.ColumnStats) *quality.Report
}

var defaultEstimators = estimators{
	acf:          stats.ACF,
	pacf:         stats.PACFFromACF,
	mi:           stats.MutualInformation,
	hurst:        stats.Hurst,
	stationarity: stats.StationarityTests,
	seasonality:  stats.Seasonality,
	column:       quality.ColumnStatistics,
	report:       quality.NewReport,
}

// Engine fans the estimators out over a bounded worker pool and assembles
// their results. An Engine is safe for concurrent use.
type Engine struct {
	opts    Options
	pool    *Pool
	log     zerolog.Logger
	metrics *Metrics
	est     estimators
}

// New creates an Engine.
func New(opts Options) *Engine {
	d := DefaultOptions()
	if opts.Workers <= 0 {
		opts.Workers = d.Workers
	}
	if opts.MaxLags <= 0 {
		opts.MaxLags = d.MaxLags
	}
	if opts.MIMaxLags <= 0 {
		opts.MIMaxLags = d.MIMaxLags
	}
	if opts.MaxPeriods <= 0 {
		opts.MaxPeriods = d.MaxPeriods
	}
	pool := opts.Pool
	if pool == nil {
		pool = NewPool(opts.Workers)
	}

	return &Engine{
		opts:    opts,
		pool:    pool,
		log:     opts.Logger,
		metrics: opts.Metrics,
		est:     defaultEstimators,
	}
}

// Pool returns the engine's worker pool.
func (e *Engine) Pool() *Pool {
	return e.pool
}

// AnalyzeSeries runs ACF with PACF, mutual information, Hurst, the
// stationarity battery and seasonality detection concurrently over one
// cleaned series. A non-positive maxLags uses the engine default; mutual
// information is capped at min(MIMaxLags, maxLags) lags.
//
// The result is always complete. Series shorter than an estimator's
// minimum get that estimator's empty result; callers that need an error
// instead check CheckLength first.
func (e *Engine) AnalyzeSeries(series *timeseries.Series, maxLags int) *Result {
	return e.analyzeSeries(series, maxLags, nil)
}

// AnalyzeColumn extracts and cleans a named column, checks it against the
// strictest minimum length of the requested components (all series
// components when none are given) and analyzes it. The table's quality
// report is computed alongside the estimators.
func (e *Engine) AnalyzeColumn(t *timeseries.Table, column string, maxLags int, components ...Component) (*Result, error) {
	if t == nil {
		return nil, ErrNilTable
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("analyze column %q: %w", column, err)
	}
	series, err := t.Series(column)
	if err != nil {
		return nil, fmt.Errorf("analyze column: %w", err)
	}
	if err := CheckLength(series.Len(), components...); err != nil {
		return nil, fmt.Errorf("analyze column %q: %w", column, err)
	}
	return e.analyzeSeries(series, maxLags, t), nil
}

// AnalyzeTable grades a whole dataset. Column statistics are computed
// concurrently on the pool.
func (e *Engine) AnalyzeTable(t *timeseries.Table) (*TableResult, error) {
	if t == nil {
		return nil, ErrNilTable
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("analyze table: %w", err)
	}

	start := time.Now()
	id := uuid.NewString()
	log := e.log.With().Str("analysis_id", id).Logger()

	columns := make([]quality.ColumnStats, len(t.Columns))
	branches := make([][]step, len(t.Columns))
	for i, c := range t.Columns {
		branches[i] = []step{{
			component: ComponentQuality,
			label:     c.Name,
			run:       func() { columns[i] = e.est.column(c) },
			fallback:  func() { columns[i] = quality.FailedColumn(c) },
		}}
	}
	failures := e.fanOut(log, branches)

	var report *quality.Report
	if f := e.guard(log, step{
		component: ComponentQuality,
		run:       func() { report = e.est.report(t, columns) },
		fallback:  func() { report = quality.EmptyReport() },
	}); f != nil {
		failures = append(failures, *f)
	}

	res := &TableResult{
		AnalysisID:             id,
		AnalysisTimestamp:      time.Now().UTC(),
		DataQuality:            report,
		ComputationTimeSeconds: time.Since(start).Seconds(),
		ComponentFailures:      failures,
	}
	e.metrics.recordAnalysis("table")
	log.Debug().
		Int("rows", t.Rows()).
		Int("columns", len(t.Columns)).
		Float64("computation_time_seconds", res.ComputationTimeSeconds).
		Msg("table analysis complete")
	return res, nil
}

func (e *Engine) analyzeSeries(series *timeseries.Series, maxLags int, table *timeseries.Table) *Result {
	start := time.Now()
	if series == nil {
		series = timeseries.New(nil)
	}
	if maxLags <= 0 {
		maxLags = e.opts.MaxLags
	}
	miLags := min(e.opts.MIMaxLags, maxLags)
	n := series.Len()

	res := &Result{
		AnalysisID:   uuid.NewString(),
		SeriesName:   series.Name,
		SeriesLength: n,
		MaxLags:      maxLags,
	}
	log := e.log.With().Str("analysis_id", res.AnalysisID).Logger()

	branches := [][]step{
		{
			{
				component: ComponentACF,
				run:       func() { res.Autocorrelation = *e.est.acf(series, maxLags) },
				fallback:  func() { res.Autocorrelation = *stats.EmptyACF() },
			},
			{
				component: ComponentPACF,
				run:       func() { res.PartialAutocorrelation = *e.est.pacf(&res.Autocorrelation, n) },
				fallback:  func() { res.PartialAutocorrelation = stats.EmptyLagResult() },
			},
		},
		{{
			component: ComponentMutualInformation,
			run:       func() { res.MutualInformation = *e.est.mi(series, miLags) },
			fallback:  func() { res.MutualInformation = *stats.EmptyMI() },
		}},
		{{
			component: ComponentHurst,
			run:       func() { res.Hurst = *e.est.hurst(series) },
			fallback:  func() { res.Hurst = *stats.DegenerateHurst(stats.HurstError) },
		}},
		{{
			component: ComponentStationarity,
			run:       func() { res.Stationarity = *e.est.stationarity(series) },
			fallback:  func() { res.Stationarity = *stats.EmptyStationarity() },
		}},
		{{
			component: ComponentSeasonality,
			run:       func() { res.Seasonality = *e.est.seasonality(series, e.opts.MaxPeriods) },
			fallback:  func() { res.Seasonality = *stats.EmptySeasonality() },
		}},
	}
	if table != nil {
		branches = append(branches, []step{{
			component: ComponentQuality,
			run:       func() { res.DataQuality = e.tableReport(table) },
			fallback:  func() { res.DataQuality = quality.EmptyReport() },
		}})
	}

	res.ComponentFailures = e.fanOut(log, branches)
	res.AnalysisTimestamp = time.Now().UTC()
	res.ComputationTimeSeconds = time.Since(start).Seconds()

	e.metrics.recordAnalysis("series")
	log.Debug().
		Str("series", series.Name).
		Int("length", n).
		Int("max_lags", maxLags).
		Int("failures", len(res.ComponentFailures)).
		Float64("computation_time_seconds", res.ComputationTimeSeconds).
		Msg("series analysis complete")
	return res
}

// tableReport builds a quality report without using the pool, for use
// from inside a pool task.
func (e *Engine) tableReport(t *timeseries.Table) *quality.Report {
	columns := make([]quality.ColumnStats, len(t.Columns))
	for i, c := range t.Columns {
		columns[i] = e.est.column(c)
	}
	return e.est.report(t, columns)
}

// step is one estimator run. fallback installs the estimator's empty
// result when run panics.
type step struct {
	component Component
	label     string
	run       func()
	fallback  func()
}

// fanOut runs each branch on the pool; the steps of a branch run in order.
// Failures are returned in branch order.
func (e *Engine) fanOut(log zerolog.Logger, branches [][]step) []ComponentFailure {
	slots := make([][]ComponentFailure, len(branches))
	tasks := make([]func() error, len(branches))
	for i, branch := range branches {
		tasks[i] = func() error {
			for _, s := range branch {
				if f := e.guard(log, s); f != nil {
					slots[i] = append(slots[i], *f)
				}
			}
			return nil
		}
	}
	if err := e.pool.Run(tasks...); err != nil {
		log.Error().Err(err).Msg("worker pool failed")
	}

	failures := []ComponentFailure{}
	for _, s := range slots {
		failures = append(failures, s...)
	}
	return failures
}

// guard runs one step, turning a panic into a ComponentFailure.
func (e *Engine) guard(log zerolog.Logger, s step) (failure *ComponentFailure) {
	start := time.Now()
	defer func() {
		e.metrics.recordDuration(s.component, time.Since(start))

		r := recover()
		if r == nil {
			return
		}
		s.fallback()

		reason := fmt.Sprint(r)
		if s.label != "" {
			reason = fmt.Sprintf("%s: %s", s.label, reason)
		}
		failure = &ComponentFailure{Component: s.component, Reason: reason}
		e.metrics.recordFailure(s.component)
		log.Warn().
			Str("component", string(s.component)).
			Str("reason", reason).
			Msg("component failed, using empty result")
	}()

	s.run()
	return nil
}
