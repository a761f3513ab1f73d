// Package tsanalysis is a statistical analysis engine for univariate time
// series and tabular datasets.
//
// Given a numeric series it estimates autocorrelation and partial
// autocorrelation with confidence bands and a Ljung-Box statistic, scans
// nonlinear lag dependence with a KSG mutual information estimator,
// measures long-range memory with rescaled-range (Hurst) analysis, runs a
// stationarity battery (ADF, KPSS, Phillips-Perron) and detects seasonal
// periods from the periodogram and classical decomposition. Given a table
// it infers column types, computes per-column statistics and grades the
// dataset's completeness and consistency.
//
// # Quick Start
//
// Analyze one column of a CSV file:
//
//	table, _ := timeseries.LoadFile("sales.csv")
//	engine := analysis.New(analysis.DefaultOptions())
//	res, err := engine.AnalyzeColumn(table, "y", 24)
//	if errors.Is(err, analysis.ErrInsufficientData) {
//	    ...
//	}
//	fmt.Println(res.Hurst.Interpretation, res.Stationarity.IsStationary)
//
// Or call an estimator directly:
//
//	series := timeseries.New(values)
//	acf := stats.ACF(series, 40)
//	fmt.Println(acf.SignificantLags)
//
// # Packages
//
//   - timeseries: series and table types, CSV/XLSX loading, cleaning
//   - stats: ACF, PACF, mutual information, Hurst, stationarity tests,
//     decomposition and seasonality
//   - quality: type inference, column statistics, data quality reports
//   - analysis: the concurrent engine that runs every estimator
//
// The tsanalyze command wraps the engine for files on disk.
//
// # References
//
//   - Hyndman, R.J., & Athanasopoulos, G. (2021). Forecasting: Principles and Practice
//   - Kraskov, A., Stögbauer, H., & Grassberger, P. (2004). Estimating mutual information
//   - Hurst, H.E. (1951). Long-term storage capacity of reservoirs
package tsanalysis
