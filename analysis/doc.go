// Package analysis orchestrates the estimators of the stats and quality
// packages.
//
// An Engine owns a bounded worker Pool. AnalyzeSeries dispatches five
// independent branches (ACF followed by PACF, mutual information, Hurst,
// stationarity, seasonality) to the pool and waits for all of them:
//
//	engine := analysis.New(analysis.DefaultOptions())
//	res := engine.AnalyzeSeries(series, 50)
//	fmt.Println(res.Hurst.Interpretation, res.ComputationTimeSeconds)
//
// AnalyzeTable grades a dataset with per-column statistics computed on the
// pool, and AnalyzeColumn is the boundary helper that extracts a column,
// checks minimum lengths and returns *InsufficientDataError when the
// cleaned series is too short:
//
//	res, err := engine.AnalyzeColumn(table, "sales", 50)
//	if errors.Is(err, analysis.ErrInsufficientData) {
//	    ...
//	}
//
// A panicking estimator never aborts its siblings: it is replaced by its
// empty result and listed in Result.ComponentFailures.
package analysis
