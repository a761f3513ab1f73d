// Package stats provides the statistical estimators of the analysis engine.
//
// Every estimator is a pure function of a cleaned *timeseries.Series. None of
// them returns an error: series below an estimator's minimum length
// (MinACFLength, MinMILength, ...) and numerically degenerate inputs produce
// documented neutral results instead.
//
// # Autocorrelation Functions
//
// Analyze autocorrelation patterns:
//
//	// Autocorrelation Function with 95% bands and Ljung-Box
//	acf := stats.ACF(series, 50)
//	fmt.Println(acf.SignificantLags, *acf.LjungBoxPValue)
//
//	// Partial Autocorrelation Function (Yule-Walker)
//	pacf := stats.PACFFromACF(acf, series.Len())
//
// Lags are clamped to n/4.
//
// # Mutual Information
//
//	mi := stats.MutualInformation(series, 30)
//	if mi.OptimalLag != nil {
//	    fmt.Println("embedding lag:", *mi.OptimalLag)
//	}
//
// # Long Memory
//
//	h := stats.Hurst(series)
//	fmt.Printf("H=%.3f (%s)\n", h.HurstExponent, h.Interpretation)
//
// # Stationarity Tests
//
// Test whether a time series is stationary:
//
//	battery := stats.StationarityTests(series)
//	// battery.ADF: approximate Dickey-Fuller check (drives IsStationary)
//	// battery.KPSS, battery.PP: nil when not computed
//
//	// Number of first differences needed
//	d := stats.NDiffs(series, 2, "adf")
//
// # Seasonality
//
//	s := stats.Seasonality(series, 50)
//	if s.DominantPeriod != nil {
//	    fmt.Println(*s.DominantPeriod, s.SeasonalDecomposition.SeasonalStrength)
//	}
//
// # Time Series Decomposition
//
//	// Classical decomposition
//	decomp := stats.Decompose(series, 12, "additive")
//	// decomp.Trend, decomp.Seasonal, decomp.Residual
package stats
