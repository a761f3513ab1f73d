// Package timeseries provides the data structures shared by the analysis packages.
//
// A Series is the cleaned numeric sequence every estimator consumes. A Table
// holds the raw, heterogeneous columns of an uploaded dataset, the input of
// the data quality analyzer.
//
// # Creating a Series
//
// Create a series from a slice of floats:
//
//	values := []float64{100, 102, 105, 103, 108, 110}
//	series := timeseries.New(values)
//
// Or clean a raw column, dropping missing and non-numeric cells:
//
//	series := timeseries.Clean("price", []any{"1.5", nil, 2, "n/a", 3.25})
//	// series.Values == []float64{1.5, 2, 3.25}
//
// # Loading Tables
//
// Load raw tables from CSV or XLSX files:
//
//	table, err := timeseries.LoadFile("sales.csv")
//	table, err := timeseries.LoadXLSX("sales.xlsx", "Sheet1")
//
//	// Extract and clean a single column
//	series, err := table.Series("revenue")
//
//	// Load with filtering
//	series, err := timeseries.LoadCSVFiltered(
//	    "data.csv",
//	    "country", "Australia",  // filter column and value
//	    "population",            // value column
//	)
//
// Cells matching DefaultNAValues are loaded as nil (missing).
//
// # Transformations
//
//	diff := series.Diff()            // First difference
//	sdiff := series.SeasonalDiff(12) // Seasonal difference
//	subset := series.Slice(10, 50)
package timeseries
