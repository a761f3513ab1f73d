package analysis

import (
	"time"

	"github.com/sartorproj/tsanalysis/quality"
	"github.com/sartorproj/tsanalysis/stats"
)

// Result is the complete analysis of one series.
//
// Every estimator field is always populated: estimators that could not run
// hold their documented empty or degenerate result, and a panicking
// estimator is additionally listed in ComponentFailures. DataQuality is
// only set by AnalyzeColumn.
type Result struct {
	AnalysisID             string                   `json:"analysis_id"`
	AnalysisTimestamp      time.Time                `json:"analysis_timestamp"`
	SeriesName             string                   `json:"series_name,omitempty"`
	SeriesLength           int                      `json:"series_length"`
	MaxLags                int                      `json:"max_lags"`
	Autocorrelation        stats.ACFResult          `json:"autocorrelation"`
	PartialAutocorrelation stats.LagResult          `json:"partial_autocorrelation"`
	MutualInformation      stats.MIResult           `json:"mutual_information"`
	Hurst                  stats.HurstResult        `json:"hurst_exponent"`
	Stationarity           stats.StationarityResult `json:"stationarity_tests"`
	Seasonality            stats.SeasonalityResult  `json:"seasonality_analysis"`
	DataQuality            *quality.Report          `json:"data_quality,omitempty"`
	ComputationTimeSeconds float64                  `json:"computation_time_seconds"`
	ComponentFailures      []ComponentFailure       `json:"component_failures"`
}

// TableResult is the quality analysis of a whole dataset.
type TableResult struct {
	AnalysisID             string             `json:"analysis_id"`
	AnalysisTimestamp      time.Time          `json:"analysis_timestamp"`
	DataQuality            *quality.Report    `json:"data_quality"`
	ComputationTimeSeconds float64            `json:"computation_time_seconds"`
	ComponentFailures      []ComponentFailure `json:"component_failures"`
}
