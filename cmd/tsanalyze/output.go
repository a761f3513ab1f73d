package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/tsanalysis/analysis"
	"github.com/sartorproj/tsanalysis/quality"
	"github.com/sartorproj/tsanalysis/stats"
)

func validFormat(format string) bool {
	switch format {
	case "json", "yaml", "text":
		return true
	}
	return false
}

func encode(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "yaml":
		return encodeYAML(w, v)
	case "text":
		return writeSummary(w, v)
	default:
		enc := json.NewEncoder(w)
		if pretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(v)
	}
}

// encodeYAML renders v through its JSON form so YAML keys and their order
// match the JSON output.
func encodeYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return err
	}
	blockStyle(&node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return err
	}
	return enc.Close()
}

// blockStyle clears the flow and quoting styles the JSON source implies.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(w io.Writer, v any) error {
	var buf bytes.Buffer
	switch r := v.(type) {
	case *analysis.Result:
		seriesSummary(&buf, r)
	case *analysis.TableResult:
		banner(&buf, "Dataset Quality")
		qualitySummary(&buf, r.DataQuality)
		failuresSummary(&buf, r.ComponentFailures)
		fmt.Fprintf(&buf, "\nCompleted in %.3fs (analysis %s)\n", r.ComputationTimeSeconds, r.AnalysisID)
	default:
		return fmt.Errorf("cannot summarize %T", v)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func banner(w io.Writer, title string) {
	fmt.Fprintf(w, "%s\n%s\n%s\n", strings.Repeat("=", 80), title, strings.Repeat("=", 80))
}

func seriesSummary(w io.Writer, r *analysis.Result) {
	name := r.SeriesName
	if name == "" {
		name = "series"
	}
	banner(w, fmt.Sprintf("%s (n=%d, max lags=%d)", name, r.SeriesLength, r.MaxLags))

	acf := r.Autocorrelation
	fmt.Fprintf(w, "\nAutocorrelation\n")
	fmt.Fprintf(w, "   Significant lags: %s\n", intList(acf.SignificantLags))
	if acf.LjungBoxStatistic != nil && acf.LjungBoxPValue != nil {
		fmt.Fprintf(w, "   Ljung-Box Q=%.4f p=%.4f\n", *acf.LjungBoxStatistic, *acf.LjungBoxPValue)
	}
	fmt.Fprintf(w, "\nPartial autocorrelation\n")
	fmt.Fprintf(w, "   Significant lags: %s\n", intList(r.PartialAutocorrelation.SignificantLags))

	mi := r.MutualInformation
	fmt.Fprintf(w, "\nMutual information\n")
	if mi.OptimalLag != nil {
		fmt.Fprintf(w, "   Optimal lag: %d\n", *mi.OptimalLag)
	} else {
		fmt.Fprintf(w, "   Optimal lag: none\n")
	}
	fmt.Fprintf(w, "   Significant lags: %s (threshold %.4f)\n", intList(mi.SignificantLags), mi.MIThreshold)

	h := r.Hurst
	fmt.Fprintf(w, "\nHurst exponent\n")
	fmt.Fprintf(w, "   H=%.4f (%s), R^2=%.4f over %d scales\n", h.HurstExponent, h.Interpretation, h.RSquared, len(h.Scales))

	st := r.Stationarity
	fmt.Fprintf(w, "\nStationarity\n")
	verdictLine(w, "ADF", &st.ADF)
	verdictLine(w, "KPSS", st.KPSS)
	verdictLine(w, "PP", st.PP)
	fmt.Fprintf(w, "   Stationary: %t, differences needed: %d\n", st.IsStationary, st.NDiffs)

	s := r.Seasonality
	fmt.Fprintf(w, "\nSeasonality\n")
	fmt.Fprintf(w, "   Periods: %s\n", intList(s.SeasonalPeriods))
	if s.DominantPeriod != nil {
		fmt.Fprintf(w, "   Dominant period: %d\n", *s.DominantPeriod)
	}
	if d := s.SeasonalDecomposition; d != nil {
		fmt.Fprintf(w, "   Decomposition: %s, seasonal strength %.4f, trend strength %.4f\n",
			d.Model, d.SeasonalStrength, d.TrendStrength)
	}

	if r.DataQuality != nil {
		fmt.Fprintf(w, "\nData quality\n")
		qualitySummary(w, r.DataQuality)
	}
	failuresSummary(w, r.ComponentFailures)
	fmt.Fprintf(w, "\nCompleted in %.3fs (analysis %s)\n", r.ComputationTimeSeconds, r.AnalysisID)
}

func verdictLine(w io.Writer, name string, v *stats.StationarityVerdict) {
	if v == nil {
		fmt.Fprintf(w, "   %-5s n/a\n", name)
		return
	}
	fmt.Fprintf(w, "   %-5s stat=%.4f p=%.4f lags=%d stationary=%t\n",
		name, v.Statistic, v.PValue, v.Lags, v.IsStationary)
}

func qualitySummary(w io.Writer, q *quality.Report) {
	if q == nil {
		return
	}
	fmt.Fprintf(w, "   Rows: %d, columns: %d, duplicate rows: %d\n", q.TotalRows, q.TotalColumns, q.DuplicateRows)
	fmt.Fprintf(w, "   Scores: completeness %.2f, consistency %.2f, overall %.2f\n",
		q.CompletenessScore, q.ConsistencyScore, q.OverallQualityScore)
	for _, c := range q.Columns {
		fmt.Fprintf(w, "   - %-20s %-12s missing %6.2f%%\n", c.Name, c.InferredType, c.NullPct)
	}
	for _, issue := range q.Issues {
		fmt.Fprintf(w, "   ! %s\n", issue)
	}
	for _, rec := range q.Recommendations {
		fmt.Fprintf(w, "   > %s\n", rec)
	}
}

func failuresSummary(w io.Writer, failures []analysis.ComponentFailure) {
	if len(failures) == 0 {
		return
	}
	fmt.Fprintf(w, "\nComponent failures\n")
	for _, f := range failures {
		fmt.Fprintf(w, "   %s: %s\n", f.Component, f.Reason)
	}
}

func intList(xs []int) string {
	if len(xs) == 0 {
		return "none"
	}
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ", ")
}
