package quality

import (
	"fmt"
	"strings"

	"github.com/sartorproj/tsanalysis/timeseries"
)

// Quality thresholds and score weights.
const (
	HighMissingPct      = 30.0
	MinRobustRows       = 100
	HighOutlierRatio    = 0.1
	CompletenessWeight  = 0.6
	ConsistencyWeight   = 0.4
	ConsistencySample   = 100
	mixedNumericLowFrac = 0.1
	mixedNumericTopFrac = 0.9
)

// Report grades a whole tabular dataset.
//
// Scores are in [0, 100] and are not rounded, so completeness is exactly
// 100 * (cells - missing) / cells.
type Report struct {
	TotalRows           int                           `json:"total_rows"`
	TotalColumns        int                           `json:"total_columns"`
	MissingValues       map[string]int                `json:"missing_values"`
	MissingPercentages  map[string]float64            `json:"missing_percentages"`
	DuplicateRows       int                           `json:"duplicate_rows"`
	DataTypes           map[string]DataType           `json:"data_types"`
	NumericColumns      []string                      `json:"numeric_columns"`
	CategoricalColumns  []string                      `json:"categorical_columns"`
	DateColumns         []string                      `json:"date_columns"`
	OutliersCount       map[string]int                `json:"outliers_count"`
	CompletenessScore   float64                       `json:"completeness_score"`
	ConsistencyScore    float64                       `json:"consistency_score"`
	OverallQualityScore float64                       `json:"overall_quality_score"`
	Issues              []string                      `json:"issues"`
	Recommendations     []string                      `json:"recommendations"`
	Columns             []ColumnStats                 `json:"columns"`
	Correlations        map[string]map[string]float64 `json:"correlations"`
}

// Analyze computes column statistics sequentially and builds the report.
func Analyze(t *timeseries.Table) *Report {
	columns := make([]ColumnStats, len(t.Columns))
	for i, c := range t.Columns {
		columns[i] = ColumnStatistics(c)
	}
	return NewReport(t, columns)
}

// EmptyReport returns a report with zero scores and no findings.
func EmptyReport() *Report {
	return &Report{
		MissingValues:      make(map[string]int),
		MissingPercentages: make(map[string]float64),
		DataTypes:          make(map[string]DataType),
		NumericColumns:     []string{},
		CategoricalColumns: []string{},
		DateColumns:        []string{},
		OutliersCount:      make(map[string]int),
		Issues:             []string{},
		Recommendations:    []string{},
		Columns:            []ColumnStats{},
	}
}

// NewReport assembles a report from precomputed column statistics, which
// must be in table column order.
func NewReport(t *timeseries.Table, columns []ColumnStats) *Report {
	r := EmptyReport()
	r.TotalRows = t.Rows()
	r.TotalColumns = len(t.Columns)
	if columns != nil {
		r.Columns = columns
	}

	cells := r.TotalRows * r.TotalColumns
	if cells == 0 {
		return r
	}

	missing := 0
	mixed := 0
	for i, cs := range columns {
		r.MissingValues[cs.Name] = cs.NullCount
		r.MissingPercentages[cs.Name] = percent(cs.NullCount, r.TotalRows)
		missing += cs.NullCount

		r.DataTypes[cs.Name] = cs.InferredType
		switch {
		case cs.InferredType.IsNumeric():
			r.NumericColumns = append(r.NumericColumns, cs.Name)
			if cs.OutliersCount != nil {
				r.OutliersCount[cs.Name] = *cs.OutliersCount
			}
		case cs.InferredType == TypeDatetime:
			r.DateColumns = append(r.DateColumns, cs.Name)
		case cs.InferredType == TypeCategorical, cs.InferredType == TypeBoolean:
			r.CategoricalColumns = append(r.CategoricalColumns, cs.Name)
		case cs.InferredType == TypeText:
			if mixedTypes(t.Columns[i].Values) {
				mixed++
			}
		}
	}

	r.DuplicateRows = DuplicateRows(t)
	r.CompletenessScore = 100 * float64(cells-missing) / float64(cells)
	r.ConsistencyScore = max(0, 100-float64(mixed)/float64(r.TotalColumns)*100)
	r.OverallQualityScore = CompletenessWeight*r.CompletenessScore + ConsistencyWeight*r.ConsistencyScore

	for _, rule := range qualityRules {
		if issue, ok := rule.check(r); ok {
			r.Issues = append(r.Issues, issue)
			r.Recommendations = append(r.Recommendations, rule.recommendation)
		}
	}

	r.Correlations = Correlations(t, r.NumericColumns)
	return r
}

// mixedTypes reports whether a sampled text column holds a mix of numeric
// and non-numeric cells.
func mixedTypes(values []any) bool {
	sample := strideSample(nonMissing(values), ConsistencySample)
	if len(sample) == 0 {
		return false
	}
	numeric := 0
	for _, v := range sample {
		if _, ok := timeseries.ToFloat(v); ok {
			numeric++
		}
	}
	frac := float64(numeric) / float64(len(sample))
	return frac > mixedNumericLowFrac && frac < mixedNumericTopFrac
}

// DuplicateRows counts rows identical to an earlier row. Missing cells
// compare equal to each other.
func DuplicateRows(t *timeseries.Table) int {
	seen := make(map[string]struct{}, t.Rows())
	dups := 0
	var b strings.Builder
	for i := 0; i < t.Rows(); i++ {
		b.Reset()
		for _, c := range t.Columns {
			v := c.Values[i]
			if timeseries.IsMissing(v) {
				v = nil
			}
			b.WriteString(cellKey(v))
			b.WriteByte(0x1f)
		}
		key := b.String()
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}

type qualityRule struct {
	check          func(r *Report) (string, bool)
	recommendation string
}

var qualityRules = []qualityRule{
	{
		check: func(r *Report) (string, bool) {
			var cols []string
			for _, cs := range r.Columns {
				if 100*float64(cs.NullCount) > HighMissingPct*float64(r.TotalRows) {
					cols = append(cols, cs.Name)
				}
			}
			return fmt.Sprintf("Columns with many missing values (>%g%%): %s", HighMissingPct, strings.Join(cols, ", ")), len(cols) > 0
		},
		recommendation: "Consider imputing or dropping columns with many missing values",
	},
	{
		check: func(r *Report) (string, bool) {
			return fmt.Sprintf("%d duplicate rows found", r.DuplicateRows), r.DuplicateRows > 0
		},
		recommendation: "Remove duplicate rows to improve data quality",
	},
	{
		check: func(r *Report) (string, bool) {
			return "Dataset too small for robust analysis", r.TotalRows < MinRobustRows
		},
		recommendation: "Collect more data to improve the reliability of the analysis",
	},
	{
		check: func(r *Report) (string, bool) {
			return "No numeric columns found", len(r.NumericColumns) == 0
		},
		recommendation: "Check that numeric columns are stored in a numeric format",
	},
	{
		check: func(r *Report) (string, bool) {
			var cols []string
			for _, name := range r.NumericColumns {
				if float64(r.OutliersCount[name])/float64(r.TotalRows) > HighOutlierRatio {
					cols = append(cols, name)
				}
			}
			return "Columns with many outliers: " + strings.Join(cols, ", "), len(cols) > 0
		},
		recommendation: "Investigate and treat outliers in numeric columns",
	},
}
