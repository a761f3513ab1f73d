// Package quality grades tabular datasets column by column.
//
// # Type Inference
//
// InferType runs a ranked classifier over a deterministic sample of up to
// 1000 non-missing cells:
//
//	integer -> float -> datetime -> boolean -> categorical -> text
//
// The first rule every sampled cell satisfies wins. A column without
// non-missing cells is "empty".
//
// # Column Statistics
//
//	cs := quality.ColumnStatistics(column)
//	if cs.Mean != nil {
//	    fmt.Printf("mean %.4f, %d outliers\n", *cs.Mean, *cs.OutliersCount)
//	}
//
// Numeric fields are pointers and stay nil for non-numeric columns.
//
// # Dataset Report
//
//	report := quality.Analyze(table)
//	fmt.Println(report.OverallQualityScore, report.Issues)
//
// The overall score blends completeness (share of non-missing cells) and
// consistency (share of columns without mixed numeric and text values)
// with weights 0.6 and 0.4. Issues and recommendations come from a fixed
// rule table.
package quality
