package quality

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/sartorproj/tsanalysis/timeseries"
)

// DataType is the inferred type tag of a raw column.
type DataType string

const (
	TypeInteger     DataType = "integer"
	TypeFloat       DataType = "float"
	TypeDatetime    DataType = "datetime"
	TypeBoolean     DataType = "boolean"
	TypeCategorical DataType = "categorical"
	TypeText        DataType = "text"
	TypeEmpty       DataType = "empty"
	// TypeError marks a column whose statistics could not be computed.
	TypeError       DataType = "error"
)

// IsNumeric reports whether the type carries numeric statistics.
func (t DataType) IsNumeric() bool {
	return t == TypeInteger || t == TypeFloat
}

// Inference tuning.
const (
	// TypeSampleSize caps the number of non-missing cells inspected.
	TypeSampleSize = 1000
	// CategoricalMaxRatio is the unique/sample ratio below which a column
	// counts as categorical.
	CategoricalMaxRatio = 0.1
	// CategoricalMaxUnique bounds the number of distinct categorical values.
	CategoricalMaxUnique = 50
)

type typeRule struct {
	tag   DataType
	match func(sample []any) bool
}

// typeRules is evaluated in order; the first matching rule wins and
// TypeText is the fallback.
var typeRules = []typeRule{
	{TypeInteger, allOf(isInteger)},
	{TypeFloat, allOf(isNumber)},
	{TypeDatetime, allOf(isDatetime)},
	{TypeBoolean, allOf(isBoolean)},
	{TypeCategorical, lowCardinality},
}

// InferType classifies a raw column by sampling its non-missing cells.
// Sampling takes evenly spaced cells so the result is deterministic.
func InferType(values []any) DataType {
	sample := strideSample(nonMissing(values), TypeSampleSize)
	if len(sample) == 0 {
		return TypeEmpty
	}
	for _, r := range typeRules {
		if r.match(sample) {
			return r.tag
		}
	}
	return TypeText
}

func allOf(pred func(any) bool) func([]any) bool {
	return func(sample []any) bool {
		for _, v := range sample {
			if !pred(v) {
				return false
			}
		}
		return true
	}
}

func isInteger(v any) bool {
	switch x := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case string:
		_, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		return err == nil
	}
	return false
}

func isNumber(v any) bool {
	if _, ok := v.(bool); ok {
		return false
	}
	_, ok := timeseries.ToFloat(v)
	return ok
}

func isDatetime(v any) bool {
	switch x := v.(type) {
	case time.Time:
		return true
	case string:
		_, err := cast.ToTimeE(strings.TrimSpace(x))
		return err == nil
	}
	return false
}

func isBoolean(v any) bool {
	switch x := v.(type) {
	case bool:
		return true
	case string:
		_, err := cast.ToBoolE(strings.TrimSpace(x))
		return err == nil
	}
	return false
}

func lowCardinality(sample []any) bool {
	unique := make(map[string]struct{})
	for _, v := range sample {
		unique[cellKey(v)] = struct{}{}
	}
	ratio := float64(len(unique)) / float64(len(sample))
	return ratio < CategoricalMaxRatio && len(unique) < CategoricalMaxUnique
}

func nonMissing(values []any) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		if !timeseries.IsMissing(v) {
			out = append(out, v)
		}
	}
	return out
}

// strideSample returns at most size evenly spaced elements of values.
func strideSample(values []any, size int) []any {
	if len(values) <= size {
		return values
	}
	step := float64(len(values)) / float64(size)
	out := make([]any, size)
	for i := range out {
		out[i] = values[int(float64(i)*step)]
	}
	return out
}
