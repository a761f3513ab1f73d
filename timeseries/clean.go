package timeseries

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Clean coerces a raw column into a Series of finite values.
// Elements that are missing, non-numeric, NaN or infinite are dropped and the
// order of the remaining elements is preserved. Clean never fails: an input
// without usable values yields an empty series, and callers check minimum
// lengths themselves.
func Clean(name string, raw []any) *Series {
	values := make([]float64, 0, len(raw))
	for _, v := range raw {
		if f, ok := ToFloat(v); ok {
			values = append(values, f)
		}
	}
	return NewNamed(name, values)
}

// CleanFloats drops NaN and infinite values from a float slice.
func CleanFloats(name string, raw []float64) *Series {
	values := make([]float64, 0, len(raw))
	for _, v := range raw {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			values = append(values, v)
		}
	}
	return NewNamed(name, values)
}

// ToFloat attempts numeric coercion of a single cell. Strings are trimmed
// before parsing; booleans coerce to 1 and 0. The second return value is false
// for missing cells, unparseable values and non-finite results.
func ToFloat(v any) (float64, bool) {
	if IsMissing(v) {
		return 0, false
	}

	switch x := v.(type) {
	case string:
		x = strings.TrimSpace(x)
		if x == "" {
			return 0, false
		}
		v = x
	case json.Number:
		v = x.String()
	case time.Time, time.Duration:
		return 0, false
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// IsMissing reports whether a raw cell counts as missing: nil or a NaN float.
func IsMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}
