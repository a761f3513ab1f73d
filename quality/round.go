package quality

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

const (
	statPlaces    = 4
	percentPlaces = 2
)

// round rounds half away from zero at the given number of decimal places.
// Non-finite values are returned unchanged.
func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// roundPtr is round for optional statistics: non-finite values become nil.
func roundPtr(v float64, places int32) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	r := round(v, places)
	return &r
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round(float64(part)/float64(whole)*100, percentPlaces)
}

// cellKey is the canonical string form of a cell, used for uniqueness,
// frequency counts and duplicate detection.
func cellKey(v any) string {
	switch x := v.(type) {
	case nil:
		return "\x00"
	case string:
		return strings.TrimSpace(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}
