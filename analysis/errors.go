package analysis

import (
	"errors"
	"fmt"

	"github.com/sartorproj/tsanalysis/stats"
)

// Component names one estimator of the engine.
type Component string

const (
	ComponentACF               Component = "acf"
	ComponentPACF              Component = "pacf"
	ComponentMutualInformation Component = "mutual_information"
	ComponentHurst             Component = "hurst"
	ComponentStationarity      Component = "stationarity"
	ComponentSeasonality       Component = "seasonality"
	ComponentQuality           Component = "quality"
)

// SeriesComponents lists the estimators run by AnalyzeSeries.
var SeriesComponents = []Component{
	ComponentACF,
	ComponentPACF,
	ComponentMutualInformation,
	ComponentHurst,
	ComponentStationarity,
	ComponentSeasonality,
}

// MinLength returns the minimum cleaned series length a component accepts.
func MinLength(c Component) int {
	switch c {
	case ComponentACF:
		return stats.MinACFLength
	case ComponentPACF:
		return stats.MinPACFLength
	case ComponentMutualInformation:
		return stats.MinMILength
	case ComponentHurst:
		return stats.MinHurstLength
	case ComponentStationarity:
		return stats.MinStationarityLength
	case ComponentSeasonality:
		return stats.MinSeasonalityLength
	}
	return 0
}

// ErrInsufficientData matches every *InsufficientDataError via errors.Is.
var ErrInsufficientData = errors.New("insufficient data")

// InsufficientDataError reports a cleaned series shorter than the minimum
// of the strictest requested component.
type InsufficientDataError struct {
	Component Component
	Required  int
	Got       int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: %s requires at least %d values, got %d",
		ErrInsufficientData, e.Component, e.Required, e.Got)
}

// Is reports whether target is ErrInsufficientData.
func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}

// CheckLength returns an *InsufficientDataError when n is below the minimum
// of any of the given components, naming the strictest one. With no
// components every series component is checked.
func CheckLength(n int, components ...Component) error {
	if len(components) == 0 {
		components = SeriesComponents
	}

	var strictest Component
	required := 0
	for _, c := range components {
		if m := MinLength(c); m > required {
			strictest, required = c, m
		}
	}
	if n < required {
		return &InsufficientDataError{Component: strictest, Required: required, Got: n}
	}
	return nil
}

// ComponentFailure records an estimator that panicked during a fan-out and
// was replaced by its empty result.
type ComponentFailure struct {
	Component Component `json:"component"`
	Reason    string    `json:"reason"`
}

func (f ComponentFailure) Error() string {
	return fmt.Sprintf("component %s failed: %s", f.Component, f.Reason)
}
