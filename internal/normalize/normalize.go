// Package normalize maps raw heuristic measurements onto the 0-100 lean scale.
package normalize

import (
	"math"

	"ai_text_analyzer/internal/types"
)

// Neutral is the score for undeterminable input.
const Neutral = 50.0

// Range is the expected domain of a raw value. Values outside it are clamped.
type Range struct {
	Min    float64
	Max    float64
	Invert bool
}

// Normalize linearly rescales value from [min, max] to [0, 100]. With invert
// the result is mirrored. It returns 50 when min == max or value is not finite.
func Normalize(value, min, max float64, invert bool) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) || min == max {
		return Neutral
	}
	lo, hi := math.Min(min, max), math.Max(min, max)
	clamped := math.Max(lo, math.Min(hi, value))
	score := (clamped - min) / (max - min) * 100
	if invert {
		score = 100 - score
	}
	return math.Max(0, math.Min(100, score))
}

// Apply normalizes value over r.
func (r Range) Apply(value float64) float64 {
	return Normalize(value, r.Min, r.Max, r.Invert)
}

// Categorize places value relative to band: below Low is low, above High is
// high, anything else (including NaN) is medium.
func Categorize(value float64, band types.Band) types.Category {
	switch {
	case math.IsNaN(value):
		return types.Medium
	case value < band.Low:
		return types.Low
	case value > band.High:
		return types.High
	default:
		return types.Medium
	}
}
