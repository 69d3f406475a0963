package errors

import (
	"math"
	"unicode"
)

// ValidateID validates an entity identifier (deme id, migration endpoint).
//
// The rules are intentionally minimal:
//   - No empty ids
//   - No control characters (ids end up in YAML keys, DOT labels and logs)
func ValidateID(field, id string) error {
	if id == "" {
		return Valuef("%s must be a non-empty string", field)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return Valuef("%s %q contains control characters", field, id)
		}
	}
	return nil
}

// ValidateTime validates a non-negative time, optionally allowing +Inf.
// NaN is always rejected.
func ValidateTime(field string, t float64, allowInf bool) error {
	if math.IsNaN(t) {
		return Valuef("%s must be a number", field)
	}
	if t < 0 {
		return Valuef("%s must be non-negative, got %v", field, t)
	}
	if !allowInf && math.IsInf(t, 1) {
		return Valuef("%s must be finite", field)
	}
	return nil
}

// ValidateSize validates a population size: finite and strictly positive.
func ValidateSize(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Valuef("%s must be finite, got %v", field, v)
	}
	if v <= 0 {
		return Valuef("%s must be positive, got %v", field, v)
	}
	return nil
}

// ValidateFraction validates a value in the closed interval [0, 1].
func ValidateFraction(field string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return Valuef("%s must be in [0, 1], got %v", field, v)
	}
	return nil
}

// ValidateInterval validates 0 <= end < start <= +Inf.
func ValidateInterval(field string, start, end float64) error {
	if err := ValidateTime(field+" start_time", start, true); err != nil {
		return err
	}
	if err := ValidateTime(field+" end_time", end, false); err != nil {
		return err
	}
	if end >= start {
		return Valuef("%s: end_time (%v) must be less than start_time (%v)", field, end, start)
	}
	return nil
}
