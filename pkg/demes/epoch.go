package demes

import (
	"math"

	"github.com/matzehuels/demes/pkg/errors"
)

// SizeFunction describes how a deme's size changes across an epoch.
type SizeFunction string

const (
	// SizeConstant keeps InitialSize throughout the epoch.
	SizeConstant SizeFunction = "constant"
	// SizeExponential grows or shrinks exponentially from InitialSize to FinalSize.
	SizeExponential SizeFunction = "exponential"
	// SizeLinear changes linearly from InitialSize to FinalSize.
	SizeLinear SizeFunction = "linear"
)

// Valid reports whether f is a known size function.
func (f SizeFunction) Valid() bool {
	switch f {
	case SizeConstant, SizeExponential, SizeLinear:
		return true
	}
	return false
}

// Epoch is a time interval within one deme's history over which the size
// follows a single SizeFunction from InitialSize (at StartTime) to
// FinalSize (at EndTime).
//
// Epochs are values. Use [NewEpoch] to resolve defaults and validate, or
// build the struct directly and call [Epoch.Validate].
type Epoch struct {
	StartTime    float64
	EndTime      float64
	InitialSize  float64
	FinalSize    float64
	SizeFunction SizeFunction
	SelfingRate  float64
	CloningRate  float64
}

// EpochSpec is a partially specified epoch. Nil fields are filled in by
// [NewEpoch] or, inside a deme, by [Graph.AddDeme].
type EpochSpec struct {
	StartTime    *float64
	EndTime      *float64
	InitialSize  *float64
	FinalSize    *float64
	SizeFunction SizeFunction
	SelfingRate  *float64
	CloningRate  *float64
}

// NewEpoch resolves the defaults of s and returns a validated Epoch.
//
// Defaults: StartTime is +Inf; a missing InitialSize or FinalSize copies the
// other (one of them is required); EndTime is required; rates are 0;
// SizeFunction is constant for equal sizes and exponential otherwise.
func NewEpoch(s EpochSpec) (Epoch, error) {
	if s.EndTime == nil {
		return Epoch{}, errors.Valuef("epoch: end_time is required")
	}
	if s.InitialSize == nil && s.FinalSize == nil {
		return Epoch{}, errors.Valuef("epoch: initial_size or final_size is required")
	}

	e := Epoch{
		StartTime: math.Inf(1),
		EndTime:   *s.EndTime,
	}
	if s.StartTime != nil {
		e.StartTime = *s.StartTime
	}
	switch {
	case s.InitialSize != nil && s.FinalSize != nil:
		e.InitialSize, e.FinalSize = *s.InitialSize, *s.FinalSize
	case s.InitialSize != nil:
		e.InitialSize, e.FinalSize = *s.InitialSize, *s.InitialSize
	default:
		e.InitialSize, e.FinalSize = *s.FinalSize, *s.FinalSize
	}
	if s.SelfingRate != nil {
		e.SelfingRate = *s.SelfingRate
	}
	if s.CloningRate != nil {
		e.CloningRate = *s.CloningRate
	}
	e.SizeFunction = s.SizeFunction
	if e.SizeFunction == "" {
		e.SizeFunction = SizeExponential
		if e.InitialSize == e.FinalSize {
			e.SizeFunction = SizeConstant
		}
	}

	if err := e.Validate(); err != nil {
		return Epoch{}, err
	}
	return e, nil
}

// TimeSpan returns StartTime - EndTime, which is +Inf for the oldest epoch
// of a deme without an origin.
func (e *Epoch) TimeSpan() float64 { return e.StartTime - e.EndTime }

// Validate checks the epoch's invariants:
//
//  1. 0 <= EndTime < StartTime <= +Inf
//  2. sizes are finite and positive
//  3. an infinitely long epoch has constant size
//  4. SizeFunction is known, and constant only for equal sizes
//  5. rates are in [0, 1]
func (e *Epoch) Validate() error {
	if err := errors.ValidateInterval("epoch", e.StartTime, e.EndTime); err != nil {
		return err
	}
	if err := errors.ValidateSize("epoch initial_size", e.InitialSize); err != nil {
		return err
	}
	if err := errors.ValidateSize("epoch final_size", e.FinalSize); err != nil {
		return err
	}
	if math.IsInf(e.StartTime, 1) && e.InitialSize != e.FinalSize {
		return errors.Valuef("epoch: initial_size (%v) and final_size (%v) must be equal when start_time is infinite",
			e.InitialSize, e.FinalSize)
	}
	if !e.SizeFunction.Valid() {
		return errors.Valuef("epoch: unknown size_function %q", e.SizeFunction)
	}
	if e.SizeFunction == SizeConstant && e.InitialSize != e.FinalSize {
		return errors.Valuef("epoch: size_function %q requires initial_size == final_size", e.SizeFunction)
	}
	if err := errors.ValidateFraction("epoch selfing_rate", e.SelfingRate); err != nil {
		return err
	}
	return errors.ValidateFraction("epoch cloning_rate", e.CloningRate)
}

// IsClose reports whether e and other are equal within [DefaultTolerance].
func (e *Epoch) IsClose(other *Epoch) bool {
	return e.IsCloseTol(other, DefaultTolerance)
}

// IsCloseTol compares every numeric field within tol and SizeFunction
// exactly. It returns false if either epoch is nil.
func (e *Epoch) IsCloseTol(other *Epoch, tol Tolerance) bool {
	if e == nil || other == nil {
		return false
	}
	return e.SizeFunction == other.SizeFunction &&
		isClose(e.StartTime, other.StartTime, tol) &&
		isClose(e.EndTime, other.EndTime, tol) &&
		isClose(e.InitialSize, other.InitialSize, tol) &&
		isClose(e.FinalSize, other.FinalSize, tol) &&
		isClose(e.SelfingRate, other.SelfingRate, tol) &&
		isClose(e.CloningRate, other.CloningRate, tol)
}
