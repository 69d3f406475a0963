package demes

import (
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/demes/pkg/errors"
)

// Deme is a population lineage: an ordered, contiguous sequence of epochs
// plus the ancestors it descends from at its start time.
//
// StartTime and EndTime are not stored; they are read from the first and
// last epoch. Direct edits to the fields must be followed by
// [Graph.Validate] before the deme is relied on.
type Deme struct {
	ID          string
	Description string
	// Ancestors lists the demes this deme descends from at StartTime.
	// Proportions[i] is the fraction of the initial composition drawn
	// from Ancestors[i].
	Ancestors   []string
	Proportions []float64
	// Epochs runs from oldest to youngest.
	Epochs []Epoch
}

// NewDeme returns a validated deme. The slices are copied.
func NewDeme(id, description string, ancestors []string, proportions []float64, epochs []Epoch) (*Deme, error) {
	d := &Deme{
		ID:          id,
		Description: description,
		Ancestors:   cloneOrEmpty(ancestors),
		Proportions: cloneOrEmpty(proportions),
		Epochs:      slices.Clone(epochs),
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func cloneOrEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}

// StartTime returns the start time of the oldest epoch, or NaN if the deme
// has no epochs.
func (d *Deme) StartTime() float64 {
	if len(d.Epochs) == 0 {
		return math.NaN()
	}
	return d.Epochs[0].StartTime
}

// EndTime returns the end time of the youngest epoch, or NaN if the deme
// has no epochs.
func (d *Deme) EndTime() float64 {
	if len(d.Epochs) == 0 {
		return math.NaN()
	}
	return d.Epochs[len(d.Epochs)-1].EndTime
}

// TimeSpan returns StartTime - EndTime.
func (d *Deme) TimeSpan() float64 { return d.StartTime() - d.EndTime() }

// AliveAt reports whether t falls within the deme's existence interval
// [EndTime, StartTime).
func (d *Deme) AliveAt(t float64) bool {
	return d.EndTime() <= t && t < d.StartTime()
}

// Clone returns a deep copy of d.
func (d *Deme) Clone() *Deme {
	return &Deme{
		ID:          d.ID,
		Description: d.Description,
		Ancestors:   cloneOrEmpty(d.Ancestors),
		Proportions: cloneOrEmpty(d.Proportions),
		Epochs:      slices.Clone(d.Epochs),
	}
}

// Validate checks the deme's local invariants: a valid id, well-formed
// ancestry and an exact time partition by its epochs. It does not check
// that ancestors exist; that requires the graph ([Graph.Validate]).
func (d *Deme) Validate() error {
	if err := errors.ValidateID("deme id", d.ID); err != nil {
		return err
	}
	where := fmt.Sprintf("deme %q", d.ID)
	if err := checkAncestry(where, d.ID, d.Ancestors, d.Proportions, 0); err != nil {
		return err
	}
	if len(d.Epochs) == 0 {
		return errors.Valuef("%s: must have at least one epoch", where)
	}
	for i := range d.Epochs {
		e := &d.Epochs[i]
		if err := e.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeValue, err, "%s: epoch %d", where, i)
		}
		if i == 0 {
			continue
		}
		prev := &d.Epochs[i-1]
		if e.StartTime != prev.EndTime {
			return errors.Valuef("%s: epoch %d start_time (%v) must equal epoch %d end_time (%v)",
				where, i, e.StartTime, i-1, prev.EndTime)
		}
	}
	return nil
}

// IsClose reports whether d and other are equal within [DefaultTolerance].
func (d *Deme) IsClose(other *Deme) bool {
	return d.IsCloseTol(other, DefaultTolerance)
}

// IsCloseTol compares id, ancestry (as a set, proportions aligned by
// ancestor id) and epochs element-wise. Description is ignored.
func (d *Deme) IsCloseTol(other *Deme, tol Tolerance) bool {
	if d == nil || other == nil {
		return false
	}
	if d.ID != other.ID {
		return false
	}
	if !weightsClose(d.Ancestors, d.Proportions, other.Ancestors, other.Proportions, tol) {
		return false
	}
	if len(d.Epochs) != len(other.Epochs) {
		return false
	}
	for i := range d.Epochs {
		if !d.Epochs[i].IsCloseTol(&other.Epochs[i], tol) {
			return false
		}
	}
	return true
}

// checkAncestry validates an id list with aligned proportions: ids are
// valid, distinct and differ from self; proportions match in length, lie
// in [0, 1] and sum to 1. An empty list is allowed when minIDs is 0.
func checkAncestry(where, self string, ids []string, proportions []float64, minIDs int) error {
	if len(ids) < minIDs {
		return errors.Valuef("%s: needs at least %d parents, got %d", where, minIDs, len(ids))
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if err := errors.ValidateID(where+" ancestor", id); err != nil {
			return err
		}
		if id == self {
			return errors.Valuef("%s: %q cannot be its own ancestor", where, id)
		}
		if seen[id] {
			return errors.Valuef("%s: duplicate ancestor %q", where, id)
		}
		seen[id] = true
	}
	if len(proportions) != len(ids) {
		return errors.Valuef("%s: got %d proportions for %d ancestors", where, len(proportions), len(ids))
	}
	if len(ids) == 0 {
		return nil
	}
	sum := 0.0
	for _, p := range proportions {
		if err := errors.ValidateFraction(where+" proportion", p); err != nil {
			return err
		}
		sum += p
	}
	if math.Abs(sum-1) > proportionSumTolerance {
		return errors.Valuef("%s: proportions must sum to 1, got %v", where, sum)
	}
	return nil
}
