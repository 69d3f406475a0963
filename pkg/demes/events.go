package demes

import (
	"fmt"
	"slices"

	"github.com/matzehuels/demes/pkg/errors"
)

// Split is one parent ending at Time and giving rise to Children.
type Split struct {
	Parent   string
	Children []string
	Time     float64
}

// NewSplit returns a validated split.
func NewSplit(parent string, children []string, time float64) (Split, error) {
	s := Split{Parent: parent, Children: slices.Clone(children), Time: time}
	if err := s.Validate(); err != nil {
		return Split{}, err
	}
	return s, nil
}

// Validate checks a valid parent, at least one distinct child, no child
// equal to the parent and a finite non-negative time.
func (s *Split) Validate() error {
	where := fmt.Sprintf("split of %q", s.Parent)
	if err := errors.ValidateID(where+" parent", s.Parent); err != nil {
		return err
	}
	if len(s.Children) == 0 {
		return errors.Valuef("%s: needs at least one child", where)
	}
	seen := make(map[string]bool, len(s.Children))
	for _, c := range s.Children {
		if err := errors.ValidateID(where+" child", c); err != nil {
			return err
		}
		if c == s.Parent {
			return errors.Valuef("%s: %q cannot be its own child", where, c)
		}
		if seen[c] {
			return errors.Valuef("%s: duplicate child %q", where, c)
		}
		seen[c] = true
	}
	return errors.ValidateTime(where+" time", s.Time, false)
}

// IsClose reports whether s and other are equal within [DefaultTolerance].
func (s *Split) IsClose(other *Split) bool { return s.IsCloseTol(other, DefaultTolerance) }

// IsCloseTol compares the parent exactly, children as a set and time
// within tol.
func (s *Split) IsCloseTol(other *Split, tol Tolerance) bool {
	if s == nil || other == nil {
		return false
	}
	return s.Parent == other.Parent &&
		sameSet(s.Children, other.Children) &&
		isClose(s.Time, other.Time, tol)
}

// Branch is a child lineage budding off a parent that continues to exist.
type Branch struct {
	Parent string
	Child  string
	Time   float64
}

// NewBranch returns a validated branch.
func NewBranch(parent, child string, time float64) (Branch, error) {
	b := Branch{Parent: parent, Child: child, Time: time}
	if err := b.Validate(); err != nil {
		return Branch{}, err
	}
	return b, nil
}

// Validate checks distinct valid ids and a finite non-negative time.
func (b *Branch) Validate() error {
	where := fmt.Sprintf("branch %q -> %q", b.Parent, b.Child)
	if err := checkEndpoints(where, b.Parent, b.Child); err != nil {
		return err
	}
	return errors.ValidateTime(where+" time", b.Time, false)
}

// IsClose reports whether b and other are equal within [DefaultTolerance].
func (b *Branch) IsClose(other *Branch) bool { return b.IsCloseTol(other, DefaultTolerance) }

// IsCloseTol compares ids exactly and time within tol.
func (b *Branch) IsCloseTol(other *Branch, tol Tolerance) bool {
	if b == nil || other == nil {
		return false
	}
	return b.Parent == other.Parent && b.Child == other.Child && isClose(b.Time, other.Time, tol)
}

// Merge is two or more parents that all end at Time, combining into Child
// in the given proportions.
type Merge struct {
	Parents     []string
	Proportions []float64
	Child       string
	Time        float64
}

// NewMerge returns a validated merge.
func NewMerge(parents []string, proportions []float64, child string, time float64) (Merge, error) {
	m := Merge{Parents: slices.Clone(parents), Proportions: slices.Clone(proportions), Child: child, Time: time}
	if err := m.Validate(); err != nil {
		return Merge{}, err
	}
	return m, nil
}

// Validate checks the ancestry like a deme's (at least two parents) and a
// finite non-negative time.
func (m *Merge) Validate() error {
	return validateAdmixture(fmt.Sprintf("merge into %q", m.Child), m.Parents, m.Proportions, m.Child, m.Time)
}

// IsClose reports whether m and other are equal within [DefaultTolerance].
func (m *Merge) IsClose(other *Merge) bool { return m.IsCloseTol(other, DefaultTolerance) }

// IsCloseTol compares the child exactly, parents as a set with aligned
// proportions and time within tol.
func (m *Merge) IsCloseTol(other *Merge, tol Tolerance) bool {
	if m == nil || other == nil {
		return false
	}
	return m.Child == other.Child &&
		weightsClose(m.Parents, m.Proportions, other.Parents, other.Proportions, tol) &&
		isClose(m.Time, other.Time, tol)
}

// Admix is a new Child formed at Time from two or more parents that
// continue to exist afterwards.
type Admix struct {
	Parents     []string
	Proportions []float64
	Child       string
	Time        float64
}

// NewAdmix returns a validated admixture.
func NewAdmix(parents []string, proportions []float64, child string, time float64) (Admix, error) {
	a := Admix{Parents: slices.Clone(parents), Proportions: slices.Clone(proportions), Child: child, Time: time}
	if err := a.Validate(); err != nil {
		return Admix{}, err
	}
	return a, nil
}

// Validate checks the ancestry like a deme's (at least two parents) and a
// finite non-negative time.
func (a *Admix) Validate() error {
	return validateAdmixture(fmt.Sprintf("admixture into %q", a.Child), a.Parents, a.Proportions, a.Child, a.Time)
}

// IsClose reports whether a and other are equal within [DefaultTolerance].
func (a *Admix) IsClose(other *Admix) bool { return a.IsCloseTol(other, DefaultTolerance) }

// IsCloseTol compares the child exactly, parents as a set with aligned
// proportions and time within tol.
func (a *Admix) IsCloseTol(other *Admix, tol Tolerance) bool {
	if a == nil || other == nil {
		return false
	}
	return a.Child == other.Child &&
		weightsClose(a.Parents, a.Proportions, other.Parents, other.Proportions, tol) &&
		isClose(a.Time, other.Time, tol)
}

func validateAdmixture(where string, parents []string, proportions []float64, child string, time float64) error {
	if err := errors.ValidateID(where+" child", child); err != nil {
		return err
	}
	if err := checkAncestry(where, child, parents, proportions, 2); err != nil {
		return err
	}
	return errors.ValidateTime(where+" time", time, false)
}

// Events groups the discrete ancestry events of a graph.
type Events struct {
	Splits     []Split
	Branches   []Branch
	Merges     []Merge
	Admixtures []Admix
}
