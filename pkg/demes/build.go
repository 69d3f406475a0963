package demes

import (
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/demes/pkg/errors"
)

// DemeOptions holds the optional inputs of [Graph.AddDeme]. Nil pointers
// and empty values are resolved to defaults.
//
// When Epochs is empty a single epoch is built from EndTime, InitialSize,
// FinalSize, SizeFunction, SelfingRate and CloningRate. When Epochs is set,
// those deme-level fields act as defaults for the epochs that omit them.
type DemeOptions struct {
	Description string
	Ancestors   []string
	Proportions []float64

	StartTime    *float64
	EndTime      *float64
	InitialSize  *float64
	FinalSize    *float64
	SizeFunction SizeFunction
	SelfingRate  *float64
	CloningRate  *float64

	Epochs []EpochSpec
}

// TimeRange optionally bounds a migration. Nil ends default to the
// overlap of the participating demes.
type TimeRange struct {
	StartTime *float64
	EndTime   *float64
}

// AddDeme resolves defaults, validates the new deme against the graph and
// appends it.
//
// Start time: an explicit StartTime, else the first epoch's StartTime, else
// +Inf without ancestors or the ancestor's end time with exactly one
// ancestor. With several ancestors the start time must be given. Every
// ancestor must satisfy ancestor.EndTime <= start < ancestor.StartTime.
//
// Proportions default to [1] for a single ancestor and are required for
// more than one.
//
// Epochs: a missing epoch start time is the previous epoch's end time (the
// deme start time for the first epoch). Only the last epoch may omit its
// end time, which then defaults to EndTime or 0. A missing InitialSize is
// the previous epoch's FinalSize.
func (g *Graph) AddDeme(id string, opts DemeOptions) (*Deme, error) {
	if err := errors.ValidateID("deme id", id); err != nil {
		return nil, err
	}
	if _, ok := g.Deme(id); ok {
		return nil, errors.Valuef("deme %q already exists", id)
	}
	where := fmt.Sprintf("deme %q", id)

	ancestors := make([]*Deme, 0, len(opts.Ancestors))
	for _, a := range opts.Ancestors {
		if a == id {
			return nil, errors.Valuef("%s: cannot be its own ancestor", where)
		}
		anc, ok := g.Deme(a)
		if !ok {
			return nil, errors.Valuef("%s: ancestor %q not in graph", where, a)
		}
		ancestors = append(ancestors, anc)
	}

	proportions := opts.Proportions
	if proportions == nil {
		switch len(ancestors) {
		case 0:
			proportions = []float64{}
		case 1:
			proportions = []float64{1}
		default:
			return nil, errors.Valuef("%s: proportions are required with %d ancestors", where, len(ancestors))
		}
	}

	start, err := resolveStartTime(where, opts, ancestors)
	if err != nil {
		return nil, err
	}
	epochs, err := resolveEpochs(where, start, opts)
	if err != nil {
		return nil, err
	}

	d, err := NewDeme(id, opts.Description, opts.Ancestors, proportions, epochs)
	if err != nil {
		return nil, err
	}
	if err := g.checkAncestors(d); err != nil {
		return nil, err
	}
	g.Demes = append(g.Demes, d)
	return d, nil
}

func resolveStartTime(where string, opts DemeOptions, ancestors []*Deme) (float64, error) {
	var epochStart *float64
	if len(opts.Epochs) > 0 {
		epochStart = opts.Epochs[0].StartTime
	}
	switch {
	case opts.StartTime != nil:
		if epochStart != nil && *epochStart != *opts.StartTime {
			return 0, errors.Valuef("%s: start_time (%v) does not match the first epoch's start_time (%v)",
				where, *opts.StartTime, *epochStart)
		}
		return *opts.StartTime, nil
	case epochStart != nil:
		return *epochStart, nil
	case len(ancestors) == 0:
		return math.Inf(1), nil
	case len(ancestors) == 1:
		return ancestors[0].EndTime(), nil
	default:
		return 0, errors.Valuef("%s: start_time is required with %d ancestors", where, len(ancestors))
	}
}

func resolveEpochs(where string, start float64, opts DemeOptions) ([]Epoch, error) {
	specs := opts.Epochs
	if len(specs) == 0 {
		specs = []EpochSpec{{
			EndTime:      opts.EndTime,
			InitialSize:  opts.InitialSize,
			FinalSize:    opts.FinalSize,
			SizeFunction: opts.SizeFunction,
			SelfingRate:  opts.SelfingRate,
			CloningRate:  opts.CloningRate,
		}}
	} else {
		specs = slices.Clone(specs)
	}

	last := len(specs) - 1
	switch {
	case specs[last].EndTime == nil && opts.EndTime != nil:
		specs[last].EndTime = opts.EndTime
	case specs[last].EndTime == nil:
		specs[last].EndTime = Float(0)
	case opts.EndTime != nil && *opts.EndTime != *specs[last].EndTime:
		return nil, errors.Valuef("%s: end_time (%v) does not match the last epoch's end_time (%v)",
			where, *opts.EndTime, *specs[last].EndTime)
	}

	epochs := make([]Epoch, 0, len(specs))
	prevEnd := start
	prevSize := opts.InitialSize
	for i, s := range specs {
		if s.StartTime != nil && *s.StartTime != prevEnd {
			return nil, errors.Valuef("%s: epoch %d start_time (%v) must equal %v", where, i, *s.StartTime, prevEnd)
		}
		if s.EndTime == nil {
			return nil, errors.Valuef("%s: epoch %d: end_time is required", where, i)
		}
		s.StartTime = Float(prevEnd)
		if s.InitialSize == nil {
			s.InitialSize = prevSize
		}
		if s.SizeFunction == "" {
			s.SizeFunction = opts.SizeFunction
		}
		if s.SelfingRate == nil {
			s.SelfingRate = opts.SelfingRate
		}
		if s.CloningRate == nil {
			s.CloningRate = opts.CloningRate
		}
		e, err := NewEpoch(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeValue, err, "%s: epoch %d", where, i)
		}
		epochs = append(epochs, e)
		prevEnd = e.EndTime
		prevSize = Float(e.FinalSize)
	}
	return epochs, nil
}

// AddMigration appends continuous migration from source into dest. The
// interval defaults to the overlap of both demes' lifetimes and must lie
// within it.
func (g *Graph) AddMigration(source, dest string, rate float64, tr TimeRange) (Migration, error) {
	start, end, err := g.overlap([]string{source, dest}, tr)
	if err != nil {
		return Migration{}, err
	}
	m, err := NewMigration(source, dest, start, end, rate)
	if err != nil {
		return Migration{}, err
	}
	if err := g.checkMigration(&m); err != nil {
		return Migration{}, err
	}
	g.Migrations = append(g.Migrations, m)
	return m, nil
}

// AddSymmetricMigration appends one migration per ordered pair of the given
// demes, all at the same rate. Either every migration is added or none is.
func (g *Graph) AddSymmetricMigration(demes []string, rate float64, tr TimeRange) ([]Migration, error) {
	if len(demes) < 2 {
		return nil, errors.Valuef("symmetric migration needs at least two demes, got %d", len(demes))
	}
	seen := make(map[string]bool, len(demes))
	for _, id := range demes {
		if seen[id] {
			return nil, errors.Valuef("symmetric migration: duplicate deme %q", id)
		}
		seen[id] = true
	}
	start, end, err := g.overlap(demes, tr)
	if err != nil {
		return nil, err
	}

	added := make([]Migration, 0, len(demes)*(len(demes)-1))
	for _, source := range demes {
		for _, dest := range demes {
			if source == dest {
				continue
			}
			m, err := NewMigration(source, dest, start, end, rate)
			if err != nil {
				return nil, err
			}
			if err := g.checkMigration(&m); err != nil {
				return nil, err
			}
			added = append(added, m)
		}
	}
	g.Migrations = append(g.Migrations, added...)
	return added, nil
}

// overlap resolves a migration interval over ids, defaulting each nil end
// of tr to the common lifetime of the demes.
func (g *Graph) overlap(ids []string, tr TimeRange) (start, end float64, err error) {
	start, end = math.Inf(1), 0
	for _, id := range ids {
		d, ok := g.Deme(id)
		if !ok {
			return 0, 0, errors.Valuef("migration: deme %q not in graph", id)
		}
		start = math.Min(start, d.StartTime())
		end = math.Max(end, d.EndTime())
	}
	if tr.StartTime != nil {
		start = *tr.StartTime
	}
	if tr.EndTime != nil {
		end = *tr.EndTime
	}
	return start, end, nil
}

// AddPulse appends an instantaneous pulse. Both demes must be alive at
// time. A pulse sharing its exact time with an earlier pulse through the
// same deme is accepted with a [WarningPulseSameTime] warning.
func (g *Graph) AddPulse(source, dest string, time, proportion float64) (Pulse, error) {
	p, err := NewPulse(source, dest, time, proportion)
	if err != nil {
		return Pulse{}, err
	}
	if err := g.checkPulse(&p); err != nil {
		return Pulse{}, err
	}
	g.checkPulseOrdering(p)
	g.Pulses = append(g.Pulses, p)
	return p, nil
}

// AddSplit ends the parent at s.Time and starts every child there with the
// parent as sole ancestor. children supplies the remaining options of each
// child, keyed by child id. Either every child is added or none is.
func (g *Graph) AddSplit(s Split, children map[string]DemeOptions) ([]*Deme, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	parent, ok := g.Deme(s.Parent)
	if !ok {
		return nil, errors.Valuef("split: parent %q not in graph", s.Parent)
	}
	if parent.EndTime() != s.Time {
		return nil, errors.Valuef("split: parent %q ends at %v, not at the split time %v",
			s.Parent, parent.EndTime(), s.Time)
	}
	for id := range children {
		if !slices.Contains(s.Children, id) {
			return nil, errors.Valuef("split: options given for %q, which is not a child", id)
		}
	}

	n := len(g.Demes)
	added := make([]*Deme, 0, len(s.Children))
	for _, id := range s.Children {
		opts, err := descendantOptions("split", children[id], []string{s.Parent}, []float64{1}, s.Time)
		if err == nil {
			var d *Deme
			d, err = g.AddDeme(id, opts)
			added = append(added, d)
		}
		if err != nil {
			clear(g.Demes[n:])
			g.Demes = g.Demes[:n]
			return nil, err
		}
	}
	return added, nil
}

// AddBranch starts b.Child at b.Time with b.Parent as sole ancestor. The
// parent must outlive the branch point; a parent ending at b.Time is a
// split.
func (g *Graph) AddBranch(b Branch, child DemeOptions) (*Deme, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	parent, ok := g.Deme(b.Parent)
	if !ok {
		return nil, errors.Valuef("branch: parent %q not in graph", b.Parent)
	}
	if parent.EndTime() >= b.Time {
		return nil, errors.Valuef("branch: parent %q must continue past %v, ends at %v",
			b.Parent, b.Time, parent.EndTime())
	}
	opts, err := descendantOptions("branch", child, []string{b.Parent}, []float64{1}, b.Time)
	if err != nil {
		return nil, err
	}
	return g.AddDeme(b.Child, opts)
}

// AddMerge starts m.Child at m.Time from parents that all end at m.Time.
func (g *Graph) AddMerge(m Merge, child DemeOptions) (*Deme, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	for _, id := range m.Parents {
		parent, ok := g.Deme(id)
		if !ok {
			return nil, errors.Valuef("merge: parent %q not in graph", id)
		}
		if parent.EndTime() != m.Time {
			return nil, errors.Valuef("merge: parent %q ends at %v, not at the merge time %v",
				id, parent.EndTime(), m.Time)
		}
	}
	opts, err := descendantOptions("merge", child, m.Parents, m.Proportions, m.Time)
	if err != nil {
		return nil, err
	}
	return g.AddDeme(m.Child, opts)
}

// AddAdmix starts a.Child at a.Time from parents alive at a.Time.
func (g *Graph) AddAdmix(a Admix, child DemeOptions) (*Deme, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	opts, err := descendantOptions("admixture", child, a.Parents, a.Proportions, a.Time)
	if err != nil {
		return nil, err
	}
	return g.AddDeme(a.Child, opts)
}

// descendantOptions fills the ancestry of opts from an event descriptor.
func descendantOptions(event string, opts DemeOptions, parents []string, proportions []float64, time float64) (DemeOptions, error) {
	if opts.Ancestors != nil || opts.Proportions != nil {
		return DemeOptions{}, errors.Valuef("%s: ancestry is set by the event", event)
	}
	if opts.StartTime != nil && *opts.StartTime != time {
		return DemeOptions{}, errors.Valuef("%s: start_time %v conflicts with event time %v", event, *opts.StartTime, time)
	}
	opts.Ancestors = slices.Clone(parents)
	opts.Proportions = slices.Clone(proportions)
	opts.StartTime = Float(time)
	return opts, nil
}
