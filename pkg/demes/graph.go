package demes

import (
	"math"
	"slices"

	"github.com/matzehuels/demes/pkg/errors"
)

// TimeUnitsGenerations is the canonical time unit. A graph without a
// generation time must use it.
const TimeUnitsGenerations = "generations"

// Graph is a demographic model: demes plus the continuous migrations and
// instantaneous pulses that connect them.
//
// Graphs are built with [New] and the Add* builders, each of which validates
// against the current state and either appends or returns an error leaving
// the graph unchanged. The exported fields may also be edited directly;
// after that, call [Graph.Validate] before relying on the graph.
//
// The zero value is not usable. Graph is not safe for concurrent use
// without external synchronization.
type Graph struct {
	Description string
	TimeUnits   string
	// GenerationTime converts TimeUnits into generations. Nil means times
	// are already in generations.
	GenerationTime *float64
	DOI            []string

	Demes      []*Deme
	Migrations []Migration
	Pulses     []Pulse

	warnings  []Warning
	onWarning func(Warning)
}

// Option configures a [Graph] created by [New].
type Option func(*Graph)

// WithGenerationTime sets the number of time units per generation.
func WithGenerationTime(t float64) Option {
	return func(g *Graph) { g.GenerationTime = &t }
}

// WithDOI sets the publication identifiers attached to the model.
func WithDOI(doi ...string) Option {
	return func(g *Graph) { g.DOI = slices.Clone(doi) }
}

// WithWarningHandler installs fn to receive warnings as they are raised.
// Warnings are also recorded and available from [Graph.Warnings].
func WithWarningHandler(fn func(Warning)) Option {
	return func(g *Graph) { g.onWarning = fn }
}

// New returns an empty graph. An empty timeUnits defaults to
// [TimeUnitsGenerations].
func New(description, timeUnits string, opts ...Option) (*Graph, error) {
	if timeUnits == "" {
		timeUnits = TimeUnitsGenerations
	}
	g := &Graph{
		Description: description,
		TimeUnits:   timeUnits,
		DOI:         []string{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.checkAttributes(); err != nil {
		return nil, err
	}
	return g, nil
}

// checkAttributes validates the graph-level fields.
func (g *Graph) checkAttributes() error {
	if g.TimeUnits == "" {
		return errors.Valuef("time_units must not be empty")
	}
	if g.GenerationTime != nil {
		gt := *g.GenerationTime
		if math.IsNaN(gt) || math.IsInf(gt, 0) || gt <= 0 {
			return errors.Valuef("generation_time must be finite and positive, got %v", gt)
		}
	} else if g.TimeUnits != TimeUnitsGenerations {
		return errors.Valuef("generation_time is required when time_units is %q", g.TimeUnits)
	}
	for i, doi := range g.DOI {
		if doi == "" {
			return errors.Valuef("doi[%d] must not be empty", i)
		}
	}
	return nil
}

// Deme returns the deme with the given id.
func (g *Graph) Deme(id string) (*Deme, bool) {
	for _, d := range g.Demes {
		if d.ID == id {
			return d, true
		}
	}
	return nil, false
}

// DemeIDs returns the deme ids in insertion order.
func (g *Graph) DemeIDs() []string {
	ids := make([]string, len(g.Demes))
	for i, d := range g.Demes {
		ids[i] = d.ID
	}
	return ids
}

// Clone returns a deep copy of g. Recorded warnings and the warning handler
// are carried over.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		Description: g.Description,
		TimeUnits:   g.TimeUnits,
		DOI:         cloneOrEmpty(g.DOI),
		Demes:       make([]*Deme, len(g.Demes)),
		Migrations:  slices.Clone(g.Migrations),
		Pulses:      slices.Clone(g.Pulses),
		warnings:    slices.Clone(g.warnings),
		onWarning:   g.onWarning,
	}
	if g.GenerationTime != nil {
		gt := *g.GenerationTime
		c.GenerationTime = &gt
	}
	for i, d := range g.Demes {
		c.Demes[i] = d.Clone()
	}
	return c
}

// SetWarningHandler replaces the warning handler. A nil fn only records.
func (g *Graph) SetWarningHandler(fn func(Warning)) { g.onWarning = fn }

// Warnings returns the warnings raised by builders on this graph, oldest
// first.
func (g *Graph) Warnings() []Warning { return slices.Clone(g.warnings) }

// IsClose reports whether g and other describe the same model within
// [DefaultTolerance].
func (g *Graph) IsClose(other *Graph) bool {
	return g.IsCloseTol(other, DefaultTolerance)
}

// IsCloseTol compares time units and generation time, then demes,
// migrations and pulses as multisets: every entity must have a distinct
// counterpart in other that is close within tol, regardless of position.
// Description and DOI are ignored.
func (g *Graph) IsCloseTol(other *Graph, tol Tolerance) bool {
	if g == nil || other == nil {
		return false
	}
	if g.TimeUnits != other.TimeUnits || !isClosePtr(g.GenerationTime, other.GenerationTime, tol) {
		return false
	}
	return matchAll(g.Demes, other.Demes, func(a, b *Deme) bool { return a.IsCloseTol(b, tol) }) &&
		matchAll(g.Migrations, other.Migrations, func(a, b Migration) bool { return a.IsCloseTol(&b, tol) }) &&
		matchAll(g.Pulses, other.Pulses, func(a, b Pulse) bool { return a.IsCloseTol(&b, tol) })
}
