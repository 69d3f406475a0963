package demes

import (
	"fmt"
	"math"

	"github.com/matzehuels/demes/pkg/errors"
)

// Migration is continuous asymmetric gene flow from Source into Dest at a
// per-generation Rate over [EndTime, StartTime).
type Migration struct {
	Source    string
	Dest      string
	StartTime float64
	EndTime   float64
	Rate      float64
}

// NewMigration returns a validated migration. Whether the interval fits
// both demes is checked by the graph.
func NewMigration(source, dest string, startTime, endTime, rate float64) (Migration, error) {
	m := Migration{Source: source, Dest: dest, StartTime: startTime, EndTime: endTime, Rate: rate}
	if err := m.Validate(); err != nil {
		return Migration{}, err
	}
	return m, nil
}

// Validate checks distinct endpoints, 0 <= EndTime < StartTime <= +Inf and
// a finite non-negative rate.
func (m *Migration) Validate() error {
	where := fmt.Sprintf("migration %q -> %q", m.Source, m.Dest)
	if err := checkEndpoints(where, m.Source, m.Dest); err != nil {
		return err
	}
	if err := errors.ValidateInterval(where, m.StartTime, m.EndTime); err != nil {
		return err
	}
	if math.IsNaN(m.Rate) || math.IsInf(m.Rate, 0) || m.Rate < 0 {
		return errors.Valuef("%s: rate must be finite and non-negative, got %v", where, m.Rate)
	}
	return nil
}

// IsClose reports whether m and other are equal within [DefaultTolerance].
func (m *Migration) IsClose(other *Migration) bool {
	return m.IsCloseTol(other, DefaultTolerance)
}

// IsCloseTol compares endpoints exactly and times and rate within tol.
func (m *Migration) IsCloseTol(other *Migration, tol Tolerance) bool {
	if m == nil || other == nil {
		return false
	}
	return m.Source == other.Source &&
		m.Dest == other.Dest &&
		isClose(m.StartTime, other.StartTime, tol) &&
		isClose(m.EndTime, other.EndTime, tol) &&
		isClose(m.Rate, other.Rate, tol)
}

// Pulse is an instantaneous transfer at Time: a fraction Proportion of Dest
// is replaced by migrants from Source.
type Pulse struct {
	Source     string
	Dest       string
	Time       float64
	Proportion float64
}

// NewPulse returns a validated pulse. Whether both demes exist at Time is
// checked by the graph.
func NewPulse(source, dest string, time, proportion float64) (Pulse, error) {
	p := Pulse{Source: source, Dest: dest, Time: time, Proportion: proportion}
	if err := p.Validate(); err != nil {
		return Pulse{}, err
	}
	return p, nil
}

// Validate checks distinct endpoints, a finite non-negative time and a
// proportion in (0, 1].
func (p *Pulse) Validate() error {
	where := fmt.Sprintf("pulse %q -> %q", p.Source, p.Dest)
	if err := checkEndpoints(where, p.Source, p.Dest); err != nil {
		return err
	}
	if err := errors.ValidateTime(where+" time", p.Time, false); err != nil {
		return err
	}
	if math.IsNaN(p.Proportion) || p.Proportion <= 0 || p.Proportion > 1 {
		return errors.Valuef("%s: proportion must be in (0, 1], got %v", where, p.Proportion)
	}
	return nil
}

// IsClose reports whether p and other are equal within [DefaultTolerance].
func (p *Pulse) IsClose(other *Pulse) bool {
	return p.IsCloseTol(other, DefaultTolerance)
}

// IsCloseTol compares endpoints exactly and time and proportion within tol.
func (p *Pulse) IsCloseTol(other *Pulse, tol Tolerance) bool {
	if p == nil || other == nil {
		return false
	}
	return p.Source == other.Source &&
		p.Dest == other.Dest &&
		isClose(p.Time, other.Time, tol) &&
		isClose(p.Proportion, other.Proportion, tol)
}

func checkEndpoints(where, source, dest string) error {
	if err := errors.ValidateID(where+" source", source); err != nil {
		return err
	}
	if err := errors.ValidateID(where+" dest", dest); err != nil {
		return err
	}
	if source == dest {
		return errors.Valuef("%s: source and dest must differ", where)
	}
	return nil
}
