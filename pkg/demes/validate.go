package demes

import (
	"github.com/matzehuels/demes/pkg/errors"
)

// Validate audits the whole graph. It is the check to run after editing
// fields directly; the builders run the same per-entity checks on insert.
//
// The audit covers graph attributes, each deme's local invariants, unique
// deme ids, ancestor existence and timing, and endpoint existence and
// timing of every migration and pulse. It returns the first violation.
func (g *Graph) Validate() error {
	if err := g.checkAttributes(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(g.Demes))
	for i, d := range g.Demes {
		if d == nil {
			return errors.Valuef("demes[%d] is nil", i)
		}
		if err := d.Validate(); err != nil {
			return err
		}
		if seen[d.ID] {
			return errors.Valuef("duplicate deme id %q", d.ID)
		}
		seen[d.ID] = true
	}
	for _, d := range g.Demes {
		if err := g.checkAncestors(d); err != nil {
			return err
		}
	}
	for i := range g.Migrations {
		m := &g.Migrations[i]
		if err := m.Validate(); err != nil {
			return err
		}
		if err := g.checkMigration(m); err != nil {
			return err
		}
	}
	for i := range g.Pulses {
		p := &g.Pulses[i]
		if err := p.Validate(); err != nil {
			return err
		}
		if err := g.checkPulse(p); err != nil {
			return err
		}
	}
	return nil
}

// checkAncestors requires every ancestor of d to be in the graph and alive
// at d's start time.
func (g *Graph) checkAncestors(d *Deme) error {
	start := d.StartTime()
	for _, id := range d.Ancestors {
		anc, ok := g.Deme(id)
		if !ok {
			return errors.Valuef("deme %q: ancestor %q not in graph", d.ID, id)
		}
		if !anc.AliveAt(start) {
			return errors.Valuef("deme %q: start_time %v outside ancestor %q lifetime [%v, %v)",
				d.ID, start, id, anc.EndTime(), anc.StartTime())
		}
	}
	return nil
}

// checkMigration requires both endpoints in the graph with the migration
// interval inside each one's lifetime.
func (g *Graph) checkMigration(m *Migration) error {
	for _, id := range []string{m.Source, m.Dest} {
		d, ok := g.Deme(id)
		if !ok {
			return errors.Valuef("migration %q -> %q: deme %q not in graph", m.Source, m.Dest, id)
		}
		if m.StartTime > d.StartTime() || m.EndTime < d.EndTime() {
			return errors.Valuef("migration %q -> %q: interval [%v, %v) outside deme %q lifetime [%v, %v)",
				m.Source, m.Dest, m.EndTime, m.StartTime, id, d.EndTime(), d.StartTime())
		}
	}
	return nil
}

// checkPulse requires both endpoints in the graph and alive at the pulse
// time.
func (g *Graph) checkPulse(p *Pulse) error {
	for _, id := range []string{p.Source, p.Dest} {
		d, ok := g.Deme(id)
		if !ok {
			return errors.Valuef("pulse %q -> %q: deme %q not in graph", p.Source, p.Dest, id)
		}
		if !d.AliveAt(p.Time) {
			return errors.Valuef("pulse %q -> %q: time %v outside deme %q lifetime [%v, %v)",
				p.Source, p.Dest, p.Time, id, d.EndTime(), d.StartTime())
		}
	}
	return nil
}
