package demes

// InGenerations returns a copy of g with every time divided by the
// generation time and TimeUnits set to [TimeUnitsGenerations]. The result
// has no generation time, so applying InGenerations again returns an
// equal copy. g is not modified.
func (g *Graph) InGenerations() *Graph {
	if g.GenerationTime == nil {
		c := g.Clone()
		c.TimeUnits = TimeUnitsGenerations
		return c
	}
	return timeScaler{factor: *g.GenerationTime}.graph(g)
}

// timeScaler divides the time fields of each entity kind by factor.
type timeScaler struct {
	factor float64
}

func (s timeScaler) epoch(e Epoch) Epoch {
	e.StartTime /= s.factor
	e.EndTime /= s.factor
	return e
}

func (s timeScaler) deme(d *Deme) *Deme {
	c := d.Clone()
	for i := range c.Epochs {
		c.Epochs[i] = s.epoch(c.Epochs[i])
	}
	return c
}

func (s timeScaler) migration(m Migration) Migration {
	m.StartTime /= s.factor
	m.EndTime /= s.factor
	return m
}

func (s timeScaler) pulse(p Pulse) Pulse {
	p.Time /= s.factor
	return p
}

func (s timeScaler) graph(g *Graph) *Graph {
	c := g.Clone()
	c.TimeUnits = TimeUnitsGenerations
	c.GenerationTime = nil
	for i, d := range g.Demes {
		c.Demes[i] = s.deme(d)
	}
	for i, m := range g.Migrations {
		c.Migrations[i] = s.migration(m)
	}
	for i, p := range g.Pulses {
		c.Pulses[i] = s.pulse(p)
	}
	return c
}
