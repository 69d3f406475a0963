package demes

import "fmt"

// WarningCode classifies a non-fatal builder diagnostic.
type WarningCode string

// WarningPulseSameTime flags a pulse that shares its time with an existing
// pulse through the same deme. The order in which simultaneous pulses are
// applied changes the result, so the model is ambiguous.
const WarningPulseSameTime WarningCode = "PULSE_SAME_TIME"

// Warning is a non-fatal diagnostic. The operation that raised it succeeded.
type Warning struct {
	Code    WarningCode
	Message string
	// Pulse is the pulse being added; Conflict the existing one it
	// interacts with.
	Pulse    Pulse
	Conflict Pulse
}

func (w Warning) String() string { return fmt.Sprintf("%s: %s", w.Code, w.Message) }

func (g *Graph) warn(w Warning) {
	g.warnings = append(g.warnings, w)
	if g.onWarning != nil {
		g.onWarning(w)
	}
}

// samePulseTime returns the first existing pulse at exactly p.Time that
// shares a destination with p, or whose source or destination is p's
// destination or source. Exact duplicates share a destination.
func (g *Graph) samePulseTime(p Pulse) (Pulse, bool) {
	for _, q := range g.Pulses {
		if q.Time != p.Time {
			continue
		}
		if q.Dest == p.Dest || q.Dest == p.Source || q.Source == p.Dest {
			return q, true
		}
	}
	return Pulse{}, false
}

func (g *Graph) checkPulseOrdering(p Pulse) {
	q, ok := g.samePulseTime(p)
	if !ok {
		return
	}
	g.warn(Warning{
		Code: WarningPulseSameTime,
		Message: fmt.Sprintf(
			"pulse %s -> %s at time %v shares its time with pulse %s -> %s; "+
				"simultaneous pulses are applied in insertion order",
			p.Source, p.Dest, p.Time, q.Source, q.Dest),
		Pulse:    p,
		Conflict: q,
	})
}
