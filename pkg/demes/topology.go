package demes

import "slices"

// Predecessors maps every deme id to its ancestor ids.
func (g *Graph) Predecessors() map[string][]string {
	out := make(map[string][]string, len(g.Demes))
	for _, d := range g.Demes {
		out[d.ID] = cloneOrEmpty(d.Ancestors)
	}
	return out
}

// Successors maps every deme id to the ids of the demes that list it as
// an ancestor, in insertion order.
func (g *Graph) Successors() map[string][]string {
	out := make(map[string][]string, len(g.Demes))
	for _, d := range g.Demes {
		if _, ok := out[d.ID]; !ok {
			out[d.ID] = []string{}
		}
		for _, a := range d.Ancestors {
			out[a] = append(out[a], d.ID)
		}
	}
	return out
}

// DiscreteEvents reconstructs the ancestry events implied by the demes'
// ancestors and start times.
//
// A deme with one ancestor that ends at the deme's start time is a split
// child; children of the same parent at the same time share one Split. A
// deme with one ancestor that continues past its start is a Branch. A deme
// with several ancestors is a Merge when all of them end at its start time
// and an Admix otherwise.
func (g *Graph) DiscreteEvents() Events {
	type splitKey struct {
		parent string
		time   float64
	}
	var ev Events
	splitIndex := make(map[splitKey]int)
	for _, d := range g.Demes {
		start := d.StartTime()
		switch len(d.Ancestors) {
		case 0:
			continue
		case 1:
			parent, ok := g.Deme(d.Ancestors[0])
			if !ok {
				continue
			}
			if parent.EndTime() != start {
				ev.Branches = append(ev.Branches, Branch{Parent: parent.ID, Child: d.ID, Time: start})
				continue
			}
			key := splitKey{parent.ID, start}
			if i, ok := splitIndex[key]; ok {
				ev.Splits[i].Children = append(ev.Splits[i].Children, d.ID)
				continue
			}
			splitIndex[key] = len(ev.Splits)
			ev.Splits = append(ev.Splits, Split{Parent: parent.ID, Children: []string{d.ID}, Time: start})
		default:
			merged := true
			for _, id := range d.Ancestors {
				if a, ok := g.Deme(id); !ok || a.EndTime() != start {
					merged = false
					break
				}
			}
			parents, proportions := slices.Clone(d.Ancestors), slices.Clone(d.Proportions)
			if merged {
				ev.Merges = append(ev.Merges, Merge{Parents: parents, Proportions: proportions, Child: d.ID, Time: start})
			} else {
				ev.Admixtures = append(ev.Admixtures, Admix{Parents: parents, Proportions: proportions, Child: d.ID, Time: start})
			}
		}
	}
	return ev
}
