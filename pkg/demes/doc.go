// Package demes provides the demographic model graph: populations ("demes")
// with piecewise size histories, their ancestry, and the migrations and
// pulses that connect them.
//
// # Overview
//
// A [Graph] is an interchange description of a population-genetics model.
// Times are measured backwards from the present: an end time of 0 is "now"
// and a start time of +Inf is the deep past. Every deme owns an ordered list
// of [Epoch] values that partition its lifetime from oldest to youngest.
//
// # Building a Graph
//
// Graphs are built incrementally. Each builder call resolves implied values
// (default start times, ancestry proportions, inherited epoch fields) and
// validates the result against the demes already present. A call either
// succeeds or leaves the graph exactly as it was:
//
//	g, _ := demes.New("two populations", demes.TimeUnitsGenerations)
//	g.AddDeme("ancestral", demes.DemeOptions{InitialSize: demes.Float(1e4), EndTime: demes.Float(500)})
//	g.AddDeme("A", demes.DemeOptions{Ancestors: []string{"ancestral"}, InitialSize: demes.Float(2e3)})
//	g.AddDeme("B", demes.DemeOptions{Ancestors: []string{"ancestral"}, InitialSize: demes.Float(3e3)})
//	g.AddSymmetricMigration([]string{"A", "B"}, 1e-4, demes.TimeRange{})
//	g.AddPulse("A", "B", 100, 0.05)
//
// The sugar builders [Graph.AddSplit], [Graph.AddBranch], [Graph.AddMerge]
// and [Graph.AddAdmix] translate [Split], [Branch], [Merge] and [Admix]
// descriptors into deme ancestry. [Graph.DiscreteEvents] goes the other way.
//
// # Validation
//
// Fields are exported and may be edited in place (appending an epoch,
// rewriting ancestors). After such edits, call [Graph.Validate], which runs
// the same checks the builders use across the whole graph.
//
// Two error kinds are returned, both as *errors.Error from pkg/errors:
// TYPE_ERROR for wrong container kinds (only reachable through [FromDict])
// and VALUE_ERROR for every violated invariant.
//
// # Warnings
//
// Several instantaneous pulses at the same time into or through the same
// deme are ambiguous, since the outcome depends on application order. This
// is reported as a [Warning], not an error: it is recorded on the graph
// ([Graph.Warnings]) and passed to the handler set with [WithWarningHandler].
//
// # Equality
//
// [Graph.IsClose] compares graphs semantically: demes, migrations and pulses
// are matched as multisets, numeric fields are compared with a [Tolerance],
// and descriptions and DOIs are ignored.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. Callers must serialize
// access when sharing a graph across goroutines.
package demes
