package demes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventsGraph(t *testing.T) *Graph {
	t.Helper()
	g := newGraph(t)
	mustDeme(t, g, "anc", DemeOptions{InitialSize: Float(100), EndTime: Float(1000)})
	_, err := g.AddSplit(Split{Parent: "anc", Children: []string{"a", "b"}, Time: 1000}, map[string]DemeOptions{
		"a": {InitialSize: Float(10), EndTime: Float(200)},
		"b": {InitialSize: Float(10), EndTime: Float(200)},
	})
	require.NoError(t, err)
	mustDeme(t, g, "c", DemeOptions{InitialSize: Float(10)})
	_, err = g.AddBranch(Branch{Parent: "c", Child: "br", Time: 500}, DemeOptions{InitialSize: Float(5)})
	require.NoError(t, err)
	_, err = g.AddMerge(Merge{Parents: []string{"a", "b"}, Proportions: []float64{0.5, 0.5}, Child: "ab", Time: 200},
		DemeOptions{InitialSize: Float(10)})
	require.NoError(t, err)
	_, err = g.AddAdmix(Admix{Parents: []string{"ab", "br"}, Proportions: []float64{0.2, 0.8}, Child: "adm", Time: 100},
		DemeOptions{InitialSize: Float(10)})
	require.NoError(t, err)
	return g
}

func TestDiscreteEvents(t *testing.T) {
	ev := eventsGraph(t).DiscreteEvents()

	require.Len(t, ev.Splits, 1)
	assert.True(t, ev.Splits[0].IsClose(&Split{Parent: "anc", Children: []string{"b", "a"}, Time: 1000}))

	require.Len(t, ev.Branches, 1)
	assert.Equal(t, Branch{Parent: "c", Child: "br", Time: 500}, ev.Branches[0])

	require.Len(t, ev.Merges, 1)
	assert.True(t, ev.Merges[0].IsClose(&Merge{Parents: []string{"a", "b"}, Proportions: []float64{0.5, 0.5}, Child: "ab", Time: 200}))

	require.Len(t, ev.Admixtures, 1)
	assert.Equal(t, "adm", ev.Admixtures[0].Child)
	assert.Equal(t, 100.0, ev.Admixtures[0].Time)
}

func TestSuccessorsPredecessors(t *testing.T) {
	g := eventsGraph(t)

	succ := g.Successors()
	assert.Equal(t, []string{"a", "b"}, succ["anc"])
	assert.Equal(t, []string{"ab"}, succ["a"])
	assert.Equal(t, []string{"adm"}, succ["br"])
	assert.Empty(t, succ["adm"])
	assert.Len(t, succ, len(g.Demes))

	pred := g.Predecessors()
	assert.Empty(t, pred["anc"])
	assert.Equal(t, []string{"a", "b"}, pred["ab"])
	assert.Equal(t, []string{"ab", "br"}, pred["adm"])
	assert.Len(t, pred, len(g.Demes))
}
