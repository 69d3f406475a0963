package demes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/demes/pkg/errors"
)

func validGraph(t *testing.T) *Graph {
	t.Helper()
	g := newGraph(t)
	mustDeme(t, g, "a", DemeOptions{InitialSize: Float(1), EndTime: Float(100)})
	mustDeme(t, g, "b", DemeOptions{InitialSize: Float(1), StartTime: Float(50)})
	require.NoError(t, g.Validate())
	return g
}

func TestValidateAfterMutation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(g *Graph)
	}{
		{"unknown ancestor", func(g *Graph) {
			a, _ := g.Deme("a")
			a.Ancestors = []string{"x"}
			a.Proportions = []float64{1}
		}},
		{"ancestor not alive at start", func(g *Graph) {
			b, _ := g.Deme("b")
			b.Ancestors = []string{"a"}
			b.Proportions = []float64{1}
		}},
		{"overlapping epoch", func(g *Graph) {
			a, _ := g.Deme("a")
			a.Epochs = append(a.Epochs, constEpoch(200, 0, 1))
		}},
		{"migration outside lifetimes", func(g *Graph) {
			g.Migrations = append(g.Migrations, Migration{Source: "a", Dest: "b", StartTime: 200, EndTime: 0, Rate: 1e-5})
		}},
		{"migration to unknown deme", func(g *Graph) {
			g.Migrations = append(g.Migrations, Migration{Source: "a", Dest: "x", StartTime: 200, EndTime: 100, Rate: 1e-5})
		}},
		{"pulse at dead deme", func(g *Graph) {
			g.Pulses = append(g.Pulses, Pulse{Source: "a", Dest: "b", Time: 10, Proportion: 0.1})
		}},
		{"self pulse", func(g *Graph) {
			g.Pulses = append(g.Pulses, Pulse{Source: "b", Dest: "b", Time: 10, Proportion: 0.1})
		}},
		{"duplicate deme", func(g *Graph) {
			g.Demes = append(g.Demes, g.Demes[0].Clone())
		}},
		{"nil deme", func(g *Graph) {
			g.Demes = append(g.Demes, nil)
		}},
		{"missing generation time", func(g *Graph) {
			g.TimeUnits = "years"
		}},
		{"empty epochs", func(g *Graph) {
			g.Demes[1].Epochs = nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := validGraph(t)
			tt.mutate(g)
			err := g.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsValueError(err), "expected value error, got %v", err)
		})
	}
}

func TestValidateIdempotent(t *testing.T) {
	g := validGraph(t)
	_, err := g.AddMigration("a", "b", 1e-4, TimeRange{EndTime: Float(100)})
	require.Error(t, err, "a and b never coexist")

	g2 := newGraph(t)
	mustDeme(t, g2, "a", DemeOptions{InitialSize: Float(1)})
	mustDeme(t, g2, "b", DemeOptions{InitialSize: Float(1), Ancestors: []string{"a"}, StartTime: Float(100)})
	_, err = g2.AddMigration("a", "b", 1e-4, TimeRange{})
	require.NoError(t, err)
	_, err = g2.AddPulse("a", "b", 50, 0.5)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.NoError(t, g2.Validate())
	}
}
