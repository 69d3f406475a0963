package demes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/demes/pkg/errors"
)

func constEpoch(start, end, size float64) Epoch {
	return Epoch{StartTime: start, EndTime: end, InitialSize: size, FinalSize: size, SizeFunction: SizeConstant}
}

func TestNewDeme(t *testing.T) {
	epochs := []Epoch{
		constEpoch(100, 50, 1),
		constEpoch(50, 20, 100),
		constEpoch(20, 1, 200),
	}
	d, err := NewDeme("a", "test", []string{"x"}, []float64{1}, epochs)
	require.NoError(t, err)

	assert.Equal(t, 100.0, d.StartTime())
	assert.Equal(t, 1.0, d.EndTime())
	assert.Equal(t, 99.0, d.TimeSpan())
	assert.Equal(t, d.Epochs[0].StartTime, d.StartTime())
	assert.Equal(t, d.Epochs[len(d.Epochs)-1].EndTime, d.EndTime())
	for i := 0; i < len(d.Epochs)-1; i++ {
		assert.Equal(t, d.Epochs[i].EndTime, d.Epochs[i+1].StartTime)
	}

	epochs[0].InitialSize = 7
	assert.Equal(t, 1.0, d.Epochs[0].InitialSize, "NewDeme must copy epochs")

	root, err := NewDeme("root", "", nil, nil, []Epoch{constEpoch(inf, 0, 1)})
	require.NoError(t, err)
	assert.NotNil(t, root.Ancestors)
	assert.Empty(t, root.Ancestors)
	assert.Empty(t, root.Proportions)
}

func TestNewDemeInvalid(t *testing.T) {
	one := []Epoch{constEpoch(10, 0, 1)}
	tests := []struct {
		name        string
		id          string
		ancestors   []string
		proportions []float64
		epochs      []Epoch
	}{
		{"empty id", "", nil, nil, one},
		{"control character", "a\n", nil, nil, one},
		{"self ancestor", "a", []string{"a"}, []float64{1}, one},
		{"duplicate ancestors", "a", []string{"b", "b"}, []float64{0.5, 0.5}, one},
		{"empty ancestor", "a", []string{""}, []float64{1}, one},
		{"missing proportions", "a", []string{"b"}, nil, one},
		{"too many proportions", "a", []string{"b"}, []float64{0.5, 0.5}, one},
		{"proportions without ancestors", "a", nil, []float64{1}, one},
		{"sum below one", "a", []string{"b", "c"}, []float64{0.5, 0.4}, one},
		{"sum above one", "a", []string{"b", "c"}, []float64{0.7, 0.4}, one},
		{"negative proportion", "a", []string{"b", "c"}, []float64{1.5, -0.5}, one},
		{"nan proportion", "a", []string{"b"}, []float64{math.NaN()}, one},
		{"no epochs", "a", nil, nil, nil},
		{"bad epoch", "a", nil, nil, []Epoch{constEpoch(10, 10, 1)}},
		{"gap", "a", nil, nil, []Epoch{constEpoch(10, 5, 1), constEpoch(4, 0, 1)}},
		{"overlap", "a", nil, nil, []Epoch{constEpoch(10, 5, 1), constEpoch(6, 0, 1)}},
		{"out of order", "a", nil, nil, []Epoch{constEpoch(5, 0, 1), constEpoch(10, 5, 1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDeme(tt.id, "", tt.ancestors, tt.proportions, tt.epochs)
			require.Error(t, err)
			assert.True(t, errors.IsValueError(err), "expected value error, got %v", err)
		})
	}
}

func TestDemeProportionsZeroAllowed(t *testing.T) {
	_, err := NewDeme("a", "", []string{"b", "c"}, []float64{0, 1}, []Epoch{constEpoch(10, 0, 1)})
	assert.NoError(t, err)

	_, err = NewDeme("a", "", []string{"b", "c", "d"}, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, []Epoch{constEpoch(10, 0, 1)})
	assert.NoError(t, err)
}

func TestDemeAliveAt(t *testing.T) {
	d, err := NewDeme("a", "", nil, nil, []Epoch{constEpoch(100, 50, 1)})
	require.NoError(t, err)

	assert.True(t, d.AliveAt(50))
	assert.True(t, d.AliveAt(99.9))
	assert.False(t, d.AliveAt(100))
	assert.False(t, d.AliveAt(49))
}

func TestDemeEmptyEpochsNaN(t *testing.T) {
	d := &Deme{ID: "a"}
	assert.True(t, math.IsNaN(d.StartTime()))
	assert.True(t, math.IsNaN(d.EndTime()))
}

func TestDemeClone(t *testing.T) {
	d, err := NewDeme("a", "", []string{"b"}, []float64{1}, []Epoch{constEpoch(10, 0, 1)})
	require.NoError(t, err)

	c := d.Clone()
	c.Ancestors[0] = "z"
	c.Epochs[0].InitialSize = 9
	assert.Equal(t, "b", d.Ancestors[0])
	assert.Equal(t, 1.0, d.Epochs[0].InitialSize)
	assert.True(t, d.IsClose(d.Clone()))
}

func TestDemeIsClose(t *testing.T) {
	epochs := []Epoch{constEpoch(100, 50, 1), constEpoch(50, 0, 2)}
	d1, err := NewDeme("a", "first", []string{"b", "c"}, []float64{0.25, 0.75}, epochs)
	require.NoError(t, err)

	t.Run("description ignored", func(t *testing.T) {
		d2, err := NewDeme("a", "second", []string{"b", "c"}, []float64{0.25, 0.75}, epochs)
		require.NoError(t, err)
		assert.True(t, d1.IsClose(d2))
	})

	t.Run("ancestor order ignored", func(t *testing.T) {
		d2, err := NewDeme("a", "", []string{"c", "b"}, []float64{0.75, 0.25}, epochs)
		require.NoError(t, err)
		assert.True(t, d1.IsClose(d2))
		assert.True(t, d2.IsClose(d1))
	})

	t.Run("proportions aligned by id", func(t *testing.T) {
		d2, err := NewDeme("a", "", []string{"c", "b"}, []float64{0.25, 0.75}, epochs)
		require.NoError(t, err)
		assert.False(t, d1.IsClose(d2))
	})

	t.Run("different id", func(t *testing.T) {
		d2, err := NewDeme("z", "", []string{"b", "c"}, []float64{0.25, 0.75}, epochs)
		require.NoError(t, err)
		assert.False(t, d1.IsClose(d2))
	})

	t.Run("different ancestors", func(t *testing.T) {
		d2, err := NewDeme("a", "", []string{"b", "x"}, []float64{0.25, 0.75}, epochs)
		require.NoError(t, err)
		assert.False(t, d1.IsClose(d2))
	})

	t.Run("epoch count", func(t *testing.T) {
		d2, err := NewDeme("a", "", []string{"b", "c"}, []float64{0.25, 0.75}, []Epoch{constEpoch(100, 0, 1)})
		require.NoError(t, err)
		assert.False(t, d1.IsClose(d2))
	})

	t.Run("epoch order matters", func(t *testing.T) {
		d2 := d1.Clone()
		d2.Epochs[1].InitialSize, d2.Epochs[1].FinalSize = 3, 3
		assert.False(t, d1.IsClose(d2))
	})

	t.Run("nil", func(t *testing.T) {
		assert.False(t, d1.IsClose(nil))
	})
}
