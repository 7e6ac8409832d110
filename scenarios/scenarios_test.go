package scenarios

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeStranger-Fred/mdpsolve/mdp"
)

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			m, err := Lookup(name)
			require.NoError(t, err)
			assert.NotEmpty(t, m.States())
		})
	}

	_, err := Lookup("nope")
	assert.Error(t, err)
}

func TestThreeway_Discount(t *testing.T) {
	m, err := Threeway(0.9)
	require.NoError(t, err)
	assert.Equal(t, 0.9, m.Discount())
	assert.Equal(t, []mdp.Action{"A0", "A1"}, m.LegalActions("S2"))
}

func TestChain_S3Absorbing(t *testing.T) {
	m, err := Chain()
	require.NoError(t, err)
	assert.True(t, m.IsAbsorbing("S3"))
	assert.Equal(t, []mdp.Action{"a1", "a2"}, m.LegalActions("S1"))
	assert.Equal(t, []mdp.Action{"a3"}, m.LegalActions("S2"))
}

func TestWindyGridWorld_Check(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*StochasticWindyGridWorld)
	}{
		{"wind per column", func(w *StochasticWindyGridWorld) { w.BaseWind = []int{1} }},
		{"wind probabilities", func(w *StochasticWindyGridWorld) { w.StochasticWind2 = 0.5 }},
		{"empty grid", func(w *StochasticWindyGridWorld) { w.Rows = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DefaultWindyGridWorld()
			tt.modify(&w)
			assert.Error(t, w.Check())
			_, err := w.MDP()
			assert.Error(t, err)
		})
	}
}

func TestWindyGridWorld_Outcomes(t *testing.T) {
	w := DefaultWindyGridWorld()

	// on the top row every wind outcome collapses onto the same cell
	out := w.outcomes(0, 1, "right")
	assert.Equal(t, []mdp.Outcome{{Next: w.State(0, 2), Probability: 1, Reward: -1}}, out)

	// from (3,1) moving right lands in column 2, wind 2
	out = w.outcomes(3, 1, "right")
	require.Len(t, out, 3)
	assert.Equal(t, w.State(3, 2), out[0].Next)
	assert.Equal(t, w.State(1, 2), out[1].Next)
	assert.Equal(t, w.State(0, 2), out[2].Next)
	assert.InDelta(t, 0.8, float64(out[1].Probability), 1e-12)
}

func TestWindyGridWorld_Solve(t *testing.T) {
	w := DefaultWindyGridWorld()
	m, err := w.MDP()
	require.NoError(t, err)

	res, err := mdp.SolveConvergence(m, mdp.ConvergenceOptions{Epsilon: 1e-6, MaxSweeps: 10000})
	require.NoError(t, err)

	assert.Zero(t, res.Values[w.State(0, 0)])
	assert.Zero(t, res.Values[w.State(w.Rows-1, w.Cols-1)])
	assert.True(t, m.IsTerminal(w.State(0, 0)))

	assert.InDelta(t, -1.0, res.Values[w.State(0, 1)], 1e-9)
	assert.Equal(t, mdp.Action("left"), res.Policy[w.State(0, 1)])
	assert.InDelta(t, -1.0, res.Values[w.State(1, 0)], 1e-9)
	assert.Equal(t, mdp.Action("up"), res.Policy[w.State(1, 0)])

	for r := 0; r < w.Rows; r++ {
		for c := 0; c < w.Cols; c++ {
			if w.IsTerminal(r, c) {
				continue
			}
			assert.LessOrEqual(t, res.Values[w.State(r, c)], -1.0)
		}
	}
}
