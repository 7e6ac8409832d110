package mdp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeStranger-Fred/mdpsolve/mdp"
	"github.com/CodeStranger-Fred/mdpsolve/scenarios"
)

func TestEvaluatePolicy_OptimalPolicyReproducesValues(t *testing.T) {
	m := threeway(t, 0.9)

	opt, err := mdp.SolveConvergence(m, mdp.ConvergenceOptions{Epsilon: 1e-10})
	require.NoError(t, err)

	v, sweeps, err := mdp.EvaluatePolicy(m, opt.Policy, 1e-10, 0)
	require.NoError(t, err)
	assert.Positive(t, sweeps)
	for _, s := range m.States() {
		assert.InDelta(t, opt.Values[s], v[s], 1e-6)
	}
}

func TestEvaluatePolicy_WorsePolicyIsWorse(t *testing.T) {
	m := threeway(t, 0.9)

	opt, _, err := mdp.EvaluatePolicy(m, mdp.Policy{"S0": "A0", "S1": "A0", "S2": "A0"}, 1e-9, 0)
	require.NoError(t, err)
	alt, _, err := mdp.EvaluatePolicy(m, mdp.Policy{"S0": "A1", "S1": "A1", "S2": "A1"}, 1e-9, 0)
	require.NoError(t, err)

	for _, s := range m.States() {
		assert.Less(t, alt[s], opt[s], "state %s", s)
	}
}

func TestEvaluatePolicy_AbsorbingStatesNeedNoAction(t *testing.T) {
	m, err := scenarios.Chain()
	require.NoError(t, err)

	v, _, err := mdp.EvaluatePolicy(m, mdp.Policy{"S1": "a1", "S2": "a3"}, 1e-9, 0)
	require.NoError(t, err)
	assert.Zero(t, v["S3"])
	// S1 loops on itself with probability 0.001, so v = 100 + 0.001 v
	assert.InDelta(t, 100/0.999, v["S1"], 1e-6)
}

func TestEvaluatePolicy_Errors(t *testing.T) {
	m := threeway(t, 0.9)

	_, _, err := mdp.EvaluatePolicy(m, mdp.Policy{"S0": "A0"}, 1e-3, 0)
	assert.ErrorIs(t, err, mdp.ErrMissingActionMapping)

	_, _, err = mdp.EvaluatePolicy(m, mdp.Policy{"S0": "A0", "S1": "A0", "S2": "A0"}, 0, 0)
	assert.ErrorIs(t, err, mdp.ErrInvalidParameter)

	undiscounted := threeway(t, 1.0)
	_, sweeps, err := mdp.EvaluatePolicy(undiscounted, mdp.Policy{"S0": "A0", "S1": "A0", "S2": "A0"}, 1e-3, 25)
	assert.ErrorIs(t, err, mdp.ErrNotConverged)
	assert.Equal(t, 25, sweeps)
}
