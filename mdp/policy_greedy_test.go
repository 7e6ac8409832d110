package mdp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tied has two actions with identical outcomes from "x".
func tied(t *testing.T, actions []Action) *MDP {
	t.Helper()
	same := []Outcome{{Next: "y", Probability: 1, Reward: 5}}
	m, err := New([]State{"x", "y"}, actions,
		TransitionModel{
			"x": {"left": same, "right": same},
			"y": {"left": {{Next: "y", Probability: 1}}},
		},
		nil, 0.5)
	require.NoError(t, err)
	return m
}

func TestExtractPolicy_TiesGoToFirstDeclaredAction(t *testing.T) {
	v := ValueFunction{"x": 0, "y": 3}

	p, err := ExtractPolicy(tied(t, []Action{"left", "right"}), v)
	require.NoError(t, err)
	assert.Equal(t, Action("left"), p["x"])

	p, err = ExtractPolicy(tied(t, []Action{"right", "left"}), v)
	require.NoError(t, err)
	assert.Equal(t, Action("right"), p["x"])
}

func TestExtractPolicy_Idempotent(t *testing.T) {
	m := tied(t, []Action{"right", "left"})
	v := ValueFunction{"x": 1, "y": -2}
	before := v.Clone()

	p1, err := ExtractPolicy(m, v)
	require.NoError(t, err)
	p2, err := ExtractPolicy(m, v)
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
	assert.Equal(t, before, v)
}

func TestExtractPolicy_PicksStrictMaximum(t *testing.T) {
	m, err := New([]State{"x", "good", "bad"}, []Action{"a", "b"},
		TransitionModel{
			"x": {
				"a": {{Next: "bad", Probability: 1}},
				"b": {{Next: "good", Probability: 1}},
			},
			"good": {"a": {{Next: "good", Probability: 1}}},
			"bad":  {"a": {{Next: "bad", Probability: 1}}},
		},
		nil, 0.9)
	require.NoError(t, err)

	p, err := ExtractPolicy(m, ValueFunction{"x": 0, "good": 1, "bad": -1})
	require.NoError(t, err)
	assert.Equal(t, Policy{"x": "b", "good": "a", "bad": "a"}, p)
}

func TestExtractPolicy_NoLegalActions(t *testing.T) {
	m, err := New([]State{"x", "y"}, []Action{"a"},
		TransitionModel{"x": {"a": {{Next: "y", Probability: 1}}}},
		nil, 1)
	require.NoError(t, err)

	_, err = ExtractPolicy(m, NewValueFunction(m.States()))
	assert.ErrorIs(t, err, ErrNoLegalActions)
}

func TestStateActionEstimator_Argmax(t *testing.T) {
	m := tied(t, []Action{"right", "left"})
	q, err := ValueFunction{"x": 0, "y": 2}.ToStateActionEstimator(m)
	require.NoError(t, err)

	assert.InDelta(t, 6.0, q["x"]["left"], 1e-12)
	assert.InDelta(t, 6.0, q["x"]["right"], 1e-12)
	assert.Equal(t, Action("right"), q.Argmax(m, "x"))
	assert.Equal(t, Action("left"), q.Argmax(m, "y"))

	m = tied(t, []Action{"left", "right"})
	q, err = ValueFunction{"x": 0, "y": 2}.ToStateActionEstimator(m)
	require.NoError(t, err)
	assert.Equal(t, Action("left"), q.Argmax(m, "x"))
}
