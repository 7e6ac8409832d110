package mdp

import (
	"fmt"
	"math"
)

// ValueFunction maps every state to its current value estimate.
type ValueFunction map[State]float64

func NewValueFunction(states []State) ValueFunction {
	v := make(ValueFunction, len(states))
	for _, s := range states {
		v[s] = 0.0
	}
	return v
}

func (v ValueFunction) Estimate(s State) float64 {
	return v[s]
}

func (v ValueFunction) Clone() ValueFunction {
	c := make(ValueFunction, len(v))
	for s, x := range v {
		c[s] = x
	}
	return c
}

// QValue is the Bellman backup of a in s against v using the MDP's discount:
// Q(s,a) = sum over outcomes of p * (r + gamma * V(s')).
func (m *MDP) QValue(s State, a Action, v ValueFunction) (float64, error) {
	return m.qValue(s, a, v, m.discount)
}

func (m *MDP) qValue(s State, a Action, v ValueFunction, gamma float64) (float64, error) {
	outcomes, err := m.outcomes(s, a)
	if err != nil {
		return 0, err
	}
	var q float64
	for _, o := range outcomes {
		q += float64(o.Probability) * (float64(o.Reward) + gamma*v.Estimate(o.Next))
	}
	return q, nil
}

// backup returns the first action in canonical order that attains the
// maximal Q-value in s, along with that value. record, if set, sees every
// Q-value computed on the way.
func (m *MDP) backup(s State, v ValueFunction, gamma float64, record func(Action, float64)) (Action, float64, error) {
	actions := m.actionSpace.Actions(s)
	if len(actions) == 0 {
		return "", 0, fmt.Errorf("%w: %q", ErrNoLegalActions, s)
	}

	bestA := Action("")
	bestV := math.Inf(-1)
	for i, a := range actions {
		q, err := m.qValue(s, a, v, gamma)
		if err != nil {
			return "", 0, err
		}
		if record != nil {
			record(a, q)
		}
		if i == 0 || q > bestV {
			bestV = q
			bestA = a
		}
	}
	return bestA, bestV, nil
}
