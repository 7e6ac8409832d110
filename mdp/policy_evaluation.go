package mdp

import (
	"fmt"
	"math"
)

// EvaluatePolicy computes the value of following policy in m with in-place
// sweeps until the largest change drops below epsilon. Absorbing states are
// worth 0 and need no entry in policy.
func EvaluatePolicy(m *MDP, policy Policy, epsilon float64, maxSweeps int) (ValueFunction, int, error) {
	if math.IsNaN(epsilon) || epsilon <= 0 {
		return nil, 0, fmt.Errorf("%w: epsilon must be > 0, got %v", ErrInvalidParameter, epsilon)
	}

	V := NewValueFunction(m.stateSpace.States)
	sweeps := 0
	for {
		if maxSweeps > 0 && sweeps >= maxSweeps {
			return V, sweeps, fmt.Errorf("%w: policy evaluation after %d sweeps", ErrNotConverged, sweeps)
		}

		var delta float64
		for _, s0 := range m.stateSpace.States {
			if m.IsAbsorbing(s0) {
				continue
			}
			a, ok := policy[s0]
			if !ok {
				return nil, sweeps, fmt.Errorf("%w: policy has no action for %q", ErrMissingActionMapping, s0)
			}
			v0 := V[s0]
			v1, err := m.QValue(s0, a, V)
			if err != nil {
				return nil, sweeps, err
			}
			V[s0] = v1
			delta = math.Max(math.Abs(v0-v1), delta)
		}
		sweeps++

		if delta < epsilon {
			return V, sweeps, nil
		}
	}
}
