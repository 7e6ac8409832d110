package mdp

import (
	"fmt"
	"log/slog"
)

type StateAction struct {
	State  State
	Action Action
}

// Trajectory records every value function and every Q-value computed by a
// fixed-horizon solve. Index i holds iteration i; index 0 is all zeros.
type Trajectory struct {
	Values []ValueFunction
	Q      map[StateAction][]float64
}

func (t Trajectory) Iterations() int {
	return len(t.Values) - 1
}

// Final returns the value function of the last iteration.
func (t Trajectory) Final() ValueFunction {
	return t.Values[len(t.Values)-1]
}

// StateValues returns the value of s at every iteration.
func (t Trajectory) StateValues(s State) []float64 {
	out := make([]float64, len(t.Values))
	for i, v := range t.Values {
		out[i] = v[s]
	}
	return out
}

type HorizonOptions struct {
	// Gamma replaces the MDP's discount factor for this solve.
	Gamma float64
	// Iterations below one yield only the all-zero iteration 0.
	Iterations int
	Logger     *slog.Logger
}

type HorizonResult struct {
	Trajectory Trajectory
	Policy     Policy
}

// SolveHorizon runs a fixed number of synchronous Bellman sweeps, each one
// computed entirely from the previous iteration's values. States omitted
// from the transition model stay at 0.
func SolveHorizon(m *MDP, opts HorizonOptions) (HorizonResult, error) {
	if err := checkDiscount(opts.Gamma); err != nil {
		return HorizonResult{}, err
	}
	for _, s := range m.stateSpace.States {
		if !m.IsAbsorbing(s) && len(m.actionSpace.Actions(s)) == 0 {
			return HorizonResult{}, fmt.Errorf("%w: %q", ErrNoLegalActions, s)
		}
	}
	logger := loggerOrDiscard(opts.Logger)

	traj := Trajectory{
		Values: []ValueFunction{NewValueFunction(m.stateSpace.States)},
		Q:      map[StateAction][]float64{},
	}
	for _, s := range m.stateSpace.States {
		for _, a := range m.actionSpace.Actions(s) {
			traj.Q[StateAction{s, a}] = []float64{0.0}
		}
	}
	policy := Policy{}

	for i := 1; i <= opts.Iterations; i++ {
		prev := traj.Values[i-1]
		cur := make(ValueFunction, len(prev))
		for _, s := range m.stateSpace.States {
			if m.IsAbsorbing(s) {
				cur[s] = 0.0
				continue
			}
			a, v, err := m.backup(s, prev, opts.Gamma, func(a Action, q float64) {
				key := StateAction{s, a}
				traj.Q[key] = append(traj.Q[key], q)
			})
			if err != nil {
				return HorizonResult{}, err
			}
			cur[s] = v
			policy[s] = a
		}
		traj.Values = append(traj.Values, cur)
		logger.Debug("horizon iteration", "i", i, "gamma", opts.Gamma)
	}

	return HorizonResult{Trajectory: traj, Policy: policy}, nil
}
