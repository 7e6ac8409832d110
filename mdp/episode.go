package mdp

import (
	"fmt"
	"math/rand/v2"
)

type Transition struct {
	State0 State
	Action Action
	State1 State
	Reward Reward
}

type Episode struct {
	History []Transition
	// Return is the discounted sum of rewards along History.
	Return float64
}

// Rollout samples up to steps transitions following policy from start. It
// stops early when it reaches a terminal state.
func Rollout(m *MDP, policy Policy, start State, steps int, rng *rand.Rand) (Episode, error) {
	if rng == nil {
		return Episode{}, fmt.Errorf("%w: nil random source", ErrInvalidParameter)
	}
	if !m.HasState(start) {
		return Episode{}, fmt.Errorf("%w: unknown start state %q", ErrInvalidParameter, start)
	}

	var ep Episode
	discount := 1.0
	state := start
	for t := 0; t < steps && !m.IsTerminal(state); t++ {
		a, ok := policy[state]
		if !ok {
			return ep, fmt.Errorf("%w: policy has no action for %q", ErrMissingActionMapping, state)
		}
		outcomes, err := m.outcomes(state, a)
		if err != nil {
			return ep, err
		}

		pdf := DiscretePdf[int]{}
		for i, o := range outcomes {
			pdf.Add(i, o.Probability)
		}
		o := outcomes[pdf.Choose(rng)]

		ep.History = append(ep.History, Transition{
			State0: state,
			Action: a,
			State1: o.Next,
			Reward: o.Reward,
		})
		ep.Return += discount * float64(o.Reward)
		discount *= m.discount
		state = o.Next
	}
	return ep, nil
}
