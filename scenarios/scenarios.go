// Package scenarios holds ready-made MDP definitions used by the CLI demo
// and the tests.
package scenarios

import (
	"fmt"
	"sort"

	"github.com/CodeStranger-Fred/mdpsolve/mdp"
)

// Threeway is the three-state, two-action problem with flat per-action
// rewards. Every reward is negative and nothing terminates, so it only
// converges for discount < 1.
func Threeway(discount float64) (*mdp.MDP, error) {
	states := []mdp.State{"S0", "S1", "S2"}
	actions := []mdp.Action{"A0", "A1"}

	transitions := mdp.TransitionModel{
		"S0": {
			"A0": {{Next: "S0", Probability: 0.5}, {Next: "S1", Probability: 0.5}},
			"A1": {{Next: "S0", Probability: 0.7}, {Next: "S2", Probability: 0.3}},
		},
		"S1": {
			"A0": {{Next: "S0", Probability: 1.0}},
			"A1": {{Next: "S1", Probability: 0.5}, {Next: "S2", Probability: 0.5}},
		},
		"S2": {
			"A0": {{Next: "S0", Probability: 0.4}, {Next: "S2", Probability: 0.6}},
			"A1": {{Next: "S1", Probability: 1.0}},
		},
	}
	rewards := mdp.RewardModel{
		"S0": {"A0": -1, "A1": -2},
		"S1": {"A0": -2, "A1": -2},
		"S2": {"A0": -1, "A1": -1},
	}
	return mdp.New(states, actions, transitions, rewards, discount)
}

// Chain is the three-state problem with rewards on each outcome. S3 is left
// out of the transition model and therefore absorbing.
func Chain() (*mdp.MDP, error) {
	states := []mdp.State{"S1", "S2", "S3"}
	actions := []mdp.Action{"a1", "a2", "a3"}

	transitions := mdp.TransitionModel{
		"S1": {
			"a1": {{Next: "S1", Probability: 0.001, Reward: 100}, {Next: "S3", Probability: 0.999, Reward: 100}},
			"a2": {{Next: "S1", Probability: 0.001, Reward: 90}, {Next: "S2", Probability: 0.999, Reward: 90}},
		},
		"S2": {
			"a3": {{Next: "S3", Probability: 0.999, Reward: 11}, {Next: "S1", Probability: 0.001, Reward: 11}},
		},
	}
	return mdp.New(states, actions, transitions, nil, 1.0)
}

// Builder constructs a named scenario.
type Builder func() (*mdp.MDP, error)

var registry = map[string]Builder{
	"threeway":              discounted,
	"threeway-undiscounted": undiscounted,
	"chain":                 Chain,
	"windy-gridworld":       windy,
}

func discounted() (*mdp.MDP, error)   { return Threeway(0.9) }
func undiscounted() (*mdp.MDP, error) { return Threeway(1.0) }
func windy() (*mdp.MDP, error)        { return DefaultWindyGridWorld().MDP() }

func Lookup(name string) (*mdp.MDP, error) {
	b, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q (have %v)", name, Names())
	}
	return b()
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
