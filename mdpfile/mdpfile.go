// Package mdpfile reads and writes MDP definitions as YAML.
//
//	version: 1
//	discount: 0.9
//	states: [S0, S1]
//	actions: [A0, A1]
//	transitions:
//	  S0:
//	    A0:
//	      - {next: S1, p: 1.0, reward: -1}
//	rewards:          # optional, one reward per (state, action)
//	  S0: {A0: -1}
package mdpfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/CodeStranger-Fred/mdpsolve/mdp"
)

const Version = 1

type File struct {
	Version     int                                  `yaml:"version"`
	Discount    *float64                             `yaml:"discount,omitempty"`
	States      []string                             `yaml:"states"`
	Actions     []string                             `yaml:"actions"`
	Transitions map[string]map[string][]OutcomeEntry `yaml:"transitions"`
	Rewards     map[string]map[string]float64        `yaml:"rewards,omitempty"`
}

type OutcomeEntry struct {
	Next        string  `yaml:"next"`
	Probability float64 `yaml:"p"`
	Reward      float64 `yaml:"reward,omitempty"`
}

func Load(path string) (*mdp.MDP, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func Parse(b []byte) (*mdp.MDP, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	return f.MDP()
}

// MDP converts the file into a validated MDP.
func (f File) MDP() (*mdp.MDP, error) {
	if f.Version != Version {
		return nil, fmt.Errorf("unsupported mdp file version: %d", f.Version)
	}

	discount := 1.0
	if f.Discount != nil {
		discount = *f.Discount
	}

	states := make([]mdp.State, len(f.States))
	for i, s := range f.States {
		states[i] = mdp.State(s)
	}
	actions := make([]mdp.Action, len(f.Actions))
	for i, a := range f.Actions {
		actions[i] = mdp.Action(a)
	}

	transitions := mdp.TransitionModel{}
	for s, byAction := range f.Transitions {
		transitions[mdp.State(s)] = map[mdp.Action][]mdp.Outcome{}
		for a, entries := range byAction {
			outcomes := make([]mdp.Outcome, len(entries))
			for i, e := range entries {
				outcomes[i] = mdp.Outcome{
					Next:        mdp.State(e.Next),
					Probability: mdp.Probability(e.Probability),
					Reward:      mdp.Reward(e.Reward),
				}
			}
			transitions[mdp.State(s)][mdp.Action(a)] = outcomes
		}
	}

	var rewards mdp.RewardModel
	if f.Rewards != nil {
		rewards = mdp.RewardModel{}
		for s, byAction := range f.Rewards {
			rewards[mdp.State(s)] = map[mdp.Action]mdp.Reward{}
			for a, r := range byAction {
				rewards[mdp.State(s)][mdp.Action(a)] = mdp.Reward(r)
			}
		}
	}

	return mdp.New(states, actions, transitions, rewards, discount)
}

// FromMDP describes m with rewards attached to every outcome.
func FromMDP(m *mdp.MDP) (File, error) {
	discount := m.Discount()
	f := File{
		Version:     Version,
		Discount:    &discount,
		Transitions: map[string]map[string][]OutcomeEntry{},
	}
	for _, s := range m.States() {
		f.States = append(f.States, string(s))
	}
	for _, a := range m.Actions() {
		f.Actions = append(f.Actions, string(a))
	}

	for _, s := range m.States() {
		if m.IsAbsorbing(s) {
			continue
		}
		f.Transitions[string(s)] = map[string][]OutcomeEntry{}
		for _, a := range m.LegalActions(s) {
			outcomes, err := m.Outcomes(s, a)
			if err != nil {
				return File{}, err
			}
			entries := make([]OutcomeEntry, len(outcomes))
			for i, o := range outcomes {
				entries[i] = OutcomeEntry{
					Next:        string(o.Next),
					Probability: float64(o.Probability),
					Reward:      float64(o.Reward),
				}
			}
			f.Transitions[string(s)][string(a)] = entries
		}
	}
	return f, nil
}

func Marshal(m *mdp.MDP) ([]byte, error) {
	f, err := FromMDP(m)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(f)
}
