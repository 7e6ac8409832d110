package mdp

import (
	"fmt"
	"math"
)

type State string

type Action string

type Reward float64

// Outcome is one possible result of taking an action: the next state, how
// likely it is, and the reward realised on that transition.
type Outcome struct {
	Next        State
	Probability Probability
	Reward      Reward
}

// TransitionModel maps (state, action) to its ordered outcomes. States
// missing from the model have no legal actions.
type TransitionModel map[State]map[Action][]Outcome

// RewardModel is the flat per-action reward shape. When supplied to New it
// is folded into every outcome of the matching (state, action).
type RewardModel map[State]map[Action]Reward

// MDP is an immutable finite Markov decision process. Build one with New.
type MDP struct {
	stateSpace  DiscreteStateSpace
	actionSpace DiscreteActionSpace
	discount    float64
	model       map[State]map[Action][]Outcome
	terminal    map[State]bool
}

// New validates the definition and returns an MDP that owns a private copy
// of every mapping passed in.
func New(states []State, actions []Action, transitions TransitionModel, rewards RewardModel, discount float64) (*MDP, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("%w: no states", ErrInvalidDefinition)
	}
	if len(actions) == 0 {
		return nil, fmt.Errorf("%w: no actions", ErrInvalidDefinition)
	}
	if err := checkDiscount(discount); err != nil {
		return nil, err
	}

	dss := DiscreteStateSpace{States: append([]State(nil), states...)}
	known := make(map[State]bool, len(states))
	for _, s := range states {
		if known[s] {
			return nil, fmt.Errorf("%w: duplicate state %q", ErrInvalidDefinition, s)
		}
		known[s] = true
	}

	das := DiscreteActionSpace{Action: append([]Action(nil), actions...), Mapping: map[State][]Action{}}
	knownAction := make(map[Action]bool, len(actions))
	for _, a := range actions {
		if knownAction[a] {
			return nil, fmt.Errorf("%w: duplicate action %q", ErrInvalidDefinition, a)
		}
		knownAction[a] = true
	}

	model := make(map[State]map[Action][]Outcome, len(transitions))
	for s0, byAction := range transitions {
		if !known[s0] {
			return nil, fmt.Errorf("%w: transition from undeclared state %q", ErrInvalidDefinition, s0)
		}
		model[s0] = make(map[Action][]Outcome, len(byAction))
		for a, outcomes := range byAction {
			if !knownAction[a] {
				return nil, fmt.Errorf("%w: undeclared action %q in state %q", ErrInvalidDefinition, a, s0)
			}
			pdf := DiscretePdf[State]{}
			for _, o := range outcomes {
				if !known[o.Next] {
					return nil, fmt.Errorf("%w: %s/%s leads to undeclared state %q", ErrInvalidDefinition, s0, a, o.Next)
				}
				if !isFinite(float64(o.Reward)) {
					return nil, fmt.Errorf("%w: %s/%s has non-finite reward %v", ErrInvalidDefinition, s0, a, o.Reward)
				}
				pdf.Add(o.Next, o.Probability)
			}
			if err := pdf.Check(); err != nil {
				return nil, fmt.Errorf("%s/%s: %w", s0, a, err)
			}

			copied := append([]Outcome(nil), outcomes...)
			if rewards != nil {
				r, ok := rewards[s0][a]
				if !ok {
					return nil, fmt.Errorf("%w: no reward for %s/%s", ErrMissingActionMapping, s0, a)
				}
				if !isFinite(float64(r)) {
					return nil, fmt.Errorf("%w: %s/%s has non-finite reward %v", ErrInvalidDefinition, s0, a, r)
				}
				for i := range copied {
					if copied[i].Reward != 0 && copied[i].Reward != r {
						return nil, fmt.Errorf("%w: %s/%s has outcome reward %v and flat reward %v", ErrInvalidDefinition, s0, a, copied[i].Reward, r)
					}
					copied[i].Reward = r
				}
			}
			model[s0][a] = copied
		}
	}

	for s0, byAction := range rewards {
		for a := range byAction {
			if _, ok := model[s0][a]; !ok {
				return nil, fmt.Errorf("%w: reward for %s/%s has no transitions", ErrInvalidDefinition, s0, a)
			}
		}
	}

	// legality follows the declared action order, not map order
	for _, s := range states {
		byAction, ok := model[s]
		if !ok {
			continue
		}
		legal := []Action{}
		for _, a := range actions {
			if _, ok := byAction[a]; ok {
				legal = append(legal, a)
			}
		}
		das.Mapping[s] = legal
	}

	m := &MDP{
		stateSpace:  dss,
		actionSpace: das,
		discount:    discount,
		model:       model,
		terminal:    map[State]bool{},
	}
	for _, s := range states {
		m.terminal[s] = m.isTrap(s)
	}
	return m, nil
}

// WithDiscount returns a copy of m with a different discount factor. The
// transition model is shared, which is safe because it is never mutated.
func (m *MDP) WithDiscount(discount float64) (*MDP, error) {
	if err := checkDiscount(discount); err != nil {
		return nil, err
	}
	c := *m
	c.discount = discount
	return &c, nil
}

func (m *MDP) Discount() float64 {
	return m.discount
}

// States returns a copy of the declared states in order.
func (m *MDP) States() []State {
	return append([]State(nil), m.stateSpace.States...)
}

func (m *MDP) Actions() []Action {
	return append([]Action(nil), m.actionSpace.Action...)
}

func (m *MDP) HasState(s State) bool {
	for _, st := range m.stateSpace.States {
		if st == s {
			return true
		}
	}
	return false
}

// LegalActions returns the actions available in s in canonical order.
func (m *MDP) LegalActions(s State) []Action {
	legal := m.actionSpace.Actions(s)
	if legal == nil {
		return nil
	}
	return append([]Action{}, legal...)
}

// Outcomes returns a copy of the outcomes of taking a in s.
func (m *MDP) Outcomes(s State, a Action) ([]Outcome, error) {
	outcomes, err := m.outcomes(s, a)
	if err != nil {
		return nil, err
	}
	return append([]Outcome(nil), outcomes...), nil
}

func (m *MDP) outcomes(s State, a Action) ([]Outcome, error) {
	byAction, ok := m.model[s]
	if !ok {
		return nil, fmt.Errorf("%w: state %q has no transitions", ErrMissingActionMapping, s)
	}
	outcomes, ok := byAction[a]
	if !ok {
		return nil, fmt.Errorf("%w: action %q not available in state %q", ErrMissingActionMapping, a, s)
	}
	return outcomes, nil
}

// IsAbsorbing reports whether s is omitted from the transition model.
func (m *MDP) IsAbsorbing(s State) bool {
	_, ok := m.model[s]
	return !ok
}

// IsTerminal reports whether nothing more can happen once s is reached: s is
// absorbing, or every legal action loops back to s with certainty and no
// reward.
func (m *MDP) IsTerminal(s State) bool {
	term, ok := m.terminal[s]
	return term && ok
}

func (m *MDP) isTrap(s State) bool {
	byAction, ok := m.model[s]
	if !ok {
		return true
	}
	if len(byAction) == 0 {
		return false
	}
	for _, outcomes := range byAction {
		for _, o := range outcomes {
			if o.Probability > 0 && (o.Next != s || o.Reward != 0) {
				return false
			}
		}
	}
	return true
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func checkDiscount(discount float64) error {
	if math.IsNaN(discount) || discount < 0 || discount > 1 {
		return fmt.Errorf("%w: discount factor %v outside [0,1]", ErrInvalidParameter, discount)
	}
	return nil
}
