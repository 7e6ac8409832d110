package mdp

// Policy assigns exactly one action to each state.
type Policy map[State]Action

// ExtractPolicy returns the greedy policy for v. Ties go to the action
// declared first. v is not modified, so repeated calls agree.
func ExtractPolicy(m *MDP, v ValueFunction) (Policy, error) {
	return extractPolicy(m, v, m.discount)
}

func extractPolicy(m *MDP, v ValueFunction, gamma float64) (Policy, error) {
	policy := make(Policy, len(m.stateSpace.States))
	for _, s := range m.stateSpace.States {
		a, _, err := m.backup(s, v, gamma, nil)
		if err != nil {
			return nil, err
		}
		policy[s] = a
	}
	return policy, nil
}

// DiscreteStateActionValueEstimator is a table of Q-values per state.
type DiscreteStateActionValueEstimator map[State]map[Action]float64

// ToStateActionEstimator expands v into the full Q table of m.
func (v ValueFunction) ToStateActionEstimator(m *MDP) (DiscreteStateActionValueEstimator, error) {
	estimator := DiscreteStateActionValueEstimator{}
	for _, s0 := range m.stateSpace.States {
		estimator[s0] = make(map[Action]float64)
		for _, a := range m.actionSpace.Actions(s0) {
			q, err := m.QValue(s0, a, v)
			if err != nil {
				return nil, err
			}
			estimator[s0][a] = q
		}
	}
	return estimator, nil
}

// Argmax picks the best legal action for s in m, giving ties to the action
// declared first.
func (q DiscreteStateActionValueEstimator) Argmax(m *MDP, s State) Action {
	bestA := Action("")
	for i, a := range m.actionSpace.Actions(s) {
		if i == 0 || q[s][a] > q[s][bestA] {
			bestA = a
		}
	}
	return bestA
}
