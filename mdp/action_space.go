package mdp

type DiscreteStateSpace struct {
	States []State
}

// DiscreteActionSpace keeps the declared action order and the legal subset
// for every state that appears in the transition model.
type DiscreteActionSpace struct {
	Action  []Action
	Mapping map[State][]Action
}

func (das DiscreteActionSpace) Actions(s State) []Action {
	return das.Mapping[s]
}
