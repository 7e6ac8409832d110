package mdp

import "errors"

var (
	ErrInvalidDefinition    = errors.New("invalid mdp definition")
	ErrMissingActionMapping = errors.New("missing action/state mapping")
	ErrNoLegalActions       = errors.New("state has no legal actions")
	ErrInvalidParameter     = errors.New("invalid parameter")
	ErrNotConverged         = errors.New("value iteration did not converge")
)
