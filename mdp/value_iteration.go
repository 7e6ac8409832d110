package mdp

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
)

// UpdateDiscipline selects how a sweep reads the value function it is
// updating.
type UpdateDiscipline int

const (
	// InPlace overwrites each state's value as soon as it is computed, so
	// later states in the same sweep see the new values.
	InPlace UpdateDiscipline = iota
	// Synchronous computes every state from the previous sweep's snapshot.
	Synchronous
)

func (d UpdateDiscipline) String() string {
	switch d {
	case InPlace:
		return "in-place"
	case Synchronous:
		return "synchronous"
	default:
		return fmt.Sprintf("UpdateDiscipline(%d)", int(d))
	}
}

func ParseUpdateDiscipline(s string) (UpdateDiscipline, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "in-place", "inplace":
		return InPlace, nil
	case "synchronous", "sync":
		return Synchronous, nil
	default:
		return 0, fmt.Errorf("%w: unknown update discipline %q", ErrInvalidParameter, s)
	}
}

// sweeper runs one full sweep and returns the resulting values and the
// largest absolute change of any state.
type sweeper func(m *MDP, v ValueFunction, gamma float64) (ValueFunction, float64, error)

var sweepers = map[UpdateDiscipline]sweeper{
	InPlace:     inPlaceSweep,
	Synchronous: synchronousSweep,
}

func inPlaceSweep(m *MDP, v ValueFunction, gamma float64) (ValueFunction, float64, error) {
	var delta float64
	for _, s := range m.stateSpace.States {
		v0 := v[s]
		_, v1, err := m.backup(s, v, gamma, nil)
		if err != nil {
			return v, delta, err
		}
		v[s] = v1
		delta = math.Max(math.Abs(v0-v1), delta)
	}
	return v, delta, nil
}

func synchronousSweep(m *MDP, v ValueFunction, gamma float64) (ValueFunction, float64, error) {
	var delta float64
	next := make(ValueFunction, len(v))
	for _, s := range m.stateSpace.States {
		_, v1, err := m.backup(s, v, gamma, nil)
		if err != nil {
			return v, delta, err
		}
		next[s] = v1
		delta = math.Max(math.Abs(v[s]-v1), delta)
	}
	return next, delta, nil
}

type ConvergenceOptions struct {
	// Epsilon is the stopping threshold on the per-sweep delta. Must be > 0.
	Epsilon float64
	// Discipline defaults to InPlace.
	Discipline UpdateDiscipline
	// MaxSweeps caps the number of sweeps. Zero means no cap.
	MaxSweeps int
	Logger    *slog.Logger
}

type ConvergenceResult struct {
	Values ValueFunction
	Policy Policy
	Sweeps int
	Delta  float64
}

// SolveConvergence runs value iteration until a sweep changes no state by
// epsilon or more, then extracts the greedy policy. When MaxSweeps is hit
// first it returns ErrNotConverged together with the values reached so far.
func SolveConvergence(m *MDP, opts ConvergenceOptions) (ConvergenceResult, error) {
	if math.IsNaN(opts.Epsilon) || opts.Epsilon <= 0 {
		return ConvergenceResult{}, fmt.Errorf("%w: epsilon must be > 0, got %v", ErrInvalidParameter, opts.Epsilon)
	}
	if opts.MaxSweeps < 0 {
		return ConvergenceResult{}, fmt.Errorf("%w: max sweeps must be >= 0, got %d", ErrInvalidParameter, opts.MaxSweeps)
	}
	sweep, ok := sweepers[opts.Discipline]
	if !ok {
		return ConvergenceResult{}, fmt.Errorf("%w: unknown update discipline %v", ErrInvalidParameter, opts.Discipline)
	}
	for _, s := range m.stateSpace.States {
		if len(m.actionSpace.Actions(s)) == 0 {
			return ConvergenceResult{}, fmt.Errorf("%w: %q", ErrNoLegalActions, s)
		}
	}
	logger := loggerOrDiscard(opts.Logger)

	res := ConvergenceResult{Values: NewValueFunction(m.stateSpace.States)}
	for {
		if opts.MaxSweeps > 0 && res.Sweeps >= opts.MaxSweeps {
			return res, fmt.Errorf("%w after %d sweeps (delta %g, epsilon %g)", ErrNotConverged, res.Sweeps, res.Delta, opts.Epsilon)
		}

		var err error
		res.Values, res.Delta, err = sweep(m, res.Values, m.discount)
		if err != nil {
			return ConvergenceResult{}, err
		}
		res.Sweeps++
		logger.Debug("sweep", "n", res.Sweeps, "delta", res.Delta, "discipline", opts.Discipline.String())

		if res.Delta < opts.Epsilon {
			break
		}
	}

	policy, err := ExtractPolicy(m, res.Values)
	if err != nil {
		return ConvergenceResult{}, err
	}
	res.Policy = policy
	logger.Info("value iteration converged", "sweeps", res.Sweeps, "delta", res.Delta, "discount", m.discount)
	return res, nil
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
