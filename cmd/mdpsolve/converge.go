package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/CodeStranger-Fred/mdpsolve/mdp"
)

var convergeCmd = &cobra.Command{
	Use:   "converge",
	Short: "Run value iteration until the value function converges",
	RunE:  runConverge,
}

func runConverge(cmd *cobra.Command, args []string) error {
	m, err := load()
	if err != nil {
		return err
	}
	discipline, err := mdp.ParseUpdateDiscipline(cfg.Discipline)
	if err != nil {
		return err
	}

	logger.Info("solving", "states", len(m.States()), "discount", m.Discount(),
		"epsilon", cfg.Epsilon, "discipline", discipline.String())

	res, err := mdp.SolveConvergence(m, mdp.ConvergenceOptions{
		Epsilon:    cfg.Epsilon,
		Discipline: discipline,
		MaxSweeps:  cfg.MaxSweeps,
		Logger:     logger,
	})
	p := newPrinter()
	if errors.Is(err, mdp.ErrNotConverged) {
		p.Title("Values when giving up:")
		p.PrintValues(m.States(), res.Values)
	}
	if err != nil {
		return err
	}

	q, err := res.Values.ToStateActionEstimator(m)
	if err != nil {
		return err
	}
	p.Title(fmt.Sprintf("Converged after %d sweeps (delta %.6f)", res.Sweeps, res.Delta))
	p.PrintQTable(m, q)
	p.PrintPolicy(m.States(), res.Policy)

	checkPolicy(m, res)
	return nil
}

// checkPolicy evaluates the extracted policy on its own and logs how far its
// value is from the optimal value function.
func checkPolicy(m *mdp.MDP, res mdp.ConvergenceResult) {
	v, sweeps, err := mdp.EvaluatePolicy(m, res.Policy, cfg.Epsilon/10, cfg.MaxSweeps)
	if err != nil {
		logger.Warn("policy evaluation failed", "error", err)
		return
	}
	var gap float64
	for _, s := range m.States() {
		gap = math.Max(gap, math.Abs(v[s]-res.Values[s]))
	}
	logger.Debug("policy evaluation", "sweeps", sweeps, "max_gap", gap)
}
