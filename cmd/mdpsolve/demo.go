package main

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/CodeStranger-Fred/mdpsolve/mdp"
	"github.com/CodeStranger-Fred/mdpsolve/scenarios"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Solve the built-in scenarios",
	RunE:  runDemo,
}

// demoSweepCap bounds the undiscounted three-way solve, which diverges.
const demoSweepCap = 200

type demoRun struct {
	discount float64
	m        *mdp.MDP
	res      mdp.ConvergenceResult
	err      error
}

func runDemo(cmd *cobra.Command, args []string) error {
	p := newPrinter()

	// each run builds and owns its MDP and value function
	runs := []*demoRun{{discount: 1.0}, {discount: 0.9}}
	var g errgroup.Group
	for _, run := range runs {
		g.Go(func() error {
			m, err := scenarios.Threeway(run.discount)
			if err != nil {
				return err
			}
			run.m = m
			run.res, run.err = mdp.SolveConvergence(m, mdp.ConvergenceOptions{
				Epsilon:   cfg.Epsilon,
				MaxSweeps: demoSweepCap,
				Logger:    logger.With("discount", run.discount),
			})
			if run.err != nil && !errors.Is(run.err, mdp.ErrNotConverged) {
				return run.err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, run := range runs {
		p.Title(fmt.Sprintf("Three-way policy, discount factor = %g:", run.discount))
		if run.err != nil {
			p.Printf("  %v\n", run.err)
			p.PrintValues(run.m.States(), run.res.Values)
			continue
		}
		p.PrintPolicy(run.m.States(), run.res.Policy)
	}

	chain, err := scenarios.Chain()
	if err != nil {
		return err
	}
	h, err := mdp.SolveHorizon(chain, mdp.HorizonOptions{Gamma: 1, Iterations: cfg.Iterations, Logger: logger})
	if err != nil {
		return err
	}
	p.Title(fmt.Sprintf("Chain trajectory over %d iterations:", h.Trajectory.Iterations()))
	p.PrintTrajectory(chain, h.Trajectory)
	p.PrintPolicy(chain.States(), h.Policy)

	world := scenarios.DefaultWindyGridWorld()
	gw, err := world.MDP()
	if err != nil {
		return err
	}
	res, err := mdp.SolveConvergence(gw, mdp.ConvergenceOptions{Epsilon: cfg.Epsilon, MaxSweeps: cfg.MaxSweeps, Logger: logger})
	if err != nil {
		return err
	}
	p.Title(fmt.Sprintf("Windy gridworld after %d sweeps:", res.Sweeps))
	p.PrintGrid(world, res.Values, res.Policy)

	rng := rand.New(rand.NewPCG(7, 11))
	ep, err := mdp.Rollout(gw, res.Policy, world.State(world.Rows-1, 0), 50, rng)
	if err != nil {
		return err
	}
	p.Printf("Sampled episode from the bottom-left corner: %d steps, return %.0f\n", len(ep.History), ep.Return)
	return nil
}
