package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CodeStranger-Fred/mdpsolve/mdp"
	"github.com/CodeStranger-Fred/mdpsolve/render"
)

var horizonCmd = &cobra.Command{
	Use:   "horizon",
	Short: "Run a fixed number of synchronous value iterations and show the trajectory",
	RunE:  runHorizon,
}

func runHorizon(cmd *cobra.Command, args []string) error {
	m, err := load()
	if err != nil {
		return err
	}
	gamma := cfg.Gamma
	if gamma < 0 {
		gamma = m.Discount()
	}

	res, err := mdp.SolveHorizon(m, mdp.HorizonOptions{
		Gamma:      gamma,
		Iterations: cfg.Iterations,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	p := newPrinter()
	p.Title(fmt.Sprintf("Value trajectory (gamma %g, %d iterations)", gamma, res.Trajectory.Iterations()))
	p.PrintTrajectory(m, res.Trajectory)
	p.PrintPolicy(m.States(), res.Policy)

	if cfg.Chart != "" {
		return writeChart(cfg.Chart, m, res.Trajectory)
	}
	return nil
}

func writeChart(path string, m *mdp.MDP, t mdp.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := render.PlotTrajectory(f, "value trajectory", m, t); err != nil {
		return err
	}
	logger.Info("wrote chart", "path", path)
	return f.Close()
}
