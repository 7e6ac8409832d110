// Package render presents solver output on a terminal or as HTML. It only
// consumes the structures returned by package mdp.
package render

import (
	"fmt"
	"io"

	"github.com/CodeStranger-Fred/mdpsolve/mdp"
	"github.com/logrusorgru/aurora"
)

type Printer struct {
	out io.Writer
	au  aurora.Aurora
}

// NewPrinter writes to w, with ANSI colors only when color is set.
func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{out: w, au: aurora.NewAurora(color)}
}

func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Printer) Title(s string) {
	fmt.Fprintln(p.out, p.au.Bold(p.au.Cyan(s)))
}

func (p *Printer) PrintPolicy(states []mdp.State, policy mdp.Policy) {
	for _, s := range states {
		a, ok := policy[s]
		if !ok {
			fmt.Fprintf(p.out, "No action for state %s (absorbing)\n", p.au.Blue(s))
			continue
		}
		fmt.Fprintf(p.out, "Optimal action for state %s: %s\n", p.au.Blue(s), p.au.Green(a))
	}
}

func (p *Printer) PrintValues(states []mdp.State, v mdp.ValueFunction) {
	for _, s := range states {
		fmt.Fprintf(p.out, "%8s %s\n", s, p.au.Blue(format2x2(v[s])))
	}
}

// PrintQTable prints every legal Q-value, highlighting the greedy action.
func (p *Printer) PrintQTable(m *mdp.MDP, q mdp.DiscreteStateActionValueEstimator) {
	for _, s := range m.States() {
		best := q.Argmax(m, s)
		fmt.Fprintf(p.out, "%8s", s)
		for _, a := range m.LegalActions(s) {
			cell := fmt.Sprintf(" %s=%s", a, format2x2(q[s][a]))
			if best == a {
				fmt.Fprint(p.out, p.au.Green(cell))
			} else {
				fmt.Fprint(p.out, cell)
			}
		}
		fmt.Fprintln(p.out)
	}
}

// PrintTrajectory prints one row per iteration with every state's value,
// followed by the Q-value history of each (state, action).
func (p *Printer) PrintTrajectory(m *mdp.MDP, t mdp.Trajectory) {
	fmt.Fprintf(p.out, "%6s", "iter")
	for _, s := range m.States() {
		fmt.Fprintf(p.out, " %12s", s)
	}
	fmt.Fprintln(p.out)
	for i, v := range t.Values {
		fmt.Fprintf(p.out, "%6d", i)
		for _, s := range m.States() {
			fmt.Fprint(p.out, p.au.Blue(fmt.Sprintf(" %12.6f", v[s])))
		}
		fmt.Fprintln(p.out)
	}

	fmt.Fprintln(p.out)
	for _, s := range m.States() {
		for _, a := range m.LegalActions(s) {
			fmt.Fprintf(p.out, "Q(%s,%s):", s, a)
			for _, q := range t.Q[mdp.StateAction{State: s, Action: a}] {
				fmt.Fprintf(p.out, " %.6f", q)
			}
			fmt.Fprintln(p.out)
		}
	}
}

// Grid lays states out on a board.
type Grid interface {
	Dims() (rows, cols int)
	State(r, c int) mdp.State
}

func (p *Printer) PrintGrid(g Grid, v mdp.ValueFunction, policy mdp.Policy) {
	rows, cols := g.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			st := g.State(r, c)
			fmt.Fprint(p.out, p.au.Blue(format2x2(v[st])))
			fmt.Fprint(p.out, p.au.Green(fmt.Sprintf(" %-5s", policy[st])))
			fmt.Fprint(p.out, p.au.White("|"))
		}
		fmt.Fprintln(p.out)
	}
}

func format2x2(x float64) string {
	if x < 0 {
		return " -" + fmt.Sprintf("%05.2f", -x)
	}
	return fmt.Sprintf(" %05.2f", x)
}
