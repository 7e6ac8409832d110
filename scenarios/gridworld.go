package scenarios

import (
	"fmt"
	"strconv"

	"github.com/CodeStranger-Fred/mdpsolve/mdp"
)

// StochasticWindyGridWorld is a Rows x Cols grid. After each move the column
// the agent lands in pushes it up by 0, BaseWind or BaseWind+1 cells with
// probability StochasticWind0, StochasticWind1 or StochasticWind2. The
// top-left and bottom-right corners are terminal. Every move costs 1.
type StochasticWindyGridWorld struct {
	Rows            int
	Cols            int
	BaseWind        []int
	StochasticWind0 mdp.Probability
	StochasticWind1 mdp.Probability
	StochasticWind2 mdp.Probability
}

func DefaultWindyGridWorld() StochasticWindyGridWorld {
	return StochasticWindyGridWorld{
		Rows:            4,
		Cols:            4,
		BaseWind:        []int{1, 2, 2, 1},
		StochasticWind0: 0.1,
		StochasticWind1: 0.8,
		StochasticWind2: 0.1,
	}
}

var moves = []mdp.Action{"left", "right", "up", "down"}

func (w StochasticWindyGridWorld) Check() error {
	if w.Rows <= 0 || w.Cols <= 0 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", w.Rows, w.Cols)
	}
	if len(w.BaseWind) != w.Cols {
		return fmt.Errorf("need one wind value per column: %d columns, %d winds", w.Cols, len(w.BaseWind))
	}
	if !mdp.FloatEq(float64(w.StochasticWind0+w.StochasticWind1+w.StochasticWind2), 1) {
		return fmt.Errorf("wind probabilities must sum to 1")
	}
	return nil
}

func (w StochasticWindyGridWorld) MDP() (*mdp.MDP, error) {
	if err := w.Check(); err != nil {
		return nil, err
	}

	var states []mdp.State
	for s := 0; s < w.Rows*w.Cols; s++ {
		states = append(states, mdp.State(strconv.Itoa(s)))
	}

	transitions := mdp.TransitionModel{}
	for r := 0; r < w.Rows; r++ {
		for c := 0; c < w.Cols; c++ {
			s0 := w.State(r, c)
			transitions[s0] = map[mdp.Action][]mdp.Outcome{}
			for _, a := range moves {
				if w.IsTerminal(r, c) {
					transitions[s0][a] = []mdp.Outcome{{Next: s0, Probability: 1}}
					continue
				}
				transitions[s0][a] = w.outcomes(r, c, a)
			}
		}
	}
	return mdp.New(states, moves, transitions, nil, 1.0)
}

func (w StochasticWindyGridWorld) IsTerminal(r, c int) bool {
	return (r == 0 && c == 0) || (r == w.Rows-1 && c == w.Cols-1)
}

func (w StochasticWindyGridWorld) outcomes(r0, c0 int, action mdp.Action) []mdp.Outcome {
	r1, c1 := w.shift(r0, c0, action)
	wind := w.BaseWind[c1]

	pdf := mdp.DiscretePdf[mdp.State]{}
	pdf.Add(w.State(r1, c1), w.StochasticWind0)
	pdf.Add(w.State(w.ClipRow(r1-wind), c1), w.StochasticWind1)
	pdf.Add(w.State(w.ClipRow(r1-wind-1), c1), w.StochasticWind2)

	var out []mdp.Outcome
	for _, s1 := range pdf.Categories() {
		if p := pdf.Map[s1]; p > 0 {
			out = append(out, mdp.Outcome{Next: s1, Probability: p, Reward: -1})
		}
	}
	return out
}

func (w StochasticWindyGridWorld) State(r int, c int) mdp.State {
	return mdp.State(strconv.Itoa(r*w.Cols + c))
}

func (w StochasticWindyGridWorld) shift(r0, c0 int, action mdp.Action) (int, int) {
	r1, c1 := r0, c0
	switch action {
	case "up":
		r1--
	case "down":
		r1++
	case "right":
		c1++
	case "left":
		c1--
	}
	return w.ClipRow(r1), w.ClipCol(c1)
}

func (w StochasticWindyGridWorld) ClipRow(r1 int) int {
	return min(max(r1, 0), w.Rows-1)
}

func (w StochasticWindyGridWorld) ClipCol(c1 int) int {
	return min(max(c1, 0), w.Cols-1)
}

func (w StochasticWindyGridWorld) Dims() (int, int) {
	return w.Rows, w.Cols
}
