package mdp

import (
	"fmt"
	"math"
	"math/rand/v2"
)

type Probability float64

// ProbabilityTolerance bounds how far a distribution may drift from 1.
const ProbabilityTolerance = 1e-6

// DiscretePdf is an outcome distribution that keeps insertion order so that
// sampling with a seeded source is reproducible.
type DiscretePdf[Category comparable] struct {
	order []Category
	Map   map[Category]Probability
}

func (p *DiscretePdf[Category]) Add(outcome Category, prob Probability) {
	if p.Map == nil {
		p.Map = make(map[Category]Probability)
	}
	if _, ok := p.Map[outcome]; !ok {
		p.order = append(p.order, outcome)
	}
	p.Map[outcome] += prob
}

// Categories returns the outcomes in the order they were first added.
func (p DiscretePdf[Category]) Categories() []Category {
	return p.order
}

func (p DiscretePdf[Category]) Check() error {
	sum := 0.0
	for _, c := range p.order {
		prob := float64(p.Map[c])
		if math.IsNaN(prob) || prob < 0 {
			return fmt.Errorf("%w: probability %v for %v", ErrInvalidDefinition, prob, c)
		}
		sum += prob
	}
	if !FloatEq(sum, 1) {
		return fmt.Errorf("%w: probabilities sum to %v", ErrInvalidDefinition, sum)
	}
	return nil
}

func (p DiscretePdf[Category]) Choose(rng *rand.Rand) Category {
	v := rng.Float64()
	cumulative := 0.0
	var last Category
	for _, c := range p.order {
		cumulative += float64(p.Map[c])
		if cumulative >= v {
			return c
		}
		last = c
	}
	return last
}

func FloatEq(a, b float64) bool {
	return math.Abs(a-b) <= ProbabilityTolerance
}
