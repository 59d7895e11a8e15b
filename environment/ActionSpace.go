package environment

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Discrete is a finite space of actions {0, 1, 2, ... N-1}. Random
// actions are sampled from a uniform categorical distribution over
// the space.
type Discrete struct {
	n    int
	seed uint64
	rand distuv.Categorical
}

// NewDiscrete returns a new Discrete action space with n actions,
// sampling random actions using the random number seed.
func NewDiscrete(n int, seed uint64) (*Discrete, error) {
	if n <= 0 {
		return nil, fmt.Errorf("newDiscrete: action space must have at "+
			"least one action, got %v", n)
	}

	source := rand.NewSource(seed)

	// Create the weights for the uniform categorical distribution
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0 / float64(len(weights))
	}

	return &Discrete{n, seed, distuv.NewCategorical(weights, source)}, nil
}

// N returns the number of actions in the space.
func (d *Discrete) N() int {
	return d.n
}

// Sample returns an action drawn uniformly at random from the space.
func (d *Discrete) Sample() int {
	return int(d.rand.Rand())
}

// Contains returns whether action is a legal action in the space.
func (d *Discrete) Contains(action int) bool {
	return action >= 0 && action < d.n
}
