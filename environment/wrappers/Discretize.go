// Package wrappers provides wrappers for environments
package wrappers

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r1"

	"github.com/lakhotiaharshit/practical-rl-for-coders/environment"
	"github.com/lakhotiaharshit/practical-rl-for-coders/utils/floatutils"
)

// Binned is an observation produced by a Discretize wrapper. It
// identifies the bin that the wrapped environment's observation fell
// into along each dimension of state space.
type Binned struct {
	indices []int
	key     string
}

func newBinned(indices []int) Binned {
	strs := make([]string, len(indices))
	for i, index := range indices {
		strs[i] = strconv.Itoa(index)
	}

	return Binned{indices, strings.Join(strs, ":")}
}

// Hash returns a stable string key identifying the binned state. Two
// observations falling into the same bin along every dimension hash
// equal.
func (b Binned) Hash() string {
	return b.key
}

// Index returns the bin index along dimension i.
func (b Binned) Index(i int) int {
	return b.indices[i]
}

// Discretize wraps an environment with continuous state so that its
// observations are binned into a finite set of discrete states,
// allowing tabular agents to act in the environment. Each dimension
// of state space is divided into a fixed number of equally sized bins
// between a lower and upper bound, and an observation is replaced by
// the per-dimension indices of the bins it falls into. Observations
// outside the bounds are clipped to the nearest bin.
//
// The wrapped environment's observations must implement
// environment.Vectorer.
type Discretize struct {
	environment.Environment
	bins       []int
	bounds     []r1.Interval
	binLengths []float64
}

// NewDiscretize creates and returns a new Discretize, wrapping env.
// The bins argument determines how many bins each dimension of state
// space is divided into, and the bounds argument determines the
// interval over which the bins of each dimension are placed. Both
// arguments must have one entry per dimension of the wrapped
// environment's observation vectors.
func NewDiscretize(env environment.Environment, bins []int,
	bounds []r1.Interval) (*Discretize, error) {
	if len(bins) != len(bounds) {
		return nil, fmt.Errorf("discretize: have %v bin counts but %v "+
			"bounds", len(bins), len(bounds))
	}
	if len(bins) == 0 {
		return nil, fmt.Errorf("discretize: no dimensions to bin")
	}

	binLengths := make([]float64, len(bins))
	for i := range bins {
		if bins[i] <= 0 {
			return nil, fmt.Errorf("discretize: dimension %v needs a "+
				"positive number of bins but got %v", i, bins[i])
		}
		if bounds[i].Min >= bounds[i].Max {
			return nil, fmt.Errorf("discretize: dimension %v has empty "+
				"interval [%v, %v]", i, bounds[i].Min, bounds[i].Max)
		}
		binLengths[i] = (bounds[i].Max - bounds[i].Min) / float64(bins[i])
	}

	return &Discretize{env, bins, bounds, binLengths}, nil
}

// Reset resets the wrapped environment and returns the binned first
// observation of the new episode.
func (d *Discretize) Reset() (environment.Observation, error) {
	obs, err := d.Environment.Reset()
	if err != nil {
		return nil, err
	}

	return d.bin(obs)
}

// Step takes a single action in the wrapped environment and returns
// the binned next observation.
func (d *Discretize) Step(action int) (environment.Observation, float64,
	bool, error) {
	obs, reward, done, err := d.Environment.Step(action)
	if err != nil {
		return nil, 0, false, err
	}

	binned, err := d.bin(obs)
	if err != nil {
		return nil, 0, false, err
	}

	return binned, reward, done, nil
}

// Render renders the wrapped environment if it supports rendering.
func (d *Discretize) Render() {
	if renderer, ok := d.Environment.(environment.Renderer); ok {
		renderer.Render()
	}
}

// bin computes the binned form of an observation of the wrapped
// environment.
func (d *Discretize) bin(obs environment.Observation) (Binned, error) {
	vectorer, ok := obs.(environment.Vectorer)
	if !ok {
		return Binned{}, fmt.Errorf("bin: observation %T has no vector "+
			"form to discretize", obs)
	}

	vec := vectorer.Vector()
	if vec.Len() != len(d.bins) {
		return Binned{}, fmt.Errorf("bin: observation has %v dimensions "+
			"but wrapper was configured with %v", vec.Len(), len(d.bins))
	}

	indices := make([]int, len(d.bins))
	for i := range d.bins {
		value := floatutils.ClipInterval(vec.AtVec(i), d.bounds[i])
		index := int((value - d.bounds[i].Min) / d.binLengths[i])

		// A value at the upper bound lands one past the last bin
		if index > d.bins[i]-1 {
			index = d.bins[i] - 1
		}
		indices[i] = index
	}

	return newBinned(indices), nil
}
