// Package gym provides access to OpenAI's Gym environments.
//
// This is made possible through the Go bindings for OpenAI Gym,
// found at https://github.com/samuelfneumann/GoGym. Only environments
// with discrete action spaces can be used, since tabular agents
// enumerate their actions.
package gym

import (
	"fmt"
	"strings"

	"github.com/lakhotiaharshit/practical-rl-for-coders/environment"
	"github.com/samuelfneumann/gogym"
	"gonum.org/v1/gonum/mat"
)

// Observation wraps an observation vector returned by a Gym
// environment.
type Observation struct {
	vec *mat.VecDense
}

// Hash returns a stable key identifying the observation.
func (o Observation) Hash() string {
	var b strings.Builder
	for i := 0; i < o.vec.Len(); i++ {
		if i > 0 {
			b.WriteByte(':')
		}
		fmt.Fprintf(&b, "%g", o.vec.AtVec(i))
	}
	return b.String()
}

// Vector returns the observation's underlying feature vector.
func (o Observation) Vector() mat.Vector {
	return o.vec
}

// Gym implements access to an OpenAI Gym environment using GoGym.
type Gym struct {
	env   gogym.Environment
	space *environment.Discrete
}

// New returns a new Gym environment with the given name, which must
// be a legal name from the OpenAI Gym suite naming an environment
// with discrete actions.
func New(name string, seed uint64) (*Gym, error) {
	env, err := gogym.Make(name)
	if err != nil {
		return nil, fmt.Errorf("gym: could not create environment: %v",
			err)
	}
	env.Seed(int(seed))

	actionSpace, ok := env.ActionSpace().(*gogym.DiscreteSpace)
	if !ok {
		env.Close()
		return nil, fmt.Errorf("gym: %v does not have a discrete "+
			"action space", name)
	}

	// Discrete spaces enumerate actions (0, 1, ... high), with high
	// being the last legal action
	actions := int(actionSpace.High()[0].AtVec(0)) + 1
	space, err := environment.NewDiscrete(actions, seed)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("gym: %v", err)
	}

	return &Gym{env: env, space: space}, nil
}

// Reset resets the environment to some starting state.
func (g *Gym) Reset() (environment.Observation, error) {
	obs, err := g.env.Reset()
	if err != nil {
		return nil, fmt.Errorf("reset: could not reset environment: %v",
			err)
	}
	return Observation{obs}, nil
}

// Step takes a single environmental step.
func (g *Gym) Step(action int) (environment.Observation, float64, bool,
	error) {
	if !g.space.Contains(action) {
		return nil, 0, false, fmt.Errorf("step: illegal action %v",
			action)
	}

	a := mat.NewVecDense(1, []float64{float64(action)})
	obs, reward, done, err := g.env.Step(a)
	if err != nil {
		return nil, 0, false, fmt.Errorf("step: could not step "+
			"environment: %v", err)
	}

	return Observation{obs}, reward, done, nil
}

// ActionSpace returns the space of legal actions in the environment.
func (g *Gym) ActionSpace() *environment.Discrete {
	return g.space
}

// Close performs resource cleanup after the environment is no longer
// needed. Once every Gym environment has been closed, callers should
// also call gogym.Close to tear down the Python interpreter.
func (g *Gym) Close() error {
	g.env.Close()
	return nil
}
