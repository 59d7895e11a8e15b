// Package environment provides sequential decision making problems
// for reinforcement learning agents to interact with, as well as the
// interfaces that all such problems satisfy.
//
// Environments are episodic. An episode begins with a call to Reset,
// which returns the first observation of the episode. The episode
// then proceeds one action at a time through calls to Step until Step
// reports that the episode has ended, after which Reset must be
// called again before taking further actions.
package environment

import (
	"image"

	"gonum.org/v1/gonum/mat"
)

// Observation describes the state of an environment at a single
// point in time. Observations are used as lookup keys into action
// value tables, so observations of the same underlying state must
// hash equal, and observations of different states must hash
// differently.
type Observation interface {
	// Hash returns a stable string key identifying the observed
	// state.
	Hash() string
}

// Vectorer is implemented by observations which can expose the
// feature vector underlying the observed state. Wrappers such as
// Discretize use the vector form to derive tabular observations from
// continuous state.
type Vectorer interface {
	Vector() mat.Vector
}

// Environment is a sequential decision making problem with a finite
// set of discrete actions.
type Environment interface {
	// Reset starts a new episode and returns its first observation.
	Reset() (Observation, error)

	// Step takes a single action in the environment, returning the
	// next observation, the reward for the transition, and whether
	// the episode has ended. Once an episode has ended, Step may not
	// be called again until the next Reset.
	Step(action int) (Observation, float64, bool, error)

	// ActionSpace returns the space of legal actions.
	ActionSpace() *Discrete

	// Close releases any resources held by the environment. No other
	// methods may be called after Close.
	Close() error
}

// Renderer is implemented by environments which can draw their
// current state for a human to watch, for example to a terminal.
type Renderer interface {
	Render()
}

// Framer is implemented by environments which can draw their current
// state as an image, for example to record episode videos.
type Framer interface {
	Frame() image.Image
}

// Unwrapper is implemented by environment wrappers which record from
// or transform an underlying environment. Unwrap returns the wrapped
// environment so that its owner can release it separately from the
// wrapper; closing a recording wrapper flushes its artifacts without
// closing the environment it wraps.
type Unwrapper interface {
	Unwrap() Environment
}
