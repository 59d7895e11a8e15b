// Package sarsa implements the tabular SARSA(0) algorithm
package sarsa

import (
	"fmt"

	"github.com/lakhotiaharshit/practical-rl-for-coders/agent"
	"github.com/lakhotiaharshit/practical-rl-for-coders/agent/tabular/policy"
	"github.com/lakhotiaharshit/practical-rl-for-coders/environment"
	"github.com/lakhotiaharshit/practical-rl-for-coders/table"
)

// Config represents a configuration for the SARSA agent
type Config struct {
	Gamma float64 // discount factor

	// The exploration rate anneals linearly from StartEpsilon to
	// EndEpsilon over TotalObservations observations
	StartEpsilon float64
	EndEpsilon   float64

	// The step size anneals linearly from StartLearningRate to
	// EndLearningRate over TotalObservations observations
	StartLearningRate float64
	EndLearningRate   float64

	// TotalObservations is the annealing horizon for the exploration
	// rate and step size, and the number of observations to train
	// the agent for
	TotalObservations int
}

// Validate returns an error describing why the configuration cannot
// be used, or nil if the configuration is valid.
func (c Config) Validate() error {
	if c.Gamma < 0 || c.Gamma > 1 {
		return fmt.Errorf("sarsa: discount must be in [0, 1], got %v",
			c.Gamma)
	}
	if c.StartEpsilon < 0 || c.StartEpsilon > 1 {
		return fmt.Errorf("sarsa: starting epsilon must be in [0, 1], "+
			"got %v", c.StartEpsilon)
	}
	if c.EndEpsilon < 0 || c.EndEpsilon > 1 {
		return fmt.Errorf("sarsa: final epsilon must be in [0, 1], "+
			"got %v", c.EndEpsilon)
	}
	if c.StartLearningRate <= 0 {
		return fmt.Errorf("sarsa: starting learning rate must be "+
			"positive, got %v", c.StartLearningRate)
	}
	if c.EndLearningRate < 0 {
		return fmt.Errorf("sarsa: final learning rate cannot be "+
			"negative, got %v", c.EndLearningRate)
	}
	if c.TotalObservations <= 0 {
		return fmt.Errorf("sarsa: total observations must be positive, "+
			"got %v", c.TotalObservations)
	}
	return nil
}

// SARSA implements the on-policy tabular SARSA(0) algorithm. Actions
// selected by this algorithm will always be enumerated as
// (0, 1, 2, ... N-1) where N is the size of the environment's action
// space.
//
// The agent anneals both its exploration rate and its step size
// linearly over a fixed horizon of observations, so early training
// explores and learns quickly while late training settles toward the
// learned policy.
type SARSA struct {
	agent.Learner
	behaviour    *policy.EGreedy
	epsilon      LinearSchedule
	learningRate LinearSchedule
	observations int
	seed         uint64
}

// New creates a new SARSA struct with the given configuration.
func New(config Config, seed uint64) (*SARSA, error) {
	if err := config.Validate(); err != nil {
		return &SARSA{}, err
	}

	// Get the behaviour policy
	behaviour, err := policy.NewEGreedy(config.StartEpsilon, seed)
	if err != nil {
		return &SARSA{}, fmt.Errorf("sarsa: invalid behaviour "+
			"policy: %v", err)
	}

	learner, err := NewLearner(config.Gamma)
	if err != nil {
		return &SARSA{}, fmt.Errorf("sarsa: cannot create learner: %v",
			err)
	}

	epsilon := NewLinearSchedule(config.StartEpsilon, config.EndEpsilon,
		config.TotalObservations)
	learningRate := NewLinearSchedule(config.StartLearningRate,
		config.EndLearningRate, config.TotalObservations)

	return &SARSA{learner, behaviour, epsilon, learningRate,
		config.TotalObservations, seed}, nil
}

// SelectAction selects an action for the state described by obs from
// an ε-greedy policy over the agent's action value estimates, using
// the exploration rate epsilon for this selection only.
func (s *SARSA) SelectAction(env environment.Environment, t table.Table,
	obs environment.Observation, epsilon float64) (int, error) {
	s.behaviour.SetEpsilon(epsilon)
	return s.behaviour.SelectAction(env, t, obs)
}

// Epsilon returns the annealed exploration rate after observations
// observations have been taken.
func (s *SARSA) Epsilon(observations int) float64 {
	return s.epsilon.Value(observations)
}

// LearningRate returns the annealed step size after observations
// observations have been taken.
func (s *SARSA) LearningRate(observations int) float64 {
	return s.learningRate.Value(observations)
}

// TotalObservations returns the number of observations the agent
// anneals its exploration rate and step size over.
func (s *SARSA) TotalObservations() int {
	return s.observations
}
