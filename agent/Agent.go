// Package agent defines an agent interface
package agent

import (
	"github.com/lakhotiaharshit/practical-rl-for-coders/environment"
	"github.com/lakhotiaharshit/practical-rl-for-coders/table"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which updates action value
// estimates from experienced transitions, and a Policy, which chooses
// actions in each state. The two communicate through a shared action
// value table: the Learner writes updated estimates to the table, and
// the Policy reads the table when choosing actions, so any change the
// Learner makes is reflected in the actions the Policy chooses.
type Agent interface {
	Learner
	Policy

	// Epsilon returns the exploration rate the agent should use after
	// having taken some number of observations.
	Epsilon(observations int) float64

	// LearningRate returns the step size the agent should use after
	// having taken some number of observations.
	LearningRate(observations int) float64

	// TotalObservations returns the number of observations the agent
	// anneals its exploration rate and step size over, which is also
	// the number of observations the agent should be trained for.
	TotalObservations() int
}

// Learner implements a learning algorithm that defines how action
// value estimates are updated.
type Learner interface {
	// Update performs a single update to the action value table from
	// one experienced transition. The next observation and next
	// action are only read when the transition is not terminal.
	Update(t table.Table, learningRate float64,
		obs environment.Observation, action int, reward float64,
		done bool, nextObs environment.Observation, nextAction int) error
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. The exploration rate
// is passed on each selection so that a caller annealing exploration
// over time controls exactly which rate each selection uses.
type Policy interface {
	// SelectAction selects an action for the state described by obs,
	// reading action value estimates from t and sampling random
	// actions from the environment's action space.
	SelectAction(env environment.Environment, t table.Table,
		obs environment.Observation, epsilon float64) (int, error)
}
