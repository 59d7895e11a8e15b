// Package policy implements policies over tabular action value
// estimates
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/lakhotiaharshit/practical-rl-for-coders/environment"
	"github.com/lakhotiaharshit/practical-rl-for-coders/table"
	"github.com/lakhotiaharshit/practical-rl-for-coders/utils/floatutils"
	"gonum.org/v1/gonum/stat/distuv"
)

// EGreedy implements an ε-greedy policy over the action value
// estimates stored in a table.
//
// With probability ε the policy selects an action uniformly at random
// from the environment's action space. Otherwise, the policy selects
// the action with the highest estimated value for the current state,
// breaking ties uniformly at random. State-action pairs the table
// holds no estimate for are read as having value 0, so the policy
// never fails on states it has not seen before.
type EGreedy struct {
	epsilon float64
	seed    rand.Source // Seed for random number generation
	explore distuv.Uniform
}

// NewEGreedy constructs a new EGreedy policy, where e=epsilon is the
// probability with which a random action is selected.
func NewEGreedy(e float64, seed uint64) (*EGreedy, error) {
	if e < 0 || e > 1 {
		return nil, fmt.Errorf("newEGreedy: epsilon must be in [0, 1], "+
			"got %v", e)
	}

	source := rand.NewSource(seed)
	explore := distuv.Uniform{Min: 0.0, Max: 1.0, Src: source}

	return &EGreedy{e, source, explore}, nil
}

// NewGreedy constructs a purely greedy policy, equivalent to an
// EGreedy policy with ε = 0. Greedy policies are used to evaluate
// what an agent has learned without exploration mixed in.
func NewGreedy(seed uint64) *EGreedy {
	source := rand.NewSource(seed)
	explore := distuv.Uniform{Min: 0.0, Max: 1.0, Src: source}

	return &EGreedy{0.0, source, explore}
}

// Epsilon returns the probability with which the policy selects a
// random action.
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// SetEpsilon sets the probability with which the policy selects a
// random action. Agents which anneal exploration over time adjust ε
// through SetEpsilon before selecting each action.
func (p *EGreedy) SetEpsilon(e float64) {
	p.epsilon = e
}

// SelectAction selects an action from the ε-greedy policy for the
// state described by obs, reading action value estimates from t.
func (p *EGreedy) SelectAction(env environment.Environment, t table.Table,
	obs environment.Observation) (int, error) {
	space := env.ActionSpace()

	// Explore with probability ε
	if p.explore.Rand() < p.epsilon {
		return space.Sample(), nil
	}

	// Calculate all action values for the state
	actionValues := make([]float64, space.N())
	for action := range actionValues {
		value, err := table.ValueOrZero(t, obs, action)
		if err != nil {
			return 0, fmt.Errorf("selectAction: could not get action "+
				"value: %v", err)
		}
		actionValues[action] = value
	}

	// Find the greedy action
	_, greedyActions := floatutils.MaxSlice(actionValues)
	if len(greedyActions) == 1 {
		return greedyActions[0], nil
	}

	// Construct a uniform categorical distribution over the tied
	// actions and sample one of them
	weights := make([]float64, len(greedyActions))
	for i := range weights {
		weights[i] = 1.0 / float64(len(weights))
	}
	dist := distuv.NewCategorical(weights, p.seed)

	return greedyActions[int(dist.Rand())], nil
}
