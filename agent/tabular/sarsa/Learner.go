package sarsa

import (
	"fmt"

	"github.com/lakhotiaharshit/practical-rl-for-coders/environment"
	"github.com/lakhotiaharshit/practical-rl-for-coders/table"
)

// Learner implements the SARSA(0) update rule over an action value
// table.
//
// For a transition (s, a, r, s', a') the learner moves the stored
// estimate for (s, a) toward the one step target r + γ·Q(s', a'),
// blending the target with the previous estimate using the step size
// α:
//
//	Q(s, a) ← α·(r + γ·Q(s', a')) + (1 − α)·Q(s, a)
//
// On terminal transitions the target is the reward alone, since no
// further value can follow the end of an episode. Estimates the table
// holds no value for are read as 0 on both sides of the update.
type Learner struct {
	gamma float64
}

// NewLearner returns a new Learner discounting future value by gamma.
func NewLearner(gamma float64) (*Learner, error) {
	if gamma < 0 || gamma > 1 {
		return nil, fmt.Errorf("newLearner: discount must be in "+
			"[0, 1], got %v", gamma)
	}
	return &Learner{gamma}, nil
}

// Update performs a single SARSA(0) update to the action value table
// from one experienced transition, storing the new estimate for the
// pair (obs, action). The next observation and next action are only
// read when the transition is not terminal.
func (l *Learner) Update(t table.Table, learningRate float64,
	obs environment.Observation, action int, reward float64, done bool,
	nextObs environment.Observation, nextAction int) error {

	target := reward
	if !done {
		nextValue, err := table.ValueOrZero(t, nextObs, nextAction)
		if err != nil {
			return fmt.Errorf("update: could not get next action "+
				"value: %v", err)
		}
		target += l.gamma * nextValue
	}

	oldValue, err := table.ValueOrZero(t, obs, action)
	if err != nil {
		return fmt.Errorf("update: could not get action value: %v", err)
	}

	newValue := learningRate*target + (1-learningRate)*oldValue

	if err := t.Update(obs, action, newValue); err != nil {
		return fmt.Errorf("update: could not store action value: %v", err)
	}
	return nil
}
