package experiment

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/lakhotiaharshit/practical-rl-for-coders/environment"
	"github.com/lakhotiaharshit/practical-rl-for-coders/table"
)

// chainObs is an observation of a chainEnv position.
type chainObs int

func (c chainObs) Hash() string {
	return strconv.Itoa(int(c))
}

// chainEnv is a deterministic two-step environment. Every episode
// visits positions 0 and 1 in order and ends after the second step.
// Action 0 earns reward +1 and action 1 earns reward -1 at either
// position, so the best policy earns a return of 2 in every episode.
type chainEnv struct {
	pos   int
	space *environment.Discrete

	resets  int
	steps   int
	renders int
	closed  bool
}

func newChainEnv(t *testing.T) *chainEnv {
	t.Helper()

	space, err := environment.NewDiscrete(2, 1)
	if err != nil {
		t.Fatalf("could not create action space: %v", err)
	}

	return &chainEnv{space: space}
}

func (c *chainEnv) Reset() (environment.Observation, error) {
	c.resets++
	c.pos = 0
	return chainObs(0), nil
}

func (c *chainEnv) Step(action int) (environment.Observation, float64,
	bool, error) {
	if !c.space.Contains(action) {
		return nil, 0, false, fmt.Errorf("step: illegal action %v", action)
	}
	c.steps++

	reward := 1.0
	if action == 1 {
		reward = -1.0
	}

	c.pos++
	return chainObs(c.pos), reward, c.pos == 2, nil
}

func (c *chainEnv) ActionSpace() *environment.Discrete {
	return c.space
}

func (c *chainEnv) Render() {
	c.renders++
}

func (c *chainEnv) Close() error {
	c.closed = true
	return nil
}

// knownTable returns a table holding estimates for every state-action
// pair of a chainEnv, preferring the given action at both positions.
func knownTable(t *testing.T, preferred int) table.Table {
	t.Helper()

	qTable := table.NewMapTable("")
	for pos := 0; pos < 2; pos++ {
		for action := 0; action < 2; action++ {
			value := 1.0
			if action != preferred {
				value = -1.0
			}
			if err := qTable.Update(chainObs(pos), action, value); err != nil {
				t.Fatalf("could not fill table: %v", err)
			}
		}
	}

	return qTable
}

// TestEvaluateAveragesReward ensures that Evaluate returns the average
// reward accumulated per episode under the greedy policy.
func TestEvaluateAveragesReward(t *testing.T) {
	env := newChainEnv(t)

	average, err := Evaluate(env, 3, knownTable(t, 0), 0, false, 14)
	if err != nil {
		t.Fatalf("could not evaluate: %v", err)
	}
	if average != 2.0 {
		t.Errorf("got average reward %v, expected 2", average)
	}

	env = newChainEnv(t)
	average, err = Evaluate(env, 3, knownTable(t, 1), 0, false, 14)
	if err != nil {
		t.Fatalf("could not evaluate: %v", err)
	}
	if average != -2.0 {
		t.Errorf("got average reward %v, expected -2", average)
	}
}

// TestEvaluateRendersAndCloses ensures that the environment is
// rendered before every action and closed once the last episode has
// finished.
func TestEvaluateRendersAndCloses(t *testing.T) {
	env := newChainEnv(t)

	if _, err := Evaluate(env, 4, knownTable(t, 0), 0, true, 14); err != nil {
		t.Fatalf("could not evaluate: %v", err)
	}

	if env.resets != 4 {
		t.Errorf("environment was reset %v times, expected 4", env.resets)
	}
	if env.steps != 8 {
		t.Errorf("environment was stepped %v times, expected 8", env.steps)
	}
	if env.renders != 8 {
		t.Errorf("environment was rendered %v times, expected 8",
			env.renders)
	}
	if !env.closed {
		t.Error("environment was not closed after evaluation")
	}
}

// TestEvaluateRenderOff ensures that the environment is never rendered
// when rendering was not requested.
func TestEvaluateRenderOff(t *testing.T) {
	env := newChainEnv(t)

	if _, err := Evaluate(env, 2, knownTable(t, 0), 0, false, 14); err != nil {
		t.Fatalf("could not evaluate: %v", err)
	}

	if env.renders != 0 {
		t.Errorf("environment was rendered %v times, expected 0",
			env.renders)
	}
}

// TestEvaluateExplores ensures that a positive exploration rate mixes
// random actions into evaluation. With epsilon 1 every action is
// random, so both rewards of the chain environment should appear over
// enough episodes.
func TestEvaluateExplores(t *testing.T) {
	env := newChainEnv(t)

	average, err := Evaluate(env, 100, knownTable(t, 0), 1, false, 14)
	if err != nil {
		t.Fatalf("could not evaluate: %v", err)
	}

	// A uniformly random policy averages 0 reward per episode. All 200
	// draws landing on one action has probability 2^-200.
	if average == 2.0 || average == -2.0 {
		t.Errorf("got average reward %v from a random policy", average)
	}
}

// TestEvaluateInvalidEpisodes ensures that evaluating for a
// non-positive number of episodes results in an error.
func TestEvaluateInvalidEpisodes(t *testing.T) {
	for _, episodes := range []int{0, -3} {
		env := newChainEnv(t)
		if _, err := Evaluate(env, episodes, knownTable(t, 0), 0, false,
			14); err == nil {
			t.Errorf("expected an error for %v episodes", episodes)
		}
	}
}

// TestEvaluateInvalidEpsilon ensures that an exploration rate outside
// [0, 1] results in an error.
func TestEvaluateInvalidEpsilon(t *testing.T) {
	for _, epsilon := range []float64{-0.1, 1.5} {
		env := newChainEnv(t)
		if _, err := Evaluate(env, 2, knownTable(t, 0), epsilon, false,
			14); err == nil {
			t.Errorf("expected an error for epsilon %v", epsilon)
		}
	}
}
