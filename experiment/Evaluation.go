package experiment

import (
	"fmt"

	"github.com/lakhotiaharshit/practical-rl-for-coders/agent/tabular/policy"
	"github.com/lakhotiaharshit/practical-rl-for-coders/environment"
	"github.com/lakhotiaharshit/practical-rl-for-coders/table"
)

// Evaluate measures the quality of the ε-greedy policy with the fixed
// exploration rate epsilon over the action value estimates in qTable,
// by running it in env for a number of episodes and returning the
// average reward accumulated per episode. Passing epsilon 0 measures
// the purely greedy policy. No learning happens during evaluation.
//
// If render is true and env can render itself, it is rendered before
// every action. The environment is closed once the last episode has
// finished, so callers evaluating repeatedly on one underlying
// environment should pass a fresh recording wrapper on each call.
func Evaluate(env environment.Environment, episodes int, qTable table.Table,
	epsilon float64, render bool, seed uint64) (float64, error) {
	if episodes <= 0 {
		return 0, fmt.Errorf("evaluate: episodes must be positive but "+
			"got %v", episodes)
	}

	selector, err := policy.NewEGreedy(epsilon, seed)
	if err != nil {
		return 0, fmt.Errorf("evaluate: %v", err)
	}
	renderer, canRender := env.(environment.Renderer)

	total := 0.0
	for episode := 0; episode < episodes; episode++ {
		obs, err := env.Reset()
		if err != nil {
			return 0, fmt.Errorf("evaluate: could not reset environment: "+
				"%v", err)
		}

		for {
			if render && canRender {
				renderer.Render()
			}

			action, err := selector.SelectAction(env, qTable, obs)
			if err != nil {
				return 0, fmt.Errorf("evaluate: could not select action: "+
					"%v", err)
			}

			nextObs, reward, done, err := env.Step(action)
			if err != nil {
				return 0, fmt.Errorf("evaluate: could not step "+
					"environment: %v", err)
			}

			total += reward
			obs = nextObs

			if done {
				break
			}
		}
	}

	if err := env.Close(); err != nil {
		return 0, fmt.Errorf("evaluate: could not close environment: %v",
			err)
	}

	return total / float64(episodes), nil
}
