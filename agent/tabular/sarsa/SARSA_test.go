package sarsa

import (
	"math"
	"testing"

	"github.com/lakhotiaharshit/practical-rl-for-coders/agent"
	"github.com/lakhotiaharshit/practical-rl-for-coders/environment"
	"github.com/lakhotiaharshit/practical-rl-for-coders/table"
)

var _ agent.Agent = (*SARSA)(nil)

// fakeEnv is an environment stub exposing only an action space.
type fakeEnv struct {
	space *environment.Discrete
}

func newFakeEnv(t *testing.T, actions int, seed uint64) *fakeEnv {
	t.Helper()
	space, err := environment.NewDiscrete(actions, seed)
	if err != nil {
		t.Fatal(err)
	}
	return &fakeEnv{space}
}

func (f *fakeEnv) Reset() (environment.Observation, error) {
	return state("s"), nil
}

func (f *fakeEnv) Step(int) (environment.Observation, float64, bool, error) {
	return state("s"), 0, false, nil
}

func (f *fakeEnv) ActionSpace() *environment.Discrete {
	return f.space
}

func (f *fakeEnv) Close() error {
	return nil
}

func validConfig() Config {
	return Config{
		Gamma:             0.9,
		StartEpsilon:      1.0,
		EndEpsilon:        0.1,
		StartLearningRate: 0.5,
		EndLearningRate:   0.1,
		TotalObservations: 100,
	}
}

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative discount", func(c *Config) { c.Gamma = -0.1 }},
		{"discount above one", func(c *Config) { c.Gamma = 1.5 }},
		{"negative start epsilon", func(c *Config) { c.StartEpsilon = -1 }},
		{"start epsilon above one", func(c *Config) { c.StartEpsilon = 2 }},
		{"negative end epsilon", func(c *Config) { c.EndEpsilon = -0.5 }},
		{"end epsilon above one", func(c *Config) { c.EndEpsilon = 1.01 }},
		{"zero learning rate", func(c *Config) { c.StartLearningRate = 0 }},
		{"negative end learning rate",
			func(c *Config) { c.EndLearningRate = -0.1 }},
		{"zero observations", func(c *Config) { c.TotalObservations = 0 }},
		{"negative observations",
			func(c *Config) { c.TotalObservations = -10 }},
	}
	for _, test := range tests {
		config := validConfig()
		test.modify(&config)
		if _, err := New(config, 1); err == nil {
			t.Errorf("%v: expected a configuration error", test.name)
		}
	}

	if _, err := New(validConfig(), 1); err != nil {
		t.Errorf("valid configuration rejected: %v", err)
	}
}

func TestSARSAAnnealsSchedules(t *testing.T) {
	sarsa, err := New(validConfig(), 1)
	if err != nil {
		t.Fatal(err)
	}

	if got := sarsa.Epsilon(0); got != 1.0 {
		t.Errorf("Epsilon(0) = %v, want 1", got)
	}
	if got := sarsa.Epsilon(100); math.Abs(got-0.1) > 1e-12 {
		t.Errorf("Epsilon(100) = %v, want 0.1", got)
	}
	if got := sarsa.Epsilon(50); math.Abs(got-0.55) > 1e-12 {
		t.Errorf("Epsilon(50) = %v, want 0.55", got)
	}

	if got := sarsa.LearningRate(0); got != 0.5 {
		t.Errorf("LearningRate(0) = %v, want 0.5", got)
	}
	if got := sarsa.LearningRate(100); math.Abs(got-0.1) > 1e-12 {
		t.Errorf("LearningRate(100) = %v, want 0.1", got)
	}

	if got := sarsa.TotalObservations(); got != 100 {
		t.Errorf("TotalObservations() = %v, want 100", got)
	}
}

func TestSARSASelectActionGreedy(t *testing.T) {
	sarsa, err := New(validConfig(), 42)
	if err != nil {
		t.Fatal(err)
	}
	env := newFakeEnv(t, 3, 14)
	values := table.NewMapTable("")

	obs := state("s0")
	for action, value := range []float64{0.5, 2.0, 1.0} {
		if err := values.Update(obs, action, value); err != nil {
			t.Fatal(err)
		}
	}

	// With an exploration rate of 0 the agent must always exploit
	// the highest estimate, regardless of its configured schedule.
	for i := 0; i < 200; i++ {
		action, err := sarsa.SelectAction(env, values, obs, 0.0)
		if err != nil {
			t.Fatal(err)
		}
		if action != 1 {
			t.Fatalf("selection %v: got action %v, want 1", i, action)
		}
	}
}
