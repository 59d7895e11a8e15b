package sarsa

import (
	"math"
	"testing"

	"github.com/lakhotiaharshit/practical-rl-for-coders/environment"
	"github.com/lakhotiaharshit/practical-rl-for-coders/table"
)

// state is a minimal observation for exercising the learner in tests.
type state string

func (s state) Hash() string {
	return string(s)
}

// countingTable wraps a MapTable and counts the operations performed
// on it.
type countingTable struct {
	inner   *table.MapTable
	gets    int
	updates int
	saves   int
}

func newCountingTable() *countingTable {
	return &countingTable{inner: table.NewMapTable("")}
}

func (c *countingTable) Get(obs environment.Observation, action int) (float64,
	error) {
	c.gets++
	return c.inner.Get(obs, action)
}

func (c *countingTable) Update(obs environment.Observation, action int,
	value float64) error {
	c.updates++
	return c.inner.Update(obs, action, value)
}

func (c *countingTable) Save() error {
	c.saves++
	return nil
}

func TestNewLearnerInvalidDiscount(t *testing.T) {
	for _, gamma := range []float64{-0.1, 1.1, 2.0} {
		if _, err := NewLearner(gamma); err == nil {
			t.Errorf("expected an error for discount %v", gamma)
		}
	}
}

func TestLearnerTargetWithUnknownCurrentValue(t *testing.T) {
	learner, err := NewLearner(0.9)
	if err != nil {
		t.Fatal(err)
	}
	values := table.NewMapTable("")

	// The next state-action pair holds an estimate of 2.0, while the
	// current pair has no estimate and reads as 0.
	if err := values.Update(state("s1"), 1, 2.0); err != nil {
		t.Fatal(err)
	}

	err = learner.Update(values, 0.5, state("s0"), 0, 1.0, false,
		state("s1"), 1)
	if err != nil {
		t.Fatal(err)
	}

	// target = 1.0 + 0.9*2.0 = 2.8 and the new estimate blends it
	// with the old: 0.5*2.8 + 0.5*0 = 1.4
	got, err := values.Get(state("s0"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-1.4) > 1e-12 {
		t.Errorf("got estimate %v, want 1.4", got)
	}
}

func TestLearnerTargetWithStoredCurrentValue(t *testing.T) {
	learner, err := NewLearner(0.9)
	if err != nil {
		t.Fatal(err)
	}
	values := table.NewMapTable("")

	if err := values.Update(state("s1"), 1, 2.0); err != nil {
		t.Fatal(err)
	}
	if err := values.Update(state("s0"), 0, 2.0); err != nil {
		t.Fatal(err)
	}

	err = learner.Update(values, 0.5, state("s0"), 0, 1.0, false,
		state("s1"), 1)
	if err != nil {
		t.Fatal(err)
	}

	// target = 2.8 as before, blended with the stored estimate:
	// 0.5*2.8 + 0.5*2.0 = 2.4
	got, err := values.Get(state("s0"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-2.4) > 1e-12 {
		t.Errorf("got estimate %v, want 2.4", got)
	}
}

func TestLearnerTerminalTargetIsRewardOnly(t *testing.T) {
	learner, err := NewLearner(0.9)
	if err != nil {
		t.Fatal(err)
	}
	values := newCountingTable()

	// Store a large estimate for the next pair. On a terminal
	// transition it must not contribute to the target.
	if err := values.inner.Update(state("s1"), 1, 100.0); err != nil {
		t.Fatal(err)
	}
	values.gets = 0

	err = learner.Update(values, 0.5, state("s0"), 0, 1.0, true,
		state("s1"), 1)
	if err != nil {
		t.Fatal(err)
	}

	// target = 1.0 and the current pair reads as 0, so the new
	// estimate is 0.5*1.0 = 0.5
	got, err := values.inner.Get(state("s0"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-0.5) > 1e-12 {
		t.Errorf("got estimate %v, want 0.5", got)
	}

	// A terminal update reads only the current pair.
	if values.gets != 1 {
		t.Errorf("terminal update read the table %v times, want 1",
			values.gets)
	}
}

func TestLearnerUnknownNextValueReadAsZero(t *testing.T) {
	learner, err := NewLearner(0.9)
	if err != nil {
		t.Fatal(err)
	}
	values := table.NewMapTable("")

	err = learner.Update(values, 0.5, state("s0"), 0, 1.0, false,
		state("s1"), 1)
	if err != nil {
		t.Fatal(err)
	}

	// Neither pair holds an estimate, so target = 1.0 + 0.9*0 and
	// the new estimate is 0.5*1.0 = 0.5
	got, err := values.Get(state("s0"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-0.5) > 1e-12 {
		t.Errorf("got estimate %v, want 0.5", got)
	}
}

func TestLearnerPerformsSingleWrite(t *testing.T) {
	learner, err := NewLearner(0.9)
	if err != nil {
		t.Fatal(err)
	}
	values := newCountingTable()

	err = learner.Update(values, 0.5, state("s0"), 0, 1.0, false,
		state("s1"), 1)
	if err != nil {
		t.Fatal(err)
	}

	if values.updates != 1 {
		t.Errorf("update wrote to the table %v times, want 1",
			values.updates)
	}
	if values.gets != 2 {
		t.Errorf("update read the table %v times, want 2", values.gets)
	}
}
