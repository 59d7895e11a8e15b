// Package table provides action value tables for tabular
// reinforcement learning agents. A table stores one value estimate
// per state-action pair, keyed by the observation's hash and the
// action taken.
package table

import (
	"errors"

	"github.com/lakhotiaharshit/practical-rl-for-coders/environment"
)

// TableError implements errors unique to an action value table.
type TableError struct {
	Op  string
	Err error
}

// Error satisfies the error interface
func (e *TableError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

var errNotFound = errors.New("no value for state-action pair")

// IsNotFound returns whether or not an error reports that a table has
// no stored estimate for a state-action pair.
//
// A table has no estimate for a pair until the first Update storing
// a value for it. Callers which can substitute a default estimate
// should check errors with IsNotFound instead of failing.
func IsNotFound(err error) bool {
	if tableErr, ok := err.(*TableError); ok {
		err = tableErr.Err
	}
	return err == errNotFound
}

// Table stores action value estimates for state-action pairs.
type Table interface {
	// Get returns the stored estimate for taking action in the state
	// described by obs. If the table has no estimate for the pair,
	// Get returns an error satisfying IsNotFound.
	Get(obs environment.Observation, action int) (float64, error)

	// Update unconditionally stores value as the new estimate for
	// taking action in the state described by obs, inserting the
	// pair if it was not previously stored.
	Update(obs environment.Observation, action int, value float64) error

	// Save persists the table so that its values can be inspected
	// later or used to resume learning.
	Save() error
}

// ValueOrZero returns the estimate stored in t for a state-action
// pair, substituting 0 when the table has no estimate for the pair.
// Unvisited pairs are treated as having value 0 everywhere an
// estimate is read, so reads should go through ValueOrZero rather
// than Get.
func ValueOrZero(t Table, obs environment.Observation, action int) (float64, error) {
	value, err := t.Get(obs, action)
	if IsNotFound(err) {
		return 0, nil
	}
	return value, err
}
