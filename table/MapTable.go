package table

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lakhotiaharshit/practical-rl-for-coders/environment"
)

// MapTable is an action value table backed by nested maps, keyed
// first by observation hash and then by action. A MapTable persists
// itself to a JSON file so that learned values survive between runs
// and can be inspected by hand.
//
// A MapTable is not safe for concurrent use. Training is single
// threaded, so learners that share a table across goroutines must
// wrap it in their own locking.
type MapTable struct {
	path   string
	values map[string]map[int]float64
}

// NewMapTable returns a new, empty MapTable which persists to the
// JSON file at path. If path is the empty string, the table is held
// in memory only and Save does nothing.
func NewMapTable(path string) *MapTable {
	return &MapTable{
		path:   path,
		values: make(map[string]map[int]float64),
	}
}

// Get returns the stored estimate for a state-action pair. If no
// estimate has been stored for the pair, the returned error
// satisfies IsNotFound.
func (m *MapTable) Get(obs environment.Observation, action int) (float64,
	error) {
	actions, ok := m.values[obs.Hash()]
	if !ok {
		return 0, &TableError{Op: "get", Err: errNotFound}
	}

	value, ok := actions[action]
	if !ok {
		return 0, &TableError{Op: "get", Err: errNotFound}
	}
	return value, nil
}

// Update stores value as the new estimate for a state-action pair,
// inserting the pair if it was not previously stored.
func (m *MapTable) Update(obs environment.Observation, action int,
	value float64) error {
	hash := obs.Hash()
	if _, ok := m.values[hash]; !ok {
		m.values[hash] = make(map[int]float64)
	}
	m.values[hash][action] = value
	return nil
}

// Save writes the table to its backing JSON file, overwriting any
// previous contents.
func (m *MapTable) Save() error {
	if m.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(m.values, "", "  ")
	if err != nil {
		return fmt.Errorf("save: could not encode table: %v", err)
	}

	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("save: could not write table: %v", err)
	}
	return nil
}

// Load replaces the table's contents with those stored in its
// backing JSON file, so that learning can resume from a previous
// run's values.
func (m *MapTable) Load() error {
	if m.path == "" {
		return fmt.Errorf("load: table has no backing file")
	}

	data, err := os.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf("load: could not read table: %v", err)
	}

	values := make(map[string]map[int]float64)
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("load: could not decode table: %v", err)
	}

	m.values = values
	return nil
}

// Len returns the number of state-action pairs stored in the table.
func (m *MapTable) Len() int {
	n := 0
	for _, actions := range m.values {
		n += len(actions)
	}
	return n
}
