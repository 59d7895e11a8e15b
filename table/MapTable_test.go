package table

import (
	"math"
	"path/filepath"
	"testing"
)

// state is a minimal observation for exercising tables in tests.
type state string

func (s state) Hash() string {
	return string(s)
}

func TestMapTableGetUnknownPair(t *testing.T) {
	table := NewMapTable("")

	value, err := table.Get(state("s0"), 0)
	if err == nil {
		t.Fatal("expected an error for an unvisited state-action pair")
	}
	if !IsNotFound(err) {
		t.Errorf("error %v does not satisfy IsNotFound", err)
	}
	if value != 0 {
		t.Errorf("got value %v, want 0", value)
	}

	// A stored value for one action does not create estimates for
	// the state's other actions.
	if err := table.Update(state("s0"), 0, 1.5); err != nil {
		t.Fatal(err)
	}
	if _, err := table.Get(state("s0"), 1); !IsNotFound(err) {
		t.Errorf("error %v does not satisfy IsNotFound", err)
	}
}

func TestMapTableUpdateOverwrites(t *testing.T) {
	table := NewMapTable("")

	if err := table.Update(state("s0"), 1, -0.5); err != nil {
		t.Fatal(err)
	}
	if err := table.Update(state("s0"), 1, 2.25); err != nil {
		t.Fatal(err)
	}

	value, err := table.Get(state("s0"), 1)
	if err != nil {
		t.Fatal(err)
	}
	if value != 2.25 {
		t.Errorf("got value %v, want 2.25", value)
	}
	if table.Len() != 1 {
		t.Errorf("got %v stored pairs, want 1", table.Len())
	}
}

func TestMapTableSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qtable.json")

	table := NewMapTable(path)
	stored := []struct {
		obs    state
		action int
		value  float64
	}{
		{"0:0", 0, 1.4},
		{"0:0", 1, -0.33},
		{"4:4", 3, 100.0},
	}
	for _, s := range stored {
		if err := table.Update(s.obs, s.action, s.value); err != nil {
			t.Fatal(err)
		}
	}
	if err := table.Save(); err != nil {
		t.Fatal(err)
	}

	loaded := NewMapTable(path)
	if err := loaded.Load(); err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != len(stored) {
		t.Fatalf("loaded %v pairs, want %v", loaded.Len(), len(stored))
	}
	for _, s := range stored {
		value, err := loaded.Get(s.obs, s.action)
		if err != nil {
			t.Fatalf("Get(%v, %v): %v", s.obs, s.action, err)
		}
		if math.Abs(value-s.value) > 1e-12 {
			t.Errorf("Get(%v, %v) = %v, want %v", s.obs, s.action, value,
				s.value)
		}
	}
}

func TestMapTableLoadMissingFile(t *testing.T) {
	table := NewMapTable(filepath.Join(t.TempDir(), "missing.json"))
	if err := table.Load(); err == nil {
		t.Error("expected an error loading from a missing file")
	}

	if err := NewMapTable("").Load(); err == nil {
		t.Error("expected an error loading a table with no backing file")
	}
}

func TestValueOrZero(t *testing.T) {
	table := NewMapTable("")
	if err := table.Update(state("s1"), 0, 3.5); err != nil {
		t.Fatal(err)
	}

	value, err := ValueOrZero(table, state("s1"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if value != 3.5 {
		t.Errorf("got value %v, want 3.5", value)
	}

	// Unknown pairs read as 0 without an error.
	value, err = ValueOrZero(table, state("s1"), 1)
	if err != nil {
		t.Fatalf("unexpected error for unvisited pair: %v", err)
	}
	if value != 0 {
		t.Errorf("got value %v, want 0", value)
	}
}
