// Package checkpointer periodically saves objects during an experiment
package checkpointer

// Saver is an object that can save itself to its backing store.
type Saver interface {
	Save() error
}

// Checkpointer saves an object whenever an experiment reaches chosen
// points of progress. Checkpoint is called with the number of episodes
// completed so far, counted from 1.
type Checkpointer interface {
	Checkpoint(episode int) error
}
