package checkpointer

import "fmt"

// nEpisode implements checkpointing every N episodes
type nEpisode struct {
	interval int
	target   Saver // Object to save
}

// NewNEpisode returns a Checkpointer that saves target whenever the
// number of completed episodes is a multiple of n.
func NewNEpisode(n int, target Saver) (Checkpointer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("newNEpisode: interval must be positive "+
			"but got %v", n)
	}

	return &nEpisode{interval: n, target: target}, nil
}

// Checkpoint saves the Checkpointer's target if episode is a multiple
// of the checkpointing interval.
func (n *nEpisode) Checkpoint(episode int) error {
	if episode%n.interval == 0 {
		return n.target.Save()
	}
	return nil
}
