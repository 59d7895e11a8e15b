package tracker

import (
	"encoding/gob"
	"fmt"
	"os"
)

// Return tracks and saves the return of each episode in an experiment.
type Return struct {
	episodicReturns []float64
	filename        string
}

// NewReturn creates and returns a new *Return Tracker, which will save
// its recorded data to the file filename.
func NewReturn(filename string) *Return {
	episodicReturns := make([]float64, 0, 10)

	return &Return{episodicReturns, filename}
}

// TrackEpisode records the return of a completed episode.
func (r *Return) TrackEpisode(stats EpisodeStats) {
	r.episodicReturns = append(r.episodicReturns, stats.Return)
}

// Save saves the data tracked by the Return Tracker to disk.
func (r *Return) Save() error {
	file, err := os.Create(r.filename)
	if err != nil {
		return fmt.Errorf("save: could not create data file: %v", err)
	}
	defer file.Close()

	enc := gob.NewEncoder(file)
	if err := enc.Encode(r.episodicReturns); err != nil {
		return fmt.Errorf("save: could not encode data: %v", err)
	}

	return nil
}
