package tracker

import (
	"encoding/gob"
	"fmt"
	"os"
)

// EpisodeLength tracks and saves the number of steps taken in each
// episode of an experiment.
type EpisodeLength struct {
	episodeLengths []float64
	filename       string
}

// NewEpisodeLength creates and returns a new *EpisodeLength Tracker,
// which will save its recorded data to the file filename.
func NewEpisodeLength(filename string) *EpisodeLength {
	episodeLengths := make([]float64, 0, 10)

	return &EpisodeLength{episodeLengths, filename}
}

// TrackEpisode records the length of a completed episode.
func (e *EpisodeLength) TrackEpisode(stats EpisodeStats) {
	e.episodeLengths = append(e.episodeLengths, float64(stats.Length))
}

// Save saves the data tracked by the EpisodeLength Tracker to disk.
func (e *EpisodeLength) Save() error {
	file, err := os.Create(e.filename)
	if err != nil {
		return fmt.Errorf("save: could not create data file: %v", err)
	}
	defer file.Close()

	enc := gob.NewEncoder(file)
	if err := enc.Encode(e.episodeLengths); err != nil {
		return fmt.Errorf("save: could not encode data: %v", err)
	}

	return nil
}
