// Package tracker implements Trackers, which record and save data
// about the episodes of an experiment
package tracker

import (
	"encoding/gob"
	"fmt"
	"os"
)

// EpisodeStats summarizes one completed episode.
type EpisodeStats struct {
	Episode int     // which episode, counted from 1
	Return  float64 // total reward accumulated over the episode
	Length  int     // number of steps taken in the episode
}

// Tracker records data about each completed episode of an experiment
// and saves the recorded data once the experiment has finished.
type Tracker interface {
	TrackEpisode(EpisodeStats)
	Save() error
}

// LoadData loads and returns the data saved by a Tracker.
func LoadData(filename string) ([]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadData: could not open data file: %v",
			err)
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	var data []float64
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("loadData: could not decode data: %v", err)
	}

	return data, nil
}
