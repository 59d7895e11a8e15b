package wrappers

import (
	"fmt"

	"github.com/lakhotiaharshit/practical-rl-for-coders/environment"
	"github.com/lakhotiaharshit/practical-rl-for-coders/experiment/tracker"
)

// Monitor wraps an environment and records the return and length of
// every episode completed in it, forwarding the statistics of each
// completed episode to a set of Trackers. A Monitor with no Trackers
// simply counts episodes.
//
// Monitor is a recording wrapper. Closing it saves the recorded data
// but leaves the wrapped environment open, so a single underlying
// environment can be monitored repeatedly.
type Monitor struct {
	environment.Environment
	trackers []tracker.Tracker

	episodes      int
	episodeReturn float64
	episodeLength int
}

// NewMonitor creates and returns a new *Monitor wrapping env. Episode
// statistics are forwarded to each of trackers as episodes complete.
func NewMonitor(env environment.Environment,
	trackers ...tracker.Tracker) *Monitor {
	return &Monitor{Environment: env, trackers: trackers}
}

// Reset resets the wrapped environment and clears the running
// statistics of the current episode.
func (m *Monitor) Reset() (environment.Observation, error) {
	obs, err := m.Environment.Reset()
	if err != nil {
		return nil, err
	}

	m.episodeReturn = 0
	m.episodeLength = 0
	return obs, nil
}

// Step takes a single action in the wrapped environment, recording
// the reward. When the step ends an episode, the completed episode's
// statistics are forwarded to the Monitor's Trackers.
func (m *Monitor) Step(action int) (environment.Observation, float64,
	bool, error) {
	obs, reward, done, err := m.Environment.Step(action)
	if err != nil {
		return obs, reward, done, err
	}

	m.episodeReturn += reward
	m.episodeLength++

	if done {
		m.episodes++
		stats := tracker.EpisodeStats{
			Episode: m.episodes,
			Return:  m.episodeReturn,
			Length:  m.episodeLength,
		}
		for _, t := range m.trackers {
			t.TrackEpisode(stats)
		}
	}

	return obs, reward, done, nil
}

// Episodes returns how many episodes have completed under the Monitor.
func (m *Monitor) Episodes() int {
	return m.episodes
}

// Render renders the wrapped environment if it supports rendering.
func (m *Monitor) Render() {
	if renderer, ok := m.Environment.(environment.Renderer); ok {
		renderer.Render()
	}
}

// Close saves the data recorded by the Monitor's Trackers. If the
// Monitor wraps another recording wrapper, that wrapper is closed
// too; the underlying environment is always left open.
func (m *Monitor) Close() error {
	for _, t := range m.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("close: could not save tracked data: %v", err)
		}
	}

	if _, ok := m.Environment.(environment.Unwrapper); ok {
		if err := m.Environment.Close(); err != nil {
			return fmt.Errorf("close: %v", err)
		}
	}
	return nil
}

// Unwrap returns the wrapped environment.
func (m *Monitor) Unwrap() environment.Environment {
	return m.Environment
}
