// Package experiment implements functionality for running an
// experiment, in which an agent learns to act in one environment
// while its progress is periodically measured in another.
//
// A Trainer runs the learning loop: it steps the agent through
// episodes of a learning environment, annealing the agent's
// exploration rate and step size over the course of training, and
// every fixed number of observations it measures the greedy policy's
// performance with Evaluate. Episode statistics and evaluation results
// are logged, forwarded to registered Publishers, and recorded as a
// learning curve of EvalPoints.
package experiment

// EvalPoint is a single point on a learning curve: the average reward
// per evaluation episode measured after a given number of training
// observations.
type EvalPoint struct {
	Observation   int
	AverageReward float64
}

// EventType identifies what an Event reports.
type EventType string

const (
	// EpisodeEnd events report each completed learning episode
	EpisodeEnd EventType = "episode"

	// EvalRound events report each evaluation of the greedy policy
	EvalRound EventType = "eval"
)

// Event is a progress notification emitted while an experiment runs.
// Episode and Return are only meaningful on EpisodeEnd events, and
// AverageReward only on EvalRound events.
type Event struct {
	Type         EventType `json:"type"`
	Observations int       `json:"observations"`

	Episode int     `json:"episode"`
	Return  float64 `json:"return"`

	AverageReward float64 `json:"averageReward"`

	Epsilon      float64 `json:"epsilon"`
	LearningRate float64 `json:"learningRate"`
}

// Publisher consumes the Events emitted while an experiment runs, for
// example to stream them to watching clients. Publishers must not
// block: a slow consumer should drop events rather than stall the
// experiment.
type Publisher interface {
	Publish(Event)
}
