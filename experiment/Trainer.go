package experiment

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/lakhotiaharshit/practical-rl-for-coders/agent"
	"github.com/lakhotiaharshit/practical-rl-for-coders/environment"
	"github.com/lakhotiaharshit/practical-rl-for-coders/environment/wrappers"
	"github.com/lakhotiaharshit/practical-rl-for-coders/experiment/checkpointer"
	"github.com/lakhotiaharshit/practical-rl-for-coders/table"
	"github.com/lakhotiaharshit/practical-rl-for-coders/utils/progressbar"
)

// Config fully describes the schedule of a Trainer.
type Config struct {
	// TestInterval is the number of observations between evaluations
	// of the greedy policy on the testing environment.
	TestInterval int

	// TestEpisodes is the number of episodes each evaluation runs for.
	TestEpisodes int

	// SaveInterval is the number of episodes between checkpoints of
	// the action value table.
	SaveInterval int

	// VideoDir is the directory that evaluation videos are recorded
	// into. If empty, no videos are recorded. Recording requires a
	// testing environment which can draw frames.
	VideoDir string

	// ShowProgress determines whether a progress bar is displayed
	// over the course of training.
	ShowProgress bool
}

// Validate ensures that the Config is a valid configuration.
func (c Config) Validate() error {
	if c.TestInterval <= 0 {
		return fmt.Errorf("trainer: test interval must be positive but "+
			"got %v", c.TestInterval)
	}
	if c.TestEpisodes <= 0 {
		return fmt.Errorf("trainer: test episodes must be positive but "+
			"got %v", c.TestEpisodes)
	}
	if c.SaveInterval <= 0 {
		return fmt.Errorf("trainer: save interval must be positive but "+
			"got %v", c.SaveInterval)
	}
	return nil
}

// Trainer runs the learning loop of an experiment. It steps an agent
// through episodes of a learning environment until the agent's
// observation budget is spent, updating the agent's action value
// table from every transition. The exploration rate and step size
// used for each observation are read from the agent's schedules at
// the number of observations taken so far.
//
// Every TestInterval observations, the greedy policy over the current
// action value table is measured with Evaluate on a separate testing
// environment, and the result is recorded as a point on the learning
// curve. The action value table is checkpointed whenever the episode
// counter reaches a multiple of SaveInterval.
type Trainer struct {
	agent       agent.Agent
	learningEnv environment.Environment
	testingEnv  environment.Environment
	qTable      table.Table

	config        Config
	seed          uint64
	checkpointers []checkpointer.Checkpointer
	publishers    []Publisher
	videoName     func() string

	logger     *log.Logger
	evalPoints []EvalPoint
	closed     bool
}

// NewTrainer creates and returns a new Trainer, which will train a on
// learningEnv and evaluate it on testingEnv, reading and writing
// action value estimates in qTable. The seed determines how the
// evaluation policy breaks ties between equally valued actions.
//
// The learning and testing environments must be distinct: evaluation
// interrupts the learning loop mid-episode, and resetting the learning
// environment would destroy the episode in progress.
func NewTrainer(a agent.Agent, learningEnv,
	testingEnv environment.Environment, qTable table.Table, config Config,
	seed uint64) (*Trainer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("newTrainer: %v", err)
	}

	var videoName func() string
	if config.VideoDir != "" {
		if _, ok := testingEnv.(environment.Framer); !ok {
			return nil, fmt.Errorf("newTrainer: video recording requires "+
				"a testing environment which draws frames, but %T does "+
				"not", testingEnv)
		}
		videoName = checkpointer.FilenameEnumerator(0,
			filepath.Join(config.VideoDir, "eval"), ".gif")
	}

	check, err := checkpointer.NewNEpisode(config.SaveInterval, qTable)
	if err != nil {
		return nil, fmt.Errorf("newTrainer: %v", err)
	}

	return &Trainer{
		agent:         a,
		learningEnv:   learningEnv,
		testingEnv:    testingEnv,
		qTable:        qTable,
		config:        config,
		seed:          seed,
		checkpointers: []checkpointer.Checkpointer{check},
		videoName:     videoName,
		logger:        log.Default(),
	}, nil
}

// Register registers a Publisher with the (possibly already running)
// Trainer, which will receive all Events the Trainer emits from then
// on.
func (t *Trainer) Register(p Publisher) {
	t.publishers = append(t.publishers, p)
}

// EvalPoints returns the learning curve recorded so far, one point
// per completed evaluation round.
func (t *Trainer) EvalPoints() []EvalPoint {
	return t.evalPoints
}

// Run trains the agent until its observation budget is spent. The
// final episode is always run to completion, so a few more
// observations than the budget may be taken. Once training finishes,
// both environments are closed.
func (t *Trainer) Run() error {
	total := t.agent.TotalObservations()

	var bar *progressbar.Bar
	if t.config.ShowProgress {
		bar = progressbar.NewBar(65, total)
	}

	obsNum := 0
	episodeNum := 1

	for obsNum < total {
		obs, err := t.learningEnv.Reset()
		if err != nil {
			return fmt.Errorf("run: could not reset learning "+
				"environment: %v", err)
		}

		epsilon := t.agent.Epsilon(obsNum)
		action, err := t.agent.SelectAction(t.learningEnv, t.qTable, obs,
			epsilon)
		if err != nil {
			return fmt.Errorf("run: could not select action: %v", err)
		}

		learningRate := t.agent.LearningRate(obsNum)
		episodeReturn := 0.0
		episodeLength := 0

		for {
			nextObs, reward, done, err := t.learningEnv.Step(action)
			if err != nil {
				return fmt.Errorf("run: could not step learning "+
					"environment: %v", err)
			}

			// Schedules are read before counting the new observation,
			// so the first observation is taken at the schedules'
			// starting values.
			epsilon = t.agent.Epsilon(obsNum)
			nextAction, err := t.agent.SelectAction(t.learningEnv,
				t.qTable, nextObs, epsilon)
			if err != nil {
				return fmt.Errorf("run: could not select action: %v", err)
			}

			learningRate = t.agent.LearningRate(obsNum)
			if err := t.agent.Update(t.qTable, learningRate, obs, action,
				reward, done, nextObs, nextAction); err != nil {
				return fmt.Errorf("run: could not update agent: %v", err)
			}

			obs = nextObs
			action = nextAction
			obsNum++

			if bar != nil {
				bar.Increment()
				bar.Display()
			}

			if obsNum%t.config.TestInterval == 0 {
				averageReward, err := t.evaluate()
				if err != nil {
					return fmt.Errorf("run: %v", err)
				}

				t.evalPoints = append(t.evalPoints, EvalPoint{
					Observation:   obsNum,
					AverageReward: averageReward,
				})
				t.logger.Printf("episode %v, observation %v: average "+
					"reward %.3f over %v evaluation episodes", episodeNum,
					obsNum, averageReward, t.config.TestEpisodes)
				t.publish(Event{
					Type:          EvalRound,
					Observations:  obsNum,
					Episode:       episodeNum,
					AverageReward: averageReward,
					Epsilon:       epsilon,
					LearningRate:  learningRate,
				})
			}

			episodeReturn += reward
			episodeLength++

			if done {
				t.logger.Printf("episode %v: return %.3f over %v steps "+
					"(%v/%v observations, epsilon %.3f)", episodeNum,
					episodeReturn, episodeLength, obsNum, total, epsilon)
				t.publish(Event{
					Type:         EpisodeEnd,
					Observations: obsNum,
					Episode:      episodeNum,
					Return:       episodeReturn,
					Epsilon:      epsilon,
					LearningRate: learningRate,
				})

				episodeNum++
				for _, c := range t.checkpointers {
					if err := c.Checkpoint(episodeNum); err != nil {
						return fmt.Errorf("run: could not checkpoint: %v",
							err)
					}
				}
				break
			}
		}
	}

	return t.Close()
}

// Close releases both of the Trainer's environments, closing any
// recording wrappers around them first. Close only closes once, so it
// is safe to call after Run, which closes the environments itself when
// training finishes.
func (t *Trainer) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true

	if err := closeAll(t.learningEnv); err != nil {
		return fmt.Errorf("close: could not close learning environment: "+
			"%v", err)
	}
	if err := closeAll(t.testingEnv); err != nil {
		return fmt.Errorf("close: could not close testing environment: "+
			"%v", err)
	}
	return nil
}

// evaluate measures the greedy policy on the testing environment,
// without rendering it. The environment is wrapped in fresh recording
// wrappers for the round, so that Evaluate closing its environment
// leaves the underlying testing environment open for later rounds.
func (t *Trainer) evaluate() (float64, error) {
	env := t.testingEnv
	if t.videoName != nil {
		video, err := wrappers.NewVideo(env, t.videoName())
		if err != nil {
			return 0, fmt.Errorf("could not record video: %v", err)
		}
		env = video
	}

	return Evaluate(wrappers.NewMonitor(env), t.config.TestEpisodes,
		t.qTable, 0, false, t.seed)
}

// publish sends an Event to every registered Publisher.
func (t *Trainer) publish(event Event) {
	for _, p := range t.publishers {
		p.Publish(event)
	}
}

// closeAll closes env. If env is a stack of recording wrappers,
// closing the outermost wrapper flushes the whole stack, and the
// underlying environment at the bottom of the stack is then closed
// separately.
func closeAll(env environment.Environment) error {
	if err := env.Close(); err != nil {
		return err
	}

	for {
		unwrapper, ok := env.(environment.Unwrapper)
		if !ok {
			return nil
		}

		env = unwrapper.Unwrap()
		if _, ok := env.(environment.Unwrapper); !ok {
			return env.Close()
		}
	}
}
