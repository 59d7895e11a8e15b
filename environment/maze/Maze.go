// Package maze implements maze environments using GoMaze
package maze

import (
	"fmt"

	"github.com/lakhotiaharshit/practical-rl-for-coders/environment"
	"github.com/samuelfneumann/gomaze"
)

// Rewards for solving a maze. Each step costs -1 until the step that
// reaches the goal cell, so shorter solutions accumulate more reward.
const (
	TimeStepReward float64 = -1.0
	TerminalReward float64 = 0.0
)

// Default start and end cells, letting GoMaze choose them
const (
	DefaultStartRow int = -1
	DefaultStartCol int = -1
	DefaultEndRow   int = -1
	DefaultEndCol   int = -1
)

// Cell describes the agent's position in a maze.
type Cell struct {
	Row int
	Col int
}

// Hash returns a stable key identifying the cell.
func (c Cell) Hash() string {
	return fmt.Sprintf("%d:%d", c.Row, c.Col)
}

// Maze adapts a GoMaze maze to the environment interface. The agent
// is rewarded -1 on every step until it reaches the maze's goal cell,
// where it receives 0. Episodes end at the goal cell or after a step
// limit.
type Maze struct {
	maze      *gomaze.Maze
	stepLimit int
	steps     int
	space     *environment.Discrete
}

// New constructs a new rows × cols Maze whose layout is generated by
// init. GoMaze chooses the start and goal cells. Episodes last at
// most stepLimit steps, and random actions are sampled using the
// random number seed.
func New(rows, cols, stepLimit int, init gomaze.Initer,
	seed uint64) (*Maze, error) {
	if stepLimit <= 0 {
		return nil, fmt.Errorf("maze: step limit must be positive, "+
			"got %v", stepLimit)
	}

	m, err := gomaze.NewMaze(rows, cols, DefaultEndRow, DefaultEndCol,
		DefaultStartRow, DefaultStartCol, init)
	if err != nil {
		return nil, fmt.Errorf("maze: could not create maze: %v", err)
	}

	space, err := environment.NewDiscrete(gomaze.Actions, seed)
	if err != nil {
		return nil, fmt.Errorf("maze: %v", err)
	}

	return &Maze{maze: m, stepLimit: stepLimit, space: space}, nil
}

// Reset starts a new episode with the agent back at the maze's start
// cell.
func (m *Maze) Reset() (environment.Observation, error) {
	cell, err := toCell(m.maze.Reset())
	if err != nil {
		return nil, fmt.Errorf("reset: %v", err)
	}
	m.steps = 0
	return cell, nil
}

// Step moves the agent one cell in the direction given by action.
// Moves into maze walls leave the agent's position unchanged.
func (m *Maze) Step(action int) (environment.Observation, float64, bool,
	error) {
	if !m.space.Contains(action) {
		return nil, 0, false, fmt.Errorf("step: illegal action %v",
			action)
	}

	position, _, _, err := m.maze.Step(action)
	if err != nil {
		return nil, 0, false, fmt.Errorf("step: %v", err)
	}
	cell, err := toCell(position)
	if err != nil {
		return nil, 0, false, fmt.Errorf("step: %v", err)
	}
	m.steps++

	reward := TimeStepReward
	done := false
	if m.maze.AtGoal() {
		reward = TerminalReward
		done = true
	} else if m.steps >= m.stepLimit {
		done = true
	}

	return cell, reward, done, nil
}

// ActionSpace returns the space of legal actions in the maze.
func (m *Maze) ActionSpace() *environment.Discrete {
	return m.space
}

// Close releases the maze's resources. A Maze holds no external
// resources, so Close never fails.
func (m *Maze) Close() error {
	return nil
}

// Start returns the maze's start cell.
func (m *Maze) Start() Cell {
	row, col := m.maze.Start()
	return Cell{row, col}
}

// Goal returns the maze's goal cell.
func (m *Maze) Goal() Cell {
	row, col := m.maze.Goal()
	return Cell{row, col}
}

func toCell(position []float64) (Cell, error) {
	if len(position) != 2 {
		return Cell{}, fmt.Errorf("expected a 2-dimensional position, "+
			"got %v dimensions", len(position))
	}
	return Cell{Row: int(position[0]), Col: int(position[1])}, nil
}
