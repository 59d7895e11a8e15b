// Package gridworld implements a tabular gridworld environment
package gridworld

import (
	"fmt"
	"image"
	"strings"

	"github.com/fogleman/gg"
	"github.com/logrusorgru/aurora"

	"github.com/lakhotiaharshit/practical-rl-for-coders/environment"
)

// Actions available in a GridWorld
const (
	Left int = iota
	Right
	Up
	Down
)

// Actions is the number of actions available in a GridWorld
const Actions int = 4

// The size of a single grid cell in rendered frames, in pixels
const cellSize int = 40

// Position describes a cell of a GridWorld by its (x, y) coordinates,
// where x indexes columns and y indexes rows. Position (0, 0) is the
// top left cell of the grid.
type Position struct {
	X int
	Y int
}

// Hash returns a stable key identifying the cell.
func (p Position) Hash() string {
	return fmt.Sprintf("%d:%d", p.X, p.Y)
}

// GridWorld implements a discrete grid environment. An agent moves
// between the cells of an r × c grid one step at a time, receiving
// timestepReward on every step and goalReward on the step that
// reaches a goal cell. An episode ends when the agent reaches a goal
// cell or after stepLimit steps have been taken.
//
// Moving off an edge of the grid leaves the agent's position
// unchanged.
type GridWorld struct {
	r int
	c int

	start    Position
	position Position
	goals    map[Position]bool

	timestepReward float64
	goalReward     float64

	stepLimit int
	steps     int

	space *environment.Discrete
}

// New constructs a new r × c GridWorld. The agent begins every
// episode at start and episodes end at any of the goal cells, or
// after stepLimit steps. Random actions are sampled using the random
// number seed.
func New(r, c int, start Position, goals []Position, timestepReward,
	goalReward float64, stepLimit int, seed uint64) (*GridWorld, error) {
	if r <= 0 || c <= 0 {
		return nil, fmt.Errorf("gridworld: illegal bounds (%d, %d)", r, c)
	}
	if !inBounds(start, r, c) {
		return nil, fmt.Errorf("gridworld: start %v out of bounds "+
			"(%d, %d)", start, r, c)
	}
	if len(goals) == 0 {
		return nil, fmt.Errorf("gridworld: no goal cells given")
	}
	goalCells := make(map[Position]bool, len(goals))
	for _, goal := range goals {
		if !inBounds(goal, r, c) {
			return nil, fmt.Errorf("gridworld: goal %v out of bounds "+
				"(%d, %d)", goal, r, c)
		}
		goalCells[goal] = true
	}
	if stepLimit <= 0 {
		return nil, fmt.Errorf("gridworld: step limit must be positive, "+
			"got %v", stepLimit)
	}

	space, err := environment.NewDiscrete(Actions, seed)
	if err != nil {
		return nil, fmt.Errorf("gridworld: %v", err)
	}

	return &GridWorld{
		r:              r,
		c:              c,
		start:          start,
		position:       start,
		goals:          goalCells,
		timestepReward: timestepReward,
		goalReward:     goalReward,
		stepLimit:      stepLimit,
		space:          space,
	}, nil
}

func inBounds(p Position, r, c int) bool {
	return p.X >= 0 && p.X < c && p.Y >= 0 && p.Y < r
}

// Reset starts a new episode with the agent at the start cell.
func (g *GridWorld) Reset() (environment.Observation, error) {
	g.position = g.start
	g.steps = 0
	return g.position, nil
}

// Step moves the agent one cell in the direction given by action.
func (g *GridWorld) Step(action int) (environment.Observation, float64,
	bool, error) {
	if !g.space.Contains(action) {
		return nil, 0, false, fmt.Errorf("step: illegal action %v", action)
	}

	x, y := g.position.X, g.position.Y
	switch action {
	case Left:
		if x > 0 {
			x--
		}
	case Right:
		if x < g.c-1 {
			x++
		}
	case Up:
		if y > 0 {
			y--
		}
	case Down:
		if y < g.r-1 {
			y++
		}
	}
	g.position = Position{x, y}
	g.steps++

	reward := g.timestepReward
	done := false
	if g.goals[g.position] {
		reward = g.goalReward
		done = true
	} else if g.steps >= g.stepLimit {
		done = true
	}

	return g.position, reward, done, nil
}

// ActionSpace returns the space of legal actions in the GridWorld.
func (g *GridWorld) ActionSpace() *environment.Discrete {
	return g.space
}

// Close releases the GridWorld's resources. A GridWorld holds no
// external resources, so Close never fails.
func (g *GridWorld) Close() error {
	return nil
}

func (g *GridWorld) String() string {
	return fmt.Sprintf("GridWorld | At: (%d, %d)  |  Bounds: (%d, %d)",
		g.position.X, g.position.Y, g.r, g.c)
}

// Render draws the grid to standard output, marking the agent's cell
// with a green A and goal cells with a yellow G.
func (g *GridWorld) Render() {
	var b strings.Builder
	for y := 0; y < g.r; y++ {
		for x := 0; x < g.c; x++ {
			cell := Position{x, y}
			switch {
			case cell == g.position:
				fmt.Fprint(&b, aurora.Green("A"))
			case g.goals[cell]:
				fmt.Fprint(&b, aurora.Yellow("G"))
			default:
				b.WriteByte('.')
			}
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	fmt.Println(b.String())
}

// Frame draws the current state of the grid as an image for episode
// video recording. The agent's cell is drawn in blue and goal cells
// in green.
func (g *GridWorld) Frame() image.Image {
	dc := gg.NewContext(g.c*cellSize, g.r*cellSize)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for y := 0; y < g.r; y++ {
		for x := 0; x < g.c; x++ {
			cell := Position{x, y}
			switch {
			case cell == g.position:
				dc.SetRGB(0.2, 0.4, 0.8)
			case g.goals[cell]:
				dc.SetRGB(0.2, 0.7, 0.3)
			default:
				continue
			}
			dc.DrawRectangle(float64(x*cellSize), float64(y*cellSize),
				float64(cellSize), float64(cellSize))
			dc.Fill()
		}
	}

	dc.SetRGB(0, 0, 0)
	for x := 0; x <= g.c; x++ {
		dc.DrawLine(float64(x*cellSize), 0, float64(x*cellSize),
			float64(g.r*cellSize))
	}
	for y := 0; y <= g.r; y++ {
		dc.DrawLine(0, float64(y*cellSize), float64(g.c*cellSize),
			float64(y*cellSize))
	}
	dc.Stroke()

	return dc.Image()
}
