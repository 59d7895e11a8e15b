// Package cartpole implements the Cartpole classic control environment
package cartpole

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/lakhotiaharshit/practical-rl-for-coders/environment"
	"github.com/lakhotiaharshit/practical-rl-for-coders/utils/floatutils"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// Physical constants
	Gravity        float64 = 9.8
	CartMass       float64 = 1.0
	PoleMass       float64 = 0.1
	TotalMass      float64 = CartMass + PoleMass
	HalfPoleLength float64 = 0.5  // half of pole length
	ForceMag       float64 = 10.0 // Magnification of force applied
	Dt             float64 = 0.02 // seconds between state updates

	// The track extends over (-PositionBounds, PositionBounds), and
	// episodes fail when the cart moves beyond FailPosition or the
	// pole falls beyond FailAngle from vertical
	PositionBounds float64 = 4.8
	FailPosition   float64 = 2.4
	FailAngle      float64 = 12 * 2 * math.Pi / 360

	// Starting state features are drawn uniformly from
	// (-StartBound, StartBound)
	StartBound float64 = 0.05
)

// Discrete actions available in the Cartpole environment
const (
	Left int = iota
	Nothing
	Right
)

// Actions is the number of actions available in the Cartpole
// environment
const Actions int = 3

// State describes the cart and pole at a single point in time.
type State struct {
	X        float64 // cart position
	XDot     float64 // cart speed
	Theta    float64 // pole angle from the positive y-axis
	ThetaDot float64 // pole angular velocity
}

// Hash returns a stable key identifying the state. Since state
// features are continuous, nearly every state hashes to its own key;
// tabular agents should learn on cartpole through a discretizing
// wrapper rather than on raw states.
func (s State) Hash() string {
	return fmt.Sprintf("%.8f:%.8f:%.8f:%.8f", s.X, s.XDot, s.Theta,
		s.ThetaDot)
}

// Vector returns the state as the feature vector
// (x, ẋ, θ, θ̇).
func (s State) Vector() mat.Vector {
	return mat.NewVecDense(4, []float64{s.X, s.XDot, s.Theta, s.ThetaDot})
}

// Cartpole implements the classic control environment Cartpole. In
// this environment, a pole is attached to a cart, which can move
// horizontally along a track. The agent must keep the pole facing
// straight up for as long as possible.
//
// The state features are continuous and consist of the cart's x
// position and speed, as well as the pole's angle from the positive
// y-axis and the pole's angular velocity.
//
// Actions are discrete and consist of the force applied to the cart:
//
//	Action	Meaning
//	  0		Accelerate left
//	  1		Do nothing
//	  2		Accelerate right
//
// The reward is +1 on every step the pole stays up and -1 on the step
// the pole falls below the failure angle or the cart leaves the legal
// track region. Episodes end on failure or after a step limit.
type Cartpole struct {
	state     State
	steps     int
	stepLimit int
	start     distuv.Uniform
	space     *environment.Discrete
}

// New constructs a new Cartpole environment whose episodes last at
// most stepLimit steps.
func New(stepLimit int, seed uint64) (*Cartpole, error) {
	if stepLimit <= 0 {
		return nil, fmt.Errorf("cartpole: step limit must be positive, "+
			"got %v", stepLimit)
	}

	source := rand.NewSource(seed)
	start := distuv.Uniform{Min: -StartBound, Max: StartBound, Src: source}

	space, err := environment.NewDiscrete(Actions, seed)
	if err != nil {
		return nil, fmt.Errorf("cartpole: %v", err)
	}

	return &Cartpole{stepLimit: stepLimit, start: start, space: space}, nil
}

// Reset starts a new episode with every state feature drawn uniformly
// from (-0.05, 0.05).
func (c *Cartpole) Reset() (environment.Observation, error) {
	c.state = State{
		X:        c.start.Rand(),
		XDot:     c.start.Rand(),
		Theta:    c.start.Rand(),
		ThetaDot: c.start.Rand(),
	}
	c.steps = 0
	return c.state, nil
}

// Step applies the force given by action to the cart for one time
// step.
func (c *Cartpole) Step(action int) (environment.Observation, float64,
	bool, error) {
	if !c.space.Contains(action) {
		return nil, 0, false, fmt.Errorf("step: illegal action %v",
			action)
	}

	x, xDot := c.state.X, c.state.XDot
	th, thDot := c.state.Theta, c.state.ThetaDot

	// Magnify the action force in the appropriate direction
	var force float64
	switch action {
	case Left:
		force = -ForceMag
	case Right:
		force = ForceMag
	}

	// Calculate physical variables to determine the next state
	cosTheta := math.Cos(th)
	sinTheta := math.Sin(th)
	poleMassOverLength := PoleMass / HalfPoleLength

	temp := (force + poleMassOverLength*thDot*thDot*sinTheta) / TotalMass
	thAcc := (Gravity*sinTheta - cosTheta*temp) / (HalfPoleLength *
		(4.0/3.0 - PoleMass*cosTheta*cosTheta/TotalMass))
	xAcc := temp - poleMassOverLength*thAcc*cosTheta/TotalMass

	// Update state variables using Euler kinematic integration
	x += Dt * xDot
	x = floatutils.Clip(x, -PositionBounds, PositionBounds)
	xDot += Dt * xAcc
	th += Dt * thDot
	thDot += Dt * thAcc

	c.state = State{x, xDot, th, thDot}
	c.steps++

	reward := 1.0
	done := false
	if math.Abs(th) > FailAngle || math.Abs(x) > FailPosition {
		reward = -1.0
		done = true
	} else if c.steps >= c.stepLimit {
		done = true
	}

	return c.state, reward, done, nil
}

// ActionSpace returns the space of legal actions in the environment.
func (c *Cartpole) ActionSpace() *environment.Discrete {
	return c.space
}

// Close releases the environment's resources. A Cartpole holds no
// external resources, so Close never fails.
func (c *Cartpole) Close() error {
	return nil
}

func (c *Cartpole) String() string {
	msg := "Cartpole  |  Position: %v  | Speed: %v  |  Angle: %v" +
		"  |  Angular Velocity: %v"

	return fmt.Sprintf(msg, c.state.X, c.state.XDot, c.state.Theta,
		c.state.ThetaDot)
}

// Render draws the cart's position along the track to standard
// output, marking the cart with the direction of the pole's lean.
func (c *Cartpole) Render() {
	const width = 41

	offset := (c.state.X + FailPosition) / (2 * FailPosition)
	cell := int(floatutils.Clip(offset*(width-1), 0, width-1))

	track := []byte(strings.Repeat("-", width))
	switch {
	case c.state.Theta > 0.02:
		track[cell] = '/'
	case c.state.Theta < -0.02:
		track[cell] = '\\'
	default:
		track[cell] = '|'
	}
	fmt.Printf("[%s]\n", track)
}

// Frame draws the cart and pole as an image for episode video
// recording.
func (c *Cartpole) Frame() image.Image {
	const width, height = 320, 240
	const poleLength = 60.0

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	trackY := float64(height) * 0.75
	dc.SetRGB(0, 0, 0)
	dc.DrawLine(0, trackY, float64(width), trackY)
	dc.Stroke()

	scale := float64(width) / (2 * PositionBounds)
	cartX := float64(width)/2 + c.state.X*scale
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.DrawRectangle(cartX-20, trackY-12, 40, 12)
	dc.Fill()

	topX := cartX + poleLength*math.Sin(c.state.Theta)
	topY := (trackY - 12) - poleLength*math.Cos(c.state.Theta)
	dc.SetRGB(0.8, 0.5, 0.2)
	dc.SetLineWidth(4)
	dc.DrawLine(cartX, trackY-12, topX, topY)
	dc.Stroke()

	return dc.Image()
}
