package sarsa

// LinearSchedule anneals a value linearly from a starting value to a
// final value over a horizon of observations. A schedule is a pure
// function of progress and holds no counter of its own: callers pass
// in how many observations have been taken and read off the annealed
// value.
type LinearSchedule struct {
	start   float64
	end     float64
	horizon int
}

// NewLinearSchedule returns a schedule annealing from start to end
// over horizon observations.
func NewLinearSchedule(start, end float64, horizon int) LinearSchedule {
	return LinearSchedule{start, end, horizon}
}

// Value returns the annealed value after progress observations.
// Progress 0 gives the starting value and progress equal to the
// horizon gives the final value. Values are not clamped, so progress
// beyond the horizon continues the line past the final value.
func (l LinearSchedule) Value(progress int) float64 {
	fraction := float64(progress) / float64(l.horizon)
	return l.start - (l.start-l.end)*fraction
}
