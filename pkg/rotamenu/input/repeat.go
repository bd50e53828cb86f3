package input

import (
	"time"
)

// Direction is a turn of the encoder knob.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionClockwise
	DirectionCounterClockwise
)

// Clicks returns the signed detent count of one step in direction d.
func (d Direction) Clicks() int {
	switch d {
	case DirectionClockwise:
		return 1
	case DirectionCounterClockwise:
		return -1
	default:
		return 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirectionClockwise:
		return "cw"
	case DirectionCounterClockwise:
		return "ccw"
	default:
		return ""
	}
}

// Repeater turns a held key into a stream of encoder steps, the way a
// keyboard repeats: one step on press, then after a delay one step per
// interval until release. Hosts without a real encoder use it to drive
// an Encoder from arrow keys.
type Repeater struct {
	held           Direction
	lastRepeatTime time.Time
	repeatDelay    time.Duration
	repeatInterval time.Duration
	hasRepeated    bool
	now            func() time.Time
}

// NewRepeater creates a Repeater with default timing.
// Default delay is 300ms before first repeat, then 50ms between repeats.
func NewRepeater() Repeater {
	return NewRepeaterWithTiming(300*time.Millisecond, 50*time.Millisecond)
}

// NewRepeaterWithTiming creates a Repeater with custom timing.
func NewRepeaterWithTiming(delay, interval time.Duration) Repeater {
	return Repeater{
		repeatDelay:    delay,
		repeatInterval: interval,
		lastRepeatTime: time.Now(),
		now:            time.Now,
	}
}

// SetHeld records a key press or release. A press returns the direction
// so the caller can apply the first step immediately; a release of a key
// other than the held one is ignored.
func (r *Repeater) SetHeld(d Direction, held bool) Direction {
	if !held {
		if r.held == d {
			r.held = DirectionNone
			r.hasRepeated = false
		}
		return DirectionNone
	}
	r.held = d
	r.hasRepeated = false
	r.lastRepeatTime = r.clock()
	return d
}

// IsHeld returns true if a direction is currently held.
func (r *Repeater) IsHeld() bool {
	return r.held != DirectionNone
}

// Update checks if a repeat should fire. Call it every frame.
// The first repeat occurs after the delay, later ones after the interval.
func (r *Repeater) Update() Direction {
	now := r.clock()
	if !r.IsHeld() {
		r.lastRepeatTime = now
		r.hasRepeated = false
		return DirectionNone
	}

	threshold := r.repeatInterval
	if !r.hasRepeated {
		threshold = r.repeatDelay
	}

	if now.Sub(r.lastRepeatTime) >= threshold {
		r.lastRepeatTime = now
		r.hasRepeated = true
		return r.held
	}
	return DirectionNone
}

// Reset releases any held direction.
func (r *Repeater) Reset() {
	r.held = DirectionNone
	r.hasRepeated = false
	r.lastRepeatTime = r.clock()
}

func (r *Repeater) clock() time.Time {
	if r.now == nil {
		return time.Now()
	}
	return r.now()
}
