// Package input turns rotary-encoder pulses and button presses into the
// (clicks, pressed) pairs the menu consumes once per tick.
//
// Producers (an evdev reader goroutine, the simulator's event loop) call
// AddPulses and Press from any goroutine; the menu loop calls Poll.
package input

import (
	"go.uber.org/atomic"
)

// DefaultPulsesPerClick matches the common 4-pulse-per-detent encoders.
const DefaultPulsesPerClick = 4

// Encoder accumulates raw quadrature pulses and button presses between polls.
type Encoder struct {
	pulses         atomic.Int32
	presses        atomic.Int32
	pulsesPerClick int32
	reversed       bool
}

// NewEncoder returns an Encoder that reports one click per pulsesPerClick
// pulses. Values below 1 are treated as 1. reversed flips the direction.
func NewEncoder(pulsesPerClick int, reversed bool) *Encoder {
	if pulsesPerClick < 1 {
		pulsesPerClick = 1
	}
	return &Encoder{
		pulsesPerClick: int32(pulsesPerClick),
		reversed:       reversed,
	}
}

// AddPulses records n pulses; negative n is counter-clockwise.
func (e *Encoder) AddPulses(n int) {
	if e.reversed {
		n = -n
	}
	e.pulses.Add(int32(n))
}

// Press records one button press.
func (e *Encoder) Press() {
	e.presses.Inc()
}

// Poll returns the whole clicks accumulated since the last poll, keeping any
// partial detent for next time, and whether the button was pressed. Several
// presses between polls are reported one per poll.
func (e *Encoder) Poll() (clicks int, pressed bool) {
	for {
		p := e.pulses.Load()
		c := p / e.pulsesPerClick
		if c == 0 {
			break
		}
		if e.pulses.CompareAndSwap(p, p-c*e.pulsesPerClick) {
			clicks = int(c)
			break
		}
	}

	for {
		n := e.presses.Load()
		if n == 0 {
			break
		}
		if e.presses.CompareAndSwap(n, n-1) {
			pressed = true
			break
		}
	}
	return clicks, pressed
}

// Reset discards anything pending.
func (e *Encoder) Reset() {
	e.pulses.Store(0)
	e.presses.Store(0)
}
