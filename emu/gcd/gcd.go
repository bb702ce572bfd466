/*
 * GCDAPB - GCD engine.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package gcd

import (
	"errors"
	"fmt"

	debug "github.com/rcornwell/GCDAPB/util/debug"
)

// Engine states.
type State int

const (
	StateIdle State = iota
	StateIterate
	StateRead
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateIterate:
		return "ITERATE"
	case StateRead:
		return "READ"
	}
	return fmt.Sprintf("STATE(%d)", int(s))
}

const (
	debugState = 1 << iota
	debugData
)

var debugOption = map[string]int{
	"STATE": debugState,
	"DATA":  debugData,
}

var debugMsk int

// Input signals sampled on each clock edge.
type Inputs struct {
	ResetN   bool  // Active low synchronous reset.
	InValid  bool  // Producer has operands.
	A        uint8 // Operand a.
	B        uint8 // Operand b.
	OutReady bool  // Consumer took result.
}

// Subtractive GCD engine with valid/ready handshakes on both sides.
type Engine struct {
	state  State
	a      uint8
	b      uint8
	result uint8
	ready  bool
	valid  bool
	cycle  uint64 // Edges seen, only used for tracing.
}

// Create engine in reset state.
func New() *Engine {
	e := &Engine{}
	e.reset()
	return e
}

func (e *Engine) reset() {
	e.state = StateIdle
	e.a = 0
	e.b = 0
	e.result = 0
	e.ready = false
	e.valid = false
}

// Advance engine by one clock edge.
func (e *Engine) Step(in Inputs) {
	e.cycle++
	if !in.ResetN {
		if e.state != StateIdle || e.ready || e.valid {
			debug.DebugCyclef("GCD", e.cycle, debugMsk, debugState, "reset")
		}
		e.reset()
		return
	}

	switch e.state {
	case StateIdle:
		if in.InValid && e.ready {
			e.a = in.A
			e.b = in.B
			e.ready = false
			e.state = StateIterate
			debug.DebugCyclef("GCD", e.cycle, debugMsk, debugData, "load a=%d b=%d", e.a, e.b)
			debug.DebugCyclef("GCD", e.cycle, debugMsk, debugState, "IDLE -> ITERATE")
			return
		}
		e.ready = true

	case StateIterate:
		switch {
		case e.b == 0:
			e.result = e.a
			e.valid = true
			e.state = StateRead
		case e.a == 0:
			e.result = e.b
			e.valid = true
			e.state = StateRead
		case e.a > e.b:
			e.a -= e.b
		default:
			e.b -= e.a
		}
		if e.state == StateRead {
			debug.DebugCyclef("GCD", e.cycle, debugMsk, debugData, "result=%d", e.result)
			debug.DebugCyclef("GCD", e.cycle, debugMsk, debugState, "ITERATE -> READ")
		} else {
			debug.DebugCyclef("GCD", e.cycle, debugMsk, debugData, "a=%d b=%d", e.a, e.b)
		}

	case StateRead:
		if in.OutReady {
			e.valid = false
			e.ready = true
			e.state = StateIdle
			debug.DebugCyclef("GCD", e.cycle, debugMsk, debugState, "READ -> IDLE")
		}
	}
}

// Engine can accept operands.
func (e *Engine) Ready() bool {
	return e.ready
}

// Result is available.
func (e *Engine) Valid() bool {
	return e.valid
}

// Result register.
func (e *Engine) Result() uint8 {
	return e.result
}

// Current state.
func (e *Engine) State() State {
	return e.state
}

// Working operand registers.
func (e *Engine) Operands() (uint8, uint8) {
	return e.a, e.b
}

// Name of device.
func (e *Engine) Name() string {
	return "GCD"
}

// Show engine registers.
func (e *Engine) Show() string {
	return fmt.Sprintf("GCD state=%s a=%d b=%d result=%d ready=%t valid=%t",
		e.state, e.a, e.b, e.result, e.ready, e.valid)
}

// Enable debug option.
func Debug(opt string) error {
	flag, ok := debugOption[opt]
	if !ok {
		return errors.New("gcd debug option invalid: " + opt)
	}
	debugMsk |= flag
	return nil
}
