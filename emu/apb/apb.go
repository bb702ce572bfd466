/*
 * GCDAPB - APB register wrapper.
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

package apb

import (
	"errors"
	"fmt"
	"strings"

	D "github.com/rcornwell/GCDAPB/emu/device"
	"github.com/rcornwell/GCDAPB/emu/gcd"
	debug "github.com/rcornwell/GCDAPB/util/debug"
	hex "github.com/rcornwell/GCDAPB/util/hex"
)

// Register index.
const (
	RegControl = iota
	RegStatus
	RegDataIn
	RegDataOut
	NumRegs
)

// Byte offsets of registers.
const (
	OffControl uint32 = RegControl << 2
	OffStatus  uint32 = RegStatus << 2
	OffDataIn  uint32 = RegDataIn << 2
	OffDataOut uint32 = RegDataOut << 2
)

// Control register bits.
const (
	CtrlEnable     uint32 = 1 << iota // Engine out of reset.
	CtrlIntrEnable                    // Interrupt enabled.
	CtrlIntrEdge                      // Edge triggered interrupt.
)

// Status register bits.
const (
	StatusReady uint32 = 1 << iota // Engine can accept operands.
	StatusValid                    // Result available.
)

const DefaultAddrWidth = 8

// Bus state machine states.
type State int

const (
	StateIdle State = iota
	StateWrite
	StateRead
	StateFinish
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateWrite:
		return "WRITE"
	case StateRead:
		return "READ"
	case StateFinish:
		return "FINISH"
	}
	return fmt.Sprintf("STATE(%d)", int(s))
}

var regName = [NumRegs]string{"CONTROL", "STATUS", "DATA_IN", "DATA_OUT"}

const (
	debugBus = 1 << iota
	debugReg
	debugIntr
)

var debugOption = map[string]int{
	"BUS":  debugBus,
	"REG":  debugReg,
	"INTR": debugIntr,
}

var debugMsk int

// APB slave wrapping a GCD engine.
type Wrapper struct {
	state     State
	regs      [NumRegs]uint32
	rdata     uint32 // Read data latch.
	ready     bool   // Wait state marker.
	inValid   bool   // Input valid pulse to engine.
	outReady  bool   // Output ready pulse to engine.
	validPrev bool   // Engine valid one cycle ago.
	intr      bool   // Interrupt line, no storage.
	addrMask  uint32
	engine    *gcd.Engine
	cycle     uint64
}

// Create wrapper around engine, addrWidth is number of address bits decoded.
func New(engine *gcd.Engine, addrWidth int) *Wrapper {
	if addrWidth < 3 || addrWidth > 32 {
		addrWidth = DefaultAddrWidth
	}
	w := &Wrapper{
		engine:   engine,
		addrMask: uint32((uint64(1) << addrWidth) - 1),
	}
	w.reset()
	w.derive()
	return w
}

func (w *Wrapper) reset() {
	w.state = StateIdle
	w.regs[RegControl] = 0
	w.regs[RegDataIn] = 0
	w.rdata = 0
	w.ready = false
	w.inValid = false
	w.outReady = false
	w.validPrev = false
}

// Recompute status, data out and interrupt from engine.
func (w *Wrapper) derive() {
	status := uint32(0)
	if w.engine.Ready() {
		status |= StatusReady
	}
	valid := w.engine.Valid()
	if valid {
		status |= StatusValid
	}
	w.regs[RegStatus] = status
	w.regs[RegDataOut] = uint32(w.engine.Result())

	control := w.regs[RegControl]
	intr := false
	if (control & CtrlIntrEnable) != 0 {
		if (control & CtrlIntrEdge) != 0 {
			intr = valid && !w.validPrev
		} else {
			intr = valid
		}
	}
	if intr != w.intr {
		debug.DebugCyclef("APB", w.cycle, debugMsk, debugIntr, "interrupt %t", intr)
	}
	w.intr = intr
}

// Decode register index, returns false if out of range.
func (w *Wrapper) index(addr uint32) (int, bool) {
	idx := (addr & w.addrMask) >> 2
	if idx >= NumRegs {
		return 0, false
	}
	return int(idx), true
}

// Advance wrapper and engine by one clock edge. rstN is the active low
// system reset, req the bus signals driven during the cycle.
func (w *Wrapper) Step(rstN bool, req D.Request) {
	w.cycle++

	// Values registered on the previous edge.
	engineIn := gcd.Inputs{
		ResetN:   rstN && (w.regs[RegControl]&CtrlEnable) != 0,
		InValid:  w.inValid,
		A:        uint8(w.regs[RegDataIn] >> 8),
		B:        uint8(w.regs[RegDataIn]),
		OutReady: w.outReady,
	}
	valid := w.engine.Valid()

	if !rstN {
		w.reset()
	} else {
		w.busStep(req)
		w.validPrev = valid
	}
	w.engine.Step(engineIn)
	w.derive()
}

// Bus state machine.
func (w *Wrapper) busStep(req D.Request) {
	w.inValid = false
	w.outReady = false
	old := w.state

	switch w.state {
	case StateIdle:
		w.ready = false
		if req.Sel {
			if req.Write {
				w.state = StateWrite
			} else {
				w.state = StateRead
			}
		}

	case StateWrite:
		if req.Sel && req.Enable && req.Write {
			if idx, ok := w.index(req.Addr); ok {
				switch idx {
				case RegControl:
					w.regs[RegControl] = req.WData
					debug.DebugCyclef("APB", w.cycle, debugMsk, debugReg, "CONTROL <- %08x", req.WData)
				case RegDataIn:
					w.regs[RegDataIn] = req.WData
					w.inValid = true
					debug.DebugCyclef("APB", w.cycle, debugMsk, debugReg, "DATA_IN <- %08x", req.WData)
				}
			}
			w.ready = true
		}
		w.state = StateFinish

	case StateRead:
		if req.Sel && req.Enable && !req.Write {
			w.rdata = 0
			if idx, ok := w.index(req.Addr); ok {
				w.rdata = w.regs[idx]
				if idx == RegDataOut {
					w.outReady = true
				}
				debug.DebugCyclef("APB", w.cycle, debugMsk, debugReg, "%s -> %08x", regName[idx], w.rdata)
			}
			w.ready = true
		}
		w.state = StateFinish

	case StateFinish:
		w.ready = false
		w.state = StateIdle
	}

	if old != w.state {
		debug.DebugCyclef("APB", w.cycle, debugMsk, debugBus, "%s -> %s", old, w.state)
	}
}

// Current bus outputs.
func (w *Wrapper) Response() D.Response {
	return D.Response{RData: w.rdata, Ready: w.ready}
}

// Interrupt output.
func (w *Wrapper) Interrupt() bool {
	return w.intr
}

// Current register value, index 0 to 3.
func (w *Wrapper) Register(idx int) uint32 {
	if idx < 0 || idx >= NumRegs {
		return 0
	}
	return w.regs[idx]
}

// Bus state.
func (w *Wrapper) State() State {
	return w.state
}

// Engine attached to wrapper.
func (w *Wrapper) Engine() *gcd.Engine {
	return w.engine
}

// Name of device.
func (w *Wrapper) Name() string {
	return "APB"
}

// Show register file.
func (w *Wrapper) Show() string {
	var str strings.Builder
	str.WriteString("APB state=" + w.state.String() + " ")
	for i := range NumRegs {
		str.WriteString(regName[i] + "=")
		hex.FormatWord(&str, w.regs[i:i+1])
	}
	str.WriteString("RDATA=")
	hex.FormatWord(&str, []uint32{w.rdata})
	str.WriteString(fmt.Sprintf("READY=%t INTR=%t", w.ready, w.intr))
	return str.String()
}

// Enable debug option.
func Debug(opt string) error {
	flag, ok := debugOption[opt]
	if !ok {
		return errors.New("apb debug option invalid: " + opt)
	}
	debugMsk |= flag
	return nil
}
