/*
 * GCDAPB - APB register wrapper tests.
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
	"testing"

	D "github.com/rcornwell/GCDAPB/emu/device"
	"github.com/rcornwell/GCDAPB/emu/gcd"
)

// Create wrapper and hold it in reset for one cycle.
func newWrapper() *Wrapper {
	w := New(gcd.New(), DefaultAddrWidth)
	w.Step(false, D.Request{})
	return w
}

// Idle bus cycle.
func idle(w *Wrapper) {
	w.Step(true, D.Request{})
}

// Setup and access cycle, returns response after access edge.
func access(w *Wrapper, write bool, addr, data uint32) D.Response {
	req := D.Request{Sel: true, Write: write, Addr: addr, WData: data}
	w.Step(true, req)
	req.Enable = true
	w.Step(true, req)
	return w.Response()
}

// Full write including finish cycle.
func busWrite(t *testing.T, w *Wrapper, addr, data uint32) {
	t.Helper()
	if !access(w, true, addr, data).Ready {
		t.Fatalf("Write to %02x did not assert ready", addr)
	}
	idle(w)
}

// Full read including finish cycle.
func busRead(t *testing.T, w *Wrapper, addr uint32) uint32 {
	t.Helper()
	resp := access(w, false, addr, 0)
	if !resp.Ready {
		t.Fatalf("Read of %02x did not assert ready", addr)
	}
	idle(w)
	return resp.RData
}

// Control register can be written and read back.
func TestControlReadBack(t *testing.T) {
	w := newWrapper()
	busWrite(t, w, OffControl, 0x7)
	r := busRead(t, w, OffControl)
	if r != 0x7 {
		t.Errorf("Control not correct got: %x expected: %x", r, 0x7)
	}
	busWrite(t, w, OffDataIn, 0x0c12)
	r = busRead(t, w, OffDataIn)
	if r != 0x0c12 {
		t.Errorf("Data in not correct got: %x expected: %x", r, 0x0c12)
	}
}

// Bus state machine sequence and ready timing.
func TestBusSequence(t *testing.T) {
	w := newWrapper()
	req := D.Request{Sel: true, Write: true, Addr: OffControl, WData: 1}
	w.Step(true, req)
	if w.State() != StateWrite || w.Response().Ready {
		t.Errorf("Setup cycle not correct state: %s ready: %t", w.State(), w.Response().Ready)
	}
	req.Enable = true
	w.Step(true, req)
	if w.State() != StateFinish || !w.Response().Ready {
		t.Errorf("Access cycle not correct state: %s ready: %t", w.State(), w.Response().Ready)
	}
	// Master still holding signals while it samples ready.
	w.Step(true, req)
	if w.State() != StateIdle || w.Response().Ready {
		t.Errorf("Finish cycle not correct state: %s ready: %t", w.State(), w.Response().Ready)
	}
	if w.Register(RegControl) != 1 {
		t.Errorf("Control not written got: %x", w.Register(RegControl))
	}
}

// Select dropped before enable produces no access.
func TestMalformedSequence(t *testing.T) {
	w := newWrapper()
	w.Step(true, D.Request{Sel: true, Write: true, Addr: OffControl, WData: 3})
	w.Step(true, D.Request{Enable: true, Write: true, Addr: OffControl, WData: 3})
	if w.Response().Ready {
		t.Errorf("Ready asserted for malformed write")
	}
	if w.Register(RegControl) != 0 {
		t.Errorf("Malformed write changed control got: %x", w.Register(RegControl))
	}
	idle(w)
	if w.State() != StateIdle {
		t.Errorf("Bus did not return to idle got: %s", w.State())
	}

	// Write flag changed before enable.
	w.Step(true, D.Request{Sel: true, Write: true, Addr: OffControl, WData: 3})
	w.Step(true, D.Request{Sel: true, Enable: true, Addr: OffControl})
	if w.Response().Ready || w.Register(RegControl) != 0 {
		t.Errorf("Write completed as read")
	}
	idle(w)
}

// Writes out of range or to read only registers change nothing.
func TestRegisterNoOp(t *testing.T) {
	w := newWrapper()
	busWrite(t, w, OffControl, CtrlEnable)
	idle(w)
	var before [NumRegs]uint32
	for i := range NumRegs {
		before[i] = w.Register(i)
	}
	for _, addr := range []uint32{0x10, 0x14, 0x20, 0xfc, OffStatus, OffDataOut} {
		busWrite(t, w, addr, 0xffffffff)
		for i := range NumRegs {
			if w.Register(i) != before[i] {
				t.Errorf("Write to %02x changed register %d got: %x expected: %x", addr, i, w.Register(i), before[i])
			}
		}
	}
	if w.Engine().State() != gcd.StateIdle {
		t.Errorf("Engine started by no-op write")
	}
	r := busRead(t, w, 0x10)
	if r != 0 {
		t.Errorf("Read out of range not zero got: %x", r)
	}
}

// Address bits above width are ignored.
func TestAddressWidth(t *testing.T) {
	w := newWrapper()
	busWrite(t, w, 0x100|OffControl, 0x5)
	if w.Register(RegControl) != 0x5 {
		t.Errorf("Aliased write not decoded got: %x", w.Register(RegControl))
	}
	w = New(gcd.New(), 4)
	w.Step(false, D.Request{})
	busWrite(t, w, 0x10|OffDataIn, 0x0102)
	if w.Register(RegDataIn) != 0x0102 {
		t.Errorf("Four bit address did not wrap got: %x", w.Register(RegDataIn))
	}
}

// Engine held in reset until control bit 0 set.
func TestEngineReset(t *testing.T) {
	w := newWrapper()
	for range 5 {
		idle(w)
	}
	if (w.Register(RegStatus) & StatusReady) != 0 {
		t.Errorf("Engine ready while held in reset")
	}
	busWrite(t, w, OffControl, CtrlEnable)
	if (w.Register(RegStatus) & StatusReady) == 0 {
		t.Errorf("Engine not ready after enable")
	}
	busWrite(t, w, OffControl, 0)
	idle(w)
	if (w.Register(RegStatus) & StatusReady) != 0 {
		t.Errorf("Engine ready after disable")
	}
}

// Data in write reaches engine one cycle after enable.
func TestDataInPulse(t *testing.T) {
	w := newWrapper()
	busWrite(t, w, OffControl, CtrlEnable)
	resp := access(w, true, OffDataIn, 12<<8|18)
	if !resp.Ready {
		t.Fatalf("Data in write not ready")
	}
	if w.Engine().State() != gcd.StateIdle {
		t.Errorf("Engine saw valid on enable cycle")
	}
	idle(w)
	if w.Engine().State() != gcd.StateIterate {
		t.Errorf("Engine did not start one cycle after enable got: %s", w.Engine().State())
	}
	a, b := w.Engine().Operands()
	if a != 12 || b != 18 {
		t.Errorf("Engine operands not correct got: %d,%d expected: 12,18", a, b)
	}
	// Only one pulse.
	idle(w)
	idle(w)
	if (w.Register(RegStatus) & StatusReady) != 0 {
		t.Errorf("Engine ready during computation")
	}
}

// Run computation, calling check each cycle until valid seen, return cycles.
func runUntilValid(t *testing.T, w *Wrapper, check func()) int {
	t.Helper()
	for i := range 1000 {
		idle(w)
		check()
		if w.Engine().Valid() {
			return i
		}
	}
	t.Fatalf("Engine never valid")
	return 0
}

// Status valid follows engine and holds until data out read.
func TestStatusValid(t *testing.T) {
	w := newWrapper()
	busWrite(t, w, OffControl, CtrlEnable)
	busWrite(t, w, OffDataIn, 7<<8|13)
	runUntilValid(t, w, func() {
		valid := (w.Register(RegStatus) & StatusValid) != 0
		if valid != w.Engine().Valid() {
			t.Errorf("Status valid %t engine valid %t", valid, w.Engine().Valid())
		}
	})
	for range 20 {
		idle(w)
	}
	if (w.Register(RegStatus) & StatusValid) == 0 {
		t.Errorf("Status valid dropped before data out read")
	}
	if w.Register(RegDataOut) != 1 {
		t.Errorf("Data out not correct got: %d expected: 1", w.Register(RegDataOut))
	}
	if busRead(t, w, OffStatus) != StatusValid {
		t.Errorf("Status read not correct")
	}
	r := busRead(t, w, OffDataOut)
	if r != 1 {
		t.Errorf("Data out read not correct got: %d expected: 1", r)
	}
	idle(w)
	if (w.Register(RegStatus) & StatusValid) != 0 {
		t.Errorf("Status valid not cleared after data out read")
	}
	if (w.Register(RegStatus) & StatusReady) == 0 {
		t.Errorf("Status ready not set after data out read")
	}
}

// Level interrupt follows valid.
func TestInterruptLevel(t *testing.T) {
	w := newWrapper()
	busWrite(t, w, OffControl, CtrlEnable|CtrlIntrEnable)
	busWrite(t, w, OffDataIn, 12<<8|18)
	runUntilValid(t, w, func() {
		if w.Interrupt() != w.Engine().Valid() {
			t.Errorf("Level interrupt %t valid %t", w.Interrupt(), w.Engine().Valid())
		}
	})
	for range 10 {
		idle(w)
		if !w.Interrupt() {
			t.Errorf("Level interrupt dropped while valid")
		}
	}
	resp := access(w, false, OffDataOut, 0)
	if resp.RData != 6 {
		t.Errorf("Result not correct got: %d expected: 6", resp.RData)
	}
	for range 4 {
		idle(w)
		if w.Interrupt() != w.Engine().Valid() {
			t.Errorf("Level interrupt %t valid %t", w.Interrupt(), w.Engine().Valid())
		}
	}
	if w.Interrupt() {
		t.Errorf("Level interrupt still asserted after read")
	}
}

// Edge interrupt pulses once per computation.
func TestInterruptEdge(t *testing.T) {
	w := newWrapper()
	busWrite(t, w, OffControl, CtrlEnable|CtrlIntrEnable|CtrlIntrEdge)
	for pass := range 2 {
		busWrite(t, w, OffDataIn, 12<<8|18)
		pulses := 0
		runUntilValid(t, w, func() {
			if w.Interrupt() {
				pulses++
				if !w.Engine().Valid() {
					t.Errorf("Edge interrupt before valid")
				}
			}
		})
		if !w.Interrupt() {
			t.Errorf("Edge interrupt not asserted on valid rising edge")
		}
		for range 10 {
			idle(w)
			if w.Interrupt() {
				pulses++
			}
		}
		if pulses != 1 {
			t.Errorf("Pass %d edge interrupt pulses got: %d expected: 1", pass, pulses)
		}
		busRead(t, w, OffDataOut)
		idle(w)
	}
}

// Interrupt disabled never asserts.
func TestInterruptDisabled(t *testing.T) {
	w := newWrapper()
	busWrite(t, w, OffControl, CtrlEnable|CtrlIntrEdge)
	busWrite(t, w, OffDataIn, 5<<8|10)
	runUntilValid(t, w, func() {})
	for range 5 {
		idle(w)
		if w.Interrupt() {
			t.Errorf("Interrupt asserted while disabled")
		}
	}
}

// System reset clears writable registers.
func TestSystemReset(t *testing.T) {
	w := newWrapper()
	busWrite(t, w, OffControl, 0x3)
	busWrite(t, w, OffDataIn, 0x1234)
	w.Step(false, D.Request{Sel: true, Enable: true, Write: true, Addr: OffControl, WData: 7})
	if w.Register(RegControl) != 0 || w.Register(RegDataIn) != 0 {
		t.Errorf("Reset did not clear registers: %s", w.Show())
	}
	if w.State() != StateIdle || w.Response().Ready {
		t.Errorf("Reset did not idle bus: %s", w.Show())
	}
	if w.Engine().State() != gcd.StateIdle {
		t.Errorf("Reset did not idle engine")
	}
}
