/*
 * GCDAPB - Simulation context tests.
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

package sim

import (
	"strings"
	"testing"

	"github.com/rcornwell/GCDAPB/emu/apb"
	D "github.com/rcornwell/GCDAPB/emu/device"
	"github.com/rcornwell/GCDAPB/emu/gcd"
)

// Drive one complete write transfer.
func write(ctx *Context, addr, data uint32) {
	req := D.Request{Sel: true, Write: true, Addr: addr, WData: data}
	ctx.Drive(req)
	ctx.Tick()
	req.Enable = true
	ctx.Drive(req)
	ctx.Tick()
	ctx.Drive(D.Request{})
	ctx.Tick()
}

// Cycle counter and events advance together.
func TestTickEvents(t *testing.T) {
	ctx := New(apb.DefaultAddrWidth)
	fired := uint64(0)
	ctx.Events.AddEvent(ctx, func(_ int) {
		fired = ctx.Cycle()
	}, 5, 0)
	ctx.Run(10)
	if ctx.Cycle() != 10 {
		t.Errorf("Cycle count not correct got: %d expected: %d", ctx.Cycle(), 10)
	}
	if fired != 5 {
		t.Errorf("Event fired at wrong cycle got: %d expected: %d", fired, 5)
	}
}

// Reset clears registers and releases after one cycle.
func TestReset(t *testing.T) {
	ctx := New(apb.DefaultAddrWidth)
	write(ctx, apb.OffControl, apb.CtrlEnable)
	if ctx.Wrapper.Register(apb.RegControl) != apb.CtrlEnable {
		t.Fatalf("Control not written")
	}
	ctx.Drive(D.Request{Sel: true})
	ctx.Reset()
	if ctx.Wrapper.Register(apb.RegControl) != 0 {
		t.Errorf("Reset did not clear control")
	}
	if ctx.Request() != (D.Request{}) {
		t.Errorf("Reset did not release bus")
	}
	cycle := ctx.Cycle()
	ctx.Tick()
	if ctx.Cycle() != cycle+1 {
		t.Errorf("Clock did not advance after reset")
	}
}

// Interrupt observers are called while line high.
func TestInterruptObserver(t *testing.T) {
	ctx := New(apb.DefaultAddrWidth)
	calls := 0
	first := uint64(0)
	ctx.OnInterrupt(func(cycle uint64) {
		if calls == 0 {
			first = cycle
		}
		calls++
	})
	write(ctx, apb.OffControl, apb.CtrlEnable|apb.CtrlIntrEnable|apb.CtrlIntrEdge)
	write(ctx, apb.OffDataIn, 3<<8|9)
	for range 20 {
		ctx.Tick()
		if ctx.Engine.Valid() && first == 0 {
			t.Errorf("Interrupt not observed on valid edge")
		}
	}
	if calls != 1 {
		t.Errorf("Edge interrupt observed %d times expected: 1", calls)
	}
	if ctx.Engine.State() != gcd.StateRead || ctx.Engine.Result() != 3 {
		t.Errorf("Engine not holding result: %s", ctx.Engine.Show())
	}
}

// Show lists both devices.
func TestShow(t *testing.T) {
	ctx := New(apb.DefaultAddrWidth)
	out := ctx.Show()
	for _, dev := range ctx.Devices() {
		if !strings.Contains(out, dev.Name()) {
			t.Errorf("Show missing device %s: %q", dev.Name(), out)
		}
	}
	if !strings.Contains(out, "cycle=0") {
		t.Errorf("Show missing cycle: %q", out)
	}
}
