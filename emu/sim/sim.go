/*
 * GCDAPB - Simulation context.
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
	"errors"
	"fmt"

	"github.com/rcornwell/GCDAPB/emu/apb"
	D "github.com/rcornwell/GCDAPB/emu/device"
	"github.com/rcornwell/GCDAPB/emu/event"
	"github.com/rcornwell/GCDAPB/emu/gcd"
	debug "github.com/rcornwell/GCDAPB/util/debug"
)

const (
	debugTick = 1 << iota
	debugIrq
)

var debugOption = map[string]int{
	"TICK": debugTick,
	"IRQ":  debugIrq,
}

var debugMsk int

// Interrupt observer, called each cycle the line is high.
type IrqHandler = func(cycle uint64)

// Simulation context. Everything that changes on a clock edge lives here
// and is advanced by Tick.
type Context struct {
	Engine  *gcd.Engine
	Wrapper *apb.Wrapper
	Events  *event.List

	cycle   uint64
	resetN  bool      // System reset input, active low.
	bus     D.Request // Signals driven by bus master.
	irqHand []IrqHandler
}

// Create a new context with peripheral decoding addrWidth address bits.
func New(addrWidth int) *Context {
	engine := gcd.New()
	return &Context{
		Engine:  engine,
		Wrapper: apb.New(engine, addrWidth),
		Events:  event.NewList(),
		resetN:  true,
	}
}

// Set bus signals for following cycles.
func (ctx *Context) Drive(req D.Request) {
	ctx.bus = req
}

// Current bus signals.
func (ctx *Context) Request() D.Request {
	return ctx.bus
}

// Outputs of peripheral.
func (ctx *Context) Response() D.Response {
	return ctx.Wrapper.Response()
}

// Current state of interrupt line.
func (ctx *Context) Interrupt() bool {
	return ctx.Wrapper.Interrupt()
}

// Number of clock edges since creation.
func (ctx *Context) Cycle() uint64 {
	return ctx.cycle
}

// Register interrupt observer.
func (ctx *Context) OnInterrupt(fn IrqHandler) {
	ctx.irqHand = append(ctx.irqHand, fn)
}

// Advance simulation by one clock cycle.
func (ctx *Context) Tick() {
	ctx.Wrapper.Step(ctx.resetN, ctx.bus)
	ctx.cycle++
	debug.DebugCyclef("SIM", ctx.cycle, debugMsk, debugTick, "%s", ctx.Engine.Show())
	if ctx.Wrapper.Interrupt() {
		debug.DebugCyclef("SIM", ctx.cycle, debugMsk, debugIrq, "interrupt")
		for _, fn := range ctx.irqHand {
			fn(ctx.cycle)
		}
	}
	ctx.Events.Advance(1)
}

// Run n clock cycles.
func (ctx *Context) Run(n int) {
	for range n {
		ctx.Tick()
	}
}

// Hold reset for one cycle.
func (ctx *Context) Reset() {
	ctx.resetN = false
	ctx.bus = D.Request{}
	ctx.Tick()
	ctx.resetN = true
}

// Return devices in context.
func (ctx *Context) Devices() []D.Device {
	return []D.Device{ctx.Wrapper, ctx.Engine}
}

// Show state of all devices.
func (ctx *Context) Show() string {
	out := fmt.Sprintf("cycle=%d\n", ctx.cycle)
	for _, dev := range ctx.Devices() {
		out += dev.Show() + "\n"
	}
	return out
}

// Enable debug option.
func Debug(opt string) error {
	flag, ok := debugOption[opt]
	if !ok {
		return errors.New("sim debug option invalid: " + opt)
	}
	debugMsk |= flag
	return nil
}
