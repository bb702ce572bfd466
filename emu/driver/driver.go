/*
 * GCDAPB - Bus driver model.
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

package driver

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rcornwell/GCDAPB/emu/apb"
	D "github.com/rcornwell/GCDAPB/emu/device"
	"github.com/rcornwell/GCDAPB/emu/sim"
)

const (
	DefaultTimeout = 10000
	DefaultPoll    = 1
)

// Returned when the peripheral does not respond within the timeout.
var ErrTimeout = errors.New("timeout waiting on peripheral")

// Firmware model issuing bus transfers against a simulation context.
type Driver struct {
	ctx      *sim.Context
	Base     uint32 // Base address of peripheral.
	Control  uint32 // Value written to control register by Compute.
	Timeout  int    // Cycles before a wait gives up.
	Poll     int    // Cycles between status polls.
	pollDue  bool
	intrSeen bool
}

// Result of a Compute sequence.
type Result struct {
	Value  uint8  // Value read from data out.
	Cycles uint64 // Cycles from first write to read.
}

// Create driver for peripheral at base.
func New(ctx *sim.Context, base uint32) *Driver {
	d := &Driver{
		ctx:     ctx,
		Base:    base,
		Control: apb.CtrlEnable | apb.CtrlIntrEnable,
		Timeout: DefaultTimeout,
		Poll:    DefaultPoll,
	}
	ctx.OnInterrupt(func(_ uint64) {
		d.intrSeen = true
	})
	return d
}

// Perform one transfer: setup cycle, access cycle, then wait for ready.
func (d *Driver) transfer(write bool, offset uint32, data uint32) (uint32, error) {
	req := D.Request{Sel: true, Write: write, Addr: d.Base + offset, WData: data}
	d.ctx.Drive(req)
	d.ctx.Tick()

	req.Enable = true
	d.ctx.Drive(req)
	for range d.Timeout {
		d.ctx.Tick()
		resp := d.ctx.Response()
		if resp.Ready {
			d.ctx.Drive(D.Request{})
			return resp.RData, nil
		}
	}
	d.ctx.Drive(D.Request{})
	return 0, fmt.Errorf("transfer at %08x: %w", d.Base+offset, ErrTimeout)
}

// Write a register.
func (d *Driver) Write(offset uint32, data uint32) error {
	_, err := d.transfer(true, offset, data)
	return err
}

// Read a register.
func (d *Driver) Read(offset uint32) (uint32, error) {
	return d.transfer(false, offset, 0)
}

// Called by event list when next poll is due.
func (d *Driver) pollCallback(_ int) {
	d.pollDue = true
}

// Poll status register until all bits in mask are set.
func (d *Driver) WaitStatus(mask uint32) error {
	start := d.ctx.Cycle()
	for {
		status, err := d.Read(apb.OffStatus)
		if err != nil {
			return err
		}
		if (status & mask) == mask {
			return nil
		}
		if d.ctx.Cycle()-start > uint64(d.Timeout) {
			return fmt.Errorf("status %02x waiting for %02x: %w", status, mask, ErrTimeout)
		}
		d.pollDue = false
		d.ctx.Events.AddEvent(d, d.pollCallback, d.Poll, 0)
		for !d.pollDue {
			d.ctx.Tick()
		}
	}
}

// Wait for interrupt line to be asserted.
func (d *Driver) WaitInterrupt() error {
	for range d.Timeout {
		if d.intrSeen || d.ctx.Interrupt() {
			d.intrSeen = false
			return nil
		}
		d.ctx.Tick()
	}
	return fmt.Errorf("interrupt: %w", ErrTimeout)
}

// Compute gcd of a and b with the peripheral.
func (d *Driver) Compute(a, b uint8) (Result, error) {
	start := d.ctx.Cycle()
	if err := d.Write(apb.OffControl, d.Control); err != nil {
		return Result{}, err
	}
	if err := d.WaitStatus(apb.StatusReady); err != nil {
		return Result{}, err
	}
	d.intrSeen = false
	if err := d.Write(apb.OffDataIn, uint32(a)<<8|uint32(b)); err != nil {
		return Result{}, err
	}

	var err error
	if (d.Control & apb.CtrlIntrEnable) != 0 {
		err = d.WaitInterrupt()
	} else {
		err = d.WaitStatus(apb.StatusValid)
	}
	if err != nil {
		return Result{}, err
	}

	value, err := d.Read(apb.OffDataOut)
	if err != nil {
		return Result{}, err
	}
	res := Result{Value: uint8(value), Cycles: d.ctx.Cycle() - start}
	slog.Debug("gcd computed", "a", a, "b", b, "result", res.Value, "cycles", res.Cycles)
	return res, nil
}
