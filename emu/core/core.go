/*
 * GCDAPB - Simulation core.
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

package core

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rcornwell/GCDAPB/config/simconfig"
	"github.com/rcornwell/GCDAPB/emu/driver"
	"github.com/rcornwell/GCDAPB/emu/master"
	"github.com/rcornwell/GCDAPB/emu/sim"
	"github.com/rcornwell/GCDAPB/emu/timer"
)

var ErrStopped = errors.New("simulator stopped")

type Core struct {
	wg      sync.WaitGroup
	done    chan struct{} // Signal to shutdown simulator.
	running bool          // Indicate when clock is free running.
	Master  chan master.Packet
	ctx     *sim.Context
	drv     *driver.Driver
	timer   *timer.Timer
}

// Create simulator from settings.
func NewCore(master chan master.Packet, cfg simconfig.Settings) *Core {
	ctx := sim.New(cfg.AddrWidth)
	drv := driver.New(ctx, cfg.Base)
	drv.Control = cfg.Control
	drv.Poll = cfg.Poll
	drv.Timeout = cfg.Timeout
	return &Core{
		Master: master,
		done:   make(chan struct{}),
		ctx:    ctx,
		drv:    drv,
		timer:  timer.NewTimer(master, cfg.Clock),
	}
}

// Run simulation until stopped.
func (core *Core) Start() {
	core.wg.Add(1)
	defer core.wg.Done()
	core.ctx.Reset()
	for {
		select {
		case <-core.done:
			return
		case packet := <-core.Master:
			core.processPacket(packet)
		}
	}
}

// Stop a running simulator.
func (core *Core) Stop() {
	slog.Info("Shutting down simulator")
	core.timer.Shutdown()
	close(core.done)
	done := make(chan struct{})
	go func() {
		core.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for simulator to finish.")
		return
	}
}

// Send packet and wait for reply.
func (core *Core) send(packet master.Packet) master.Reply {
	packet.Reply = make(chan master.Reply, 1)
	select {
	case <-core.done:
		return master.Reply{Err: ErrStopped}
	default:
	}
	select {
	case core.Master <- packet:
	case <-core.done:
		return master.Reply{Err: ErrStopped}
	}
	select {
	case reply := <-packet.Reply:
		return reply
	case <-core.done:
		return master.Reply{Err: ErrStopped}
	}
}

// Start free running clock.
func (core *Core) SendStart() {
	core.send(master.Packet{Msg: master.Start})
}

// Stop free running clock.
func (core *Core) SendStop() uint64 {
	return core.send(master.Packet{Msg: master.Stop}).Cycles
}

// Advance n cycles, return cycle count.
func (core *Core) Step(n int) uint64 {
	return core.send(master.Packet{Msg: master.Step, Count: n}).Cycles
}

// Pulse system reset.
func (core *Core) Reset() {
	core.send(master.Packet{Msg: master.Reset})
}

// Bus read of register at offset.
func (core *Core) Read(offset uint32) (uint32, error) {
	reply := core.send(master.Packet{Msg: master.Read, Addr: offset})
	return reply.Data, reply.Err
}

// Bus write of register at offset.
func (core *Core) Write(offset uint32, data uint32) error {
	return core.send(master.Packet{Msg: master.Write, Addr: offset, Data: data}).Err
}

// Run driver sequence.
func (core *Core) Compute(a, b uint8) (uint8, uint64, error) {
	reply := core.send(master.Packet{Msg: master.Compute, A: a, B: b})
	return uint8(reply.Data), reply.Cycles, reply.Err
}

// Return state of named device, or all devices if name is empty.
func (core *Core) Show(name string) (string, error) {
	reply := core.send(master.Packet{Msg: master.Show, Name: name})
	return reply.Text, reply.Err
}

// Process a packet sent to system simulation.
func (core *Core) processPacket(packet master.Packet) {
	reply := master.Reply{}
	switch packet.Msg {
	case master.Start:
		if !core.running {
			core.running = true
			core.timer.Start()
		}
	case master.Stop:
		if core.running {
			core.running = false
			core.timer.Stop()
		}
	case master.TimeClock:
		if core.running {
			core.ctx.Tick()
		}
	case master.Step:
		core.ctx.Run(packet.Count)
	case master.Reset:
		core.ctx.Reset()
	case master.Read:
		reply.Data, reply.Err = core.drv.Read(packet.Addr)
	case master.Write:
		reply.Err = core.drv.Write(packet.Addr, packet.Data)
	case master.Compute:
		var res driver.Result
		res, reply.Err = core.drv.Compute(packet.A, packet.B)
		reply.Data = uint32(res.Value)
		reply.Cycles = res.Cycles
		if reply.Err != nil {
			slog.Error("compute failed", "a", packet.A, "b", packet.B, "error", reply.Err)
		}
	case master.Show:
		reply.Text, reply.Err = core.show(packet.Name)
	}
	if packet.Msg != master.Compute {
		reply.Cycles = core.ctx.Cycle()
	}
	if packet.Reply != nil {
		packet.Reply <- reply
	}
}

// Format device state.
func (core *Core) show(name string) (string, error) {
	if name == "" || name == "all" {
		return core.ctx.Show(), nil
	}
	for _, dev := range core.ctx.Devices() {
		if strings.EqualFold(dev.Name(), name) {
			return dev.Show(), nil
		}
	}
	return "", errors.New("unknown device: " + name)
}
