/*
 * GCDAPB - Clock pacing timer.
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

package timer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/rcornwell/GCDAPB/emu/master"
)

const DefaultRate = 1000

type Timer struct {
	wg       sync.WaitGroup
	running  bool // Indicate when simulator should run or not.
	master   chan master.Packet
	interval time.Duration
	enable   chan bool     // Enable or disable timer.
	done     chan struct{} // Stop timer task.
	ticker   *time.Ticker  // Regular timer intervale.
}

// Create clock pacing timer delivering rate pulses per second.
func NewTimer(masterChannel chan master.Packet, rate int) *Timer {
	if rate <= 0 {
		rate = DefaultRate
	}
	timer := &Timer{
		master:   masterChannel,
		interval: time.Second / time.Duration(rate),
		enable:   make(chan bool, 1),
		done:     make(chan struct{}),
	}
	if timer.interval <= 0 {
		timer.interval = time.Microsecond
	}
	// Run ticker to deliver regular commands on master channel.
	timer.wg.Add(1)
	go timer.run()
	return timer
}

// Start delivering clock pulses.
func (timer *Timer) Start() {
	timer.enable <- true
}

// Stop delivering clock pulses.
func (timer *Timer) Stop() {
	timer.enable <- false
}

// Shutdown a running timer.
func (timer *Timer) Shutdown() {
	close(timer.done)
	done := make(chan struct{})
	go func() {
		timer.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for timer to finish.")
		return
	}
}

// Timer routine to send clock pulses on master channel.
func (timer *Timer) run() {
	defer timer.wg.Done()
	timer.ticker = time.NewTicker(timer.interval)
	defer timer.ticker.Stop()
	timer.running = false

	for {
		select {
		case <-timer.ticker.C:
			if !timer.running {
				continue
			}
			select {
			case timer.master <- master.Packet{Msg: master.TimeClock}:
			case timer.running = <-timer.enable:
			case <-timer.done:
				return
			}
		case timer.running = <-timer.enable:
			if timer.running {
				timer.ticker.Reset(timer.interval)
			}
		case <-timer.done:
			return
		}
	}
}
