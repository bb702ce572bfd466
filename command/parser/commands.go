/*
 * GCDAPB - Console commands.
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

package parser

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	command "github.com/rcornwell/GCDAPB/command/command"
)

var cmdList []cmd

func init() {
	cmdList = []cmd{
		{Name: "write", Min: 1, Help: "write <reg|offset> <hex> - bus write", Process: write, Complete: registerComplete},
		{Name: "read", Min: 2, Help: "read <reg|offset> - bus read", Process: read, Complete: registerComplete},
		{Name: "gcd", Min: 1, Help: "gcd <a> <b> - run driver sequence", Process: compute},
		{Name: "step", Min: 3, Help: "step [n] - advance clock n cycles", Process: step},
		{Name: "start", Min: 3, Help: "start - free run clock", Process: start},
		{Name: "stop", Min: 3, Help: "stop - stop clock", Process: stop},
		{Name: "reset", Min: 3, Help: "reset - pulse system reset", Process: reset},
		{Name: "show", Min: 2, Help: "show [all|apb|gcd] - display state", Process: show, Complete: showComplete},
		{Name: "help", Min: 1, Help: "help - list commands", Process: help},
		{Name: "quit", Min: 4, Help: "quit - exit simulator", Process: quit},
	}
}

// Handle bus write.
func write(line *cmdLine, sim command.Simulator, out io.Writer) (bool, error) {
	slog.Debug("Command Write")
	offset, err := line.getRegister()
	if err != nil {
		return false, err
	}
	data, err := line.getHex()
	if err != nil {
		return false, errors.New("write requires hex data")
	}
	if err = line.checkEOL(); err != nil {
		return false, err
	}
	if err = sim.Write(offset, data); err != nil {
		return false, err
	}
	fmt.Fprintf(out, "%02x <- %08x\n", offset, data)
	return false, nil
}

// Handle bus read.
func read(line *cmdLine, sim command.Simulator, out io.Writer) (bool, error) {
	slog.Debug("Command Read")
	offset, err := line.getRegister()
	if err != nil {
		return false, err
	}
	if err = line.checkEOL(); err != nil {
		return false, err
	}
	data, err := sim.Read(offset)
	if err != nil {
		return false, err
	}
	fmt.Fprintf(out, "%02x -> %08x\n", offset, data)
	return false, nil
}

// Run full driver sequence.
func compute(line *cmdLine, sim command.Simulator, out io.Writer) (bool, error) {
	slog.Debug("Command GCD")
	a, err := line.getNumber()
	if err != nil || a > 255 {
		return false, errors.New("gcd operand a must be 0 to 255")
	}
	b, err := line.getNumber()
	if err != nil || b > 255 {
		return false, errors.New("gcd operand b must be 0 to 255")
	}
	if err = line.checkEOL(); err != nil {
		return false, err
	}
	result, cycles, err := sim.Compute(uint8(a), uint8(b))
	if err != nil {
		return false, err
	}
	fmt.Fprintf(out, "gcd(%d, %d) = %d in %d cycles\n", a, b, result, cycles)
	return false, nil
}

// Advance clock.
func step(line *cmdLine, sim command.Simulator, out io.Writer) (bool, error) {
	slog.Debug("Command Step")
	n := uint32(1)
	line.skipSpace()
	if !line.isEOL() {
		var err error
		n, err = line.getNumber()
		if err != nil || n == 0 {
			return false, errors.New("step count must be a positive number")
		}
	}
	cycle := sim.Step(int(n))
	fmt.Fprintf(out, "cycle %d\n", cycle)
	return false, nil
}

// Start free running clock.
func start(line *cmdLine, sim command.Simulator, _ io.Writer) (bool, error) {
	slog.Debug("Command Start")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	sim.SendStart()
	return false, nil
}

// Stop free running clock.
func stop(line *cmdLine, sim command.Simulator, out io.Writer) (bool, error) {
	slog.Debug("Command Stop")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	fmt.Fprintf(out, "stopped at cycle %d\n", sim.SendStop())
	return false, nil
}

// Pulse reset.
func reset(line *cmdLine, sim command.Simulator, _ io.Writer) (bool, error) {
	slog.Debug("Command Reset")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	sim.Reset()
	return false, nil
}

// Display device state.
func show(line *cmdLine, sim command.Simulator, out io.Writer) (bool, error) {
	slog.Debug("Command Show")
	name := line.getWord()
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	text, err := sim.Show(name)
	if err != nil {
		return false, err
	}
	fmt.Fprintln(out, text)
	return false, nil
}

// List commands.
func help(_ *cmdLine, _ command.Simulator, out io.Writer) (bool, error) {
	for _, c := range cmdList {
		fmt.Fprintln(out, "  "+c.Help)
	}
	return false, nil
}

// Handle commands that quit simulation.
func quit(_ *cmdLine, _ command.Simulator, _ io.Writer) (bool, error) {
	slog.Debug("Command Quit")
	return true, nil
}
