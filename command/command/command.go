/*
 * GCDAPB - Console command definitions.
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

package command

import "github.com/rcornwell/GCDAPB/emu/apb"

// Operations the console can perform on a simulator.
type Simulator interface {
	SendStart()                                // Free run clock.
	SendStop() uint64                          // Stop clock, return cycle.
	Step(n int) uint64                         // Run n cycles, return cycle.
	Reset()                                    // Pulse system reset.
	Read(offset uint32) (uint32, error)        // Bus read.
	Write(offset uint32, data uint32) error    // Bus write.
	Compute(a, b uint8) (uint8, uint64, error) // Run driver sequence.
	Show(name string) (string, error)          // Device state.
}

// Register names accepted in place of an offset.
var Registers = map[string]uint32{
	"control": apb.OffControl,
	"status":  apb.OffStatus,
	"datain":  apb.OffDataIn,
	"dataout": apb.OffDataOut,
}

// Devices accepted by show.
var Devices = []string{"all", "apb", "gcd"}
