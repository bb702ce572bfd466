/*
 * GCDAPB - Bus signal definitions.
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

package device

// Value used when no base address was given.
const NoAddr uint32 = 0xffffffff

// Signals driven by a bus master during one clock cycle.
type Request struct {
	Sel    bool   // Peripheral select.
	Enable bool   // Access phase.
	Write  bool   // Write when set, read when clear.
	Addr   uint32 // Byte address.
	WData  uint32 // Write data.
}

// Signals returned by a slave, valid after the clock edge.
type Response struct {
	RData uint32 // Read data latch.
	Ready bool   // Wait state marker.
}

// Interface for simulated blocks the console can display.
type Device interface {
	Name() string
	Show() string
}
