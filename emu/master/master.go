/*
 * GCDAPB - Messages to simulation core.
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

package master

// Messages sent to the simulation core.
const (
	Start     = 1 + iota // Free run clock.
	Stop                 // Stop free running clock.
	TimeClock            // Timer tick while running.
	Step                 // Advance Count cycles.
	Reset                // Pulse system reset.
	Read                 // Bus read of Addr.
	Write                // Bus write of Data to Addr.
	Compute              // Run driver sequence on A and B.
	Show                 // Return state of devices.
)

// Reply returned on packet reply channel.
type Reply struct {
	Data   uint32 // Read data or result.
	Cycles uint64 // Cycle count after request.
	Text   string // Show output.
	Err    error
}

type Packet struct {
	Msg   int
	Addr  uint32
	Data  uint32
	A, B  uint8
	Count int
	Name  string     // Device name for show.
	Reply chan Reply // Optional, nil for no reply.
}
