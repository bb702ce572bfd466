/*
 * GCDAPB - Monitor command port tests.
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

package monitor

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/rcornwell/GCDAPB/config/simconfig"
	"github.com/rcornwell/GCDAPB/emu/core"
	"github.com/rcornwell/GCDAPB/emu/master"
)

// Commands over a monitor connection.
func TestMonitor(t *testing.T) {
	sim := core.NewCore(make(chan master.Packet), simconfig.Default())
	go sim.Start()
	defer sim.Stop()

	s, err := Start("127.0.0.1:0", sim)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	conn, err := net.Dial("tcp", s.Addr().String())
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

	fmt.Fprint(conn, "gcd 12 18\nbogus\nquit\n")
	out, err := io.ReadAll(bufio.NewReader(conn))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "gcd(12, 18) = 6") {
		t.Errorf("Monitor output missing result: %q", text)
	}
	if !strings.Contains(text, "Error: command not found: bogus") {
		t.Errorf("Monitor output missing error: %q", text)
	}
}

// Listening on a used port fails.
func TestMonitorPortInUse(t *testing.T) {
	sim := core.NewCore(make(chan master.Packet), simconfig.Default())
	go sim.Start()
	defer sim.Stop()

	s, err := Start("127.0.0.1:0", sim)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	if _, err := Start(s.Addr().String(), sim); err == nil {
		t.Errorf("Second server on same port started")
	}
}
