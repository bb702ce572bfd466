/*
 * GCDAPB - Log handler tests.
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

package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// Messages go to file with attributes.
func TestHandlerFile(t *testing.T) {
	var file, stderr bytes.Buffer
	debug := false
	h := NewHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}, &debug)
	h.stderr = &stderr
	log := slog.New(h).With("unit", "gcd")

	log.Debug("step", "cycle", 5)
	out := file.String()
	if !strings.Contains(out, "DEBUG: step unit=gcd cycle=5") {
		t.Errorf("Log file not correct got: %q", out)
	}
	if stderr.Len() != 0 {
		t.Errorf("Debug message written to stderr: %q", stderr.String())
	}

	log.Info("started")
	if !strings.Contains(stderr.String(), "INFO: started") {
		t.Errorf("Info message not written to stderr: %q", stderr.String())
	}
}

// Debug flag sends debug messages to stderr.
func TestHandlerDebug(t *testing.T) {
	var stderr bytes.Buffer
	debug := true
	h := NewHandler(nil, &slog.HandlerOptions{Level: slog.LevelDebug}, &debug)
	h.stderr = &stderr
	slog.New(h).Debug("trace")
	if !strings.Contains(stderr.String(), "DEBUG: trace") {
		t.Errorf("Debug message not written to stderr: %q", stderr.String())
	}

	debug = false
	h.SetDebug(&debug)
	stderr.Reset()
	slog.New(h).Debug("quiet")
	if stderr.Len() != 0 {
		t.Errorf("Debug message written after disable: %q", stderr.String())
	}
}
