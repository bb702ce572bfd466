/*
 * GCDAPB - Debug trace output.
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

package debug

import (
	"fmt"
	"io"
	"os"
	"strconv"

	config "github.com/rcornwell/GCDAPB/config/configparser"
)

var (
	logFile  io.Writer
	fileName string
)

// Generic debug message.
func Debugf(module string, mask int, level int, format string, a ...interface{}) {
	if (mask&level) != 0 && logFile != nil {
		fmt.Fprintf(logFile, module+": "+format+"\n", a...)
	}
}

// Debug message stamped with the simulation cycle.
func DebugCyclef(module string, cycle uint64, mask int, level int, format string, a ...interface{}) {
	if (mask&level) != 0 && logFile != nil {
		c := strconv.FormatUint(cycle, 10)
		fmt.Fprintf(logFile, c+" "+module+": "+format+"\n", a...)
	}
}

// Redirect debug output, nil disables it.
func SetOutput(out io.Writer) {
	logFile = out
	fileName = ""
}

// register a device on initialize.
func init() {
	config.RegisterFile("DEBUGFILE", create)
}

// Create the debug trace file.
func create(_ uint32, name string, _ []config.Option) error {
	if fileName != "" {
		return fmt.Errorf("can't have more then one debug file, previous: %s", fileName)
	}

	file, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("unable to create debug file: %s: %w", name, err)
	}

	logFile = file
	fileName = name
	return nil
}
