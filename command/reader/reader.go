/*
 * GCDAPB - Console command reader.
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

package reader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/peterh/liner"
	command "github.com/rcornwell/GCDAPB/command/command"
	"github.com/rcornwell/GCDAPB/command/parser"
	"golang.org/x/term"
)

// Read commands from console until quit.
func ConsoleReader(sim command.Simulator) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		if err := ScriptReader(os.Stdin, sim, os.Stdout); err != nil {
			slog.Error("script stopped: " + err.Error())
		}
		return
	}

	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(line string) []string {
		return parser.CompleteCmd(line)
	})

	for {
		text, err := line.Prompt("GCD> ")
		if err == nil {
			line.AppendHistory(text)
			quit, err := parser.ProcessCommand(text, sim, os.Stdout)
			if err != nil {
				fmt.Println("Error: " + err.Error())
			}
			if quit {
				return
			}
			continue
		}

		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return
		}
		slog.Error("error reading line: " + err.Error())
		return
	}
}

// Run commands from a non interactive input, stopping at first error.
func ScriptReader(in io.Reader, sim command.Simulator, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		quit, err := parser.ProcessCommand(scanner.Text(), sim, out)
		if err != nil {
			fmt.Fprintf(out, "Error: line %d: %s\n", lineNumber, err.Error())
			return fmt.Errorf("line %d: %w", lineNumber, err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}
