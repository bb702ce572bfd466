/*
 * GCDAPB - Console command parser.
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
	"io"
	"strings"
	"unicode"

	command "github.com/rcornwell/GCDAPB/command/command"
)

type cmd struct {
	Name     string // Command name.
	Min      int    // Minimum match size.
	Help     string // One line description.
	Process  func(*cmdLine, command.Simulator, io.Writer) (bool, error)
	Complete func(*cmdLine) []string
}

type cmdLine struct {
	line string // Current command.
	pos  int    // Position in line.
}

// Execute the command line given, output goes to out. Returns true if
// the console should exit.
func ProcessCommand(commandLine string, sim command.Simulator, out io.Writer) (bool, error) {
	line := cmdLine{line: commandLine}
	name := line.getWord()
	if name == "" {
		if !line.isEOL() {
			return false, errors.New("command not found: " + commandLine)
		}
		return false, nil
	}

	match := matchList(name)
	if len(match) == 0 {
		return false, errors.New("command not found: " + name)
	}

	if len(match) > 1 {
		return false, errors.New("unique command not found: " + name)
	}

	return match[0].Process(&line, sim, out)
}

// Check if command matches at least to minimum length.
func matchCommand(match cmd, name string) bool {
	if len(name) > len(match.Name) {
		return false
	}
	return strings.HasPrefix(match.Name, name) && len(name) >= match.Min
}

// Check if command matches one of the commands.
func matchList(name string) []cmd {
	if name == "" {
		return []cmd{}
	}

	var match []cmd
	for _, m := range cmdList {
		if m.Name == name {
			return []cmd{m}
		}
		if matchCommand(m, name) {
			match = append(match, m)
		}
	}
	return match
}

// Skip forward over line until none whitespace character found.
func (line *cmdLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

// Check if at end of line.
func (line *cmdLine) isEOL() bool {
	if line.pos >= len(line.line) {
		return true
	}
	return line.line[line.pos] == '#'
}

// Return current character and advance to next.
func (line *cmdLine) getCurrent() byte {
	if line.isEOL() {
		return 0
	}
	by := line.line[line.pos]
	line.pos++
	return by
}

// Collect characters up to next space.
func (line *cmdLine) getToken() string {
	line.skipSpace()
	start := line.pos
	for !line.isEOL() && !unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
	return line.line[start:line.pos]
}

// Parse a word, empty if next token not alphabetic.
func (line *cmdLine) getWord() string {
	line.skipSpace()
	pos := line.pos
	token := line.getToken()
	for _, by := range token {
		if !unicode.IsLetter(by) {
			line.pos = pos
			return ""
		}
	}
	return strings.ToLower(token)
}

// Parse a decimal number.
func (line *cmdLine) getNumber() (uint32, error) {
	token := line.getToken()
	if token == "" {
		return 0, errors.New("not a number")
	}

	value := uint32(0)
	for _, by := range token {
		if !unicode.IsDigit(by) {
			return 0, errors.New("not a number: " + token)
		}
		if value > (0xffffffff-9)/10 {
			return 0, errors.New("number too large: " + token)
		}
		value = (value * 10) + uint32(by-'0')
	}
	return value, nil
}

const hex = "0123456789abcdef"

// Parse hex number, optional 0x prefix.
func (line *cmdLine) getHex() (uint32, error) {
	pos := line.pos
	token := strings.ToLower(line.getToken())
	token = strings.TrimPrefix(token, "0x")
	if token == "" || len(token) > 8 {
		line.pos = pos
		return 0, errors.New("not a hex number")
	}

	value := uint32(0)
	for _, by := range token {
		digit := strings.IndexRune(hex, by)
		if digit == -1 {
			line.pos = pos
			return 0, errors.New("not a hex number: " + token)
		}
		value = (value << 4) + uint32(digit)
	}
	return value, nil
}

// Parse register name or hex offset.
func (line *cmdLine) getRegister() (uint32, error) {
	pos := line.pos
	name := line.getWord()
	if offset, ok := command.Registers[name]; ok {
		return offset, nil
	}
	line.pos = pos
	offset, err := line.getHex()
	if err != nil {
		if name != "" {
			return 0, errors.New("unknown register: " + name)
		}
		return 0, errors.New("register name or offset required")
	}
	return offset, nil
}

// Make sure nothing follows on line.
func (line *cmdLine) checkEOL() error {
	line.skipSpace()
	if !line.isEOL() {
		return errors.New("unexpected text: " + line.line[line.pos:])
	}
	return nil
}
