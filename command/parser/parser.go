/*
 * CellPPU - Command parser.
 *
 * Copyright 2026, The OpenCell Authors
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
	"strconv"
	"strings"
	"unicode"

	"github.com/opencell-emu/ppu/emu/core"
)

type cmd struct {
	Name    string // Command name.
	Min     int    // Minimum match size.
	Process func(*cmdLine, *core.Core) (bool, error)
}

type cmdLine struct {
	line string // Current command.
	pos  int    // Position in line.
}

// ProcessCommand executes one console line. The boolean result asks
// the caller to exit.
func ProcessCommand(commandLine string, core *core.Core) (bool, error) {
	line := cmdLine{line: commandLine}
	command := line.getWord()
	if command == "" {
		return false, nil
	}

	match := matchList(command)
	if len(match) == 0 {
		return false, errors.New("command not found: " + command)
	}

	if len(match) > 1 {
		return false, errors.New("unique command not found: " + command)
	}

	return match[0].Process(&line, core)
}

// CompleteCmd offers command name completions for the line editor.
func CompleteCmd(line string) []string {
	word := strings.ToLower(strings.TrimSpace(line))
	var out []string
	for _, m := range cmdList {
		if strings.HasPrefix(m.Name, word) {
			out = append(out, m.Name+" ")
		}
	}
	return out
}

// Check if command matches at least to minimum length.
func matchCommand(match cmd, command string) bool {
	if len(command) > len(match.Name) {
		return false
	}
	l := 0
	for i := 0; i < len(command); i++ {
		l = i
		if match.Name[l] != command[l] {
			return false
		}
	}
	return (l + 1) >= match.Min
}

// Check if command matches one of the commands.
func matchList(command string) []cmd {
	if command == "" {
		return []cmd{}
	}

	var match []cmd
	for _, m := range cmdList {
		if matchCommand(m, command) {
			match = append(match, m)
		}
	}
	return match
}

// Skip forward over line until none whitespace character found.
func (line *cmdLine) skipSpace() {
	for line.pos < len(line.line) &&
		unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

// Check if at end of line.
func (line *cmdLine) isEOL() bool {
	line.skipSpace()
	if line.pos >= len(line.line) {
		return true
	}
	return line.line[line.pos] == '#'
}

// Return the next whitespace separated token, lowercased.
func (line *cmdLine) getWord() string {
	line.skipSpace()
	start := line.pos
	for line.pos < len(line.line) &&
		!unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
	return strings.ToLower(line.line[start:line.pos])
}

// Parse a number, decimal by default, hex with an 0x prefix.
func (line *cmdLine) getValue() (uint64, error) {
	word := line.getWord()
	if word == "" {
		return 0, errors.New("number expected")
	}
	base := 10
	if strings.HasPrefix(word, "0x") {
		word = word[2:]
		base = 16
	}
	value, err := strconv.ParseUint(word, base, 64)
	if err != nil {
		return 0, errors.New("not a number: " + word)
	}
	return value, nil
}

// Parse a register name of the form rN, fN or vN, or one of pc, lr,
// ctr, xer, cr.
func (line *cmdLine) getRegister() (string, int, error) {
	word := line.getWord()
	switch word {
	case "":
		return "", 0, errors.New("register expected")
	case "pc", "lr", "ctr", "xer", "cr":
		return word, 0, nil
	}
	kind := word[:1]
	if kind != "r" && kind != "f" && kind != "v" {
		return "", 0, errors.New("unknown register: " + word)
	}
	num, err := strconv.Atoi(word[1:])
	if err != nil || num < 0 || num > 31 {
		return "", 0, errors.New("unknown register: " + word)
	}
	return kind, num, nil
}
