/*
 * CellPPU - Log debug data to a file
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

package debug

import (
	"fmt"
	"os"
	"strings"
)

// Trace masks. A component is handed a mask of the categories the user
// asked for and tests it against the category of each message.
const (
	DebugInst = 1 << iota // Executed instructions.
	DebugMem              // Memory reads and writes.
	DebugBranch           // Taken branches.
	DebugBreak            // Breakpoint hits.
)

var maskNames = map[string]int{
	"inst":   DebugInst,
	"mem":    DebugMem,
	"branch": DebugBranch,
	"break":  DebugBreak,
}

var logFile *os.File

// ParseMask converts a list of category names into a mask.
func ParseMask(names []string) (int, error) {
	mask := 0
	for _, name := range names {
		m, ok := maskNames[strings.ToLower(name)]
		if !ok {
			return 0, fmt.Errorf("unknown debug category: %s", name)
		}
		mask |= m
	}
	return mask, nil
}

// Open creates the debug output file. Only one may be active.
func Open(fileName string) error {
	if logFile != nil {
		return fmt.Errorf("can't have more than one debug file, previous: %s", logFile.Name())
	}
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("unable to create debug file: %s", fileName)
	}
	logFile = file
	return nil
}

// Close flushes and drops the debug output file.
func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Debugf writes a message when its category is in the caller's mask.
func Debugf(module string, mask int, level int, format string, a ...interface{}) {
	if logFile != nil && (mask&level) != 0 {
		fmt.Fprintf(logFile, module+": "+format+"\n", a...)
	}
}
