/*
 * CellPPU - Assemble the emulator pieces into one machine.
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

// Package core wires memory, one hardware thread, the interpreter and
// the breakpoint registry into a single machine for the console and
// for tests that want the whole stack rather than one layer.
package core

import (
	"errors"

	"github.com/opencell-emu/ppu/emu/breakpoint"
	"github.com/opencell-emu/ppu/emu/memory"
	"github.com/opencell-emu/ppu/emu/ppu"
)

// Core is one PPU machine.
type Core struct {
	Mem    *memory.Memory
	Thread *ppu.Thread
	Interp *ppu.Interpreter
	Breaks *breakpoint.Registry

	// stopped records that the last step ended on a breakpoint, so the
	// next step slides past it instead of hitting it again.
	stopped bool
}

// New builds a machine with sizeK kilobytes of memory and thread 0.
func New(sizeK int) *Core {
	breaks := breakpoint.NewRegistry()
	mem := memory.New(sizeK)
	return &Core{
		Mem:    mem,
		Thread: ppu.NewThread(0),
		Interp: ppu.New(mem, breaks),
		Breaks: breaks,
	}
}

// Step executes up to n instructions. When the previous call stopped on
// a breakpoint the first instruction runs with the check suppressed, so
// repeated stepping makes progress. Returns the instructions executed
// and the error that cut the run short, if any.
func (c *Core) Step(n int) (int, error) {
	done := 0
	for done < n {
		var err error
		if c.stopped {
			c.stopped = false
			err = c.Interp.StepPast(c.Thread)
		} else {
			err = c.Interp.Step(c.Thread)
		}
		if err != nil {
			var brk *ppu.BreakError
			if errors.As(err, &brk) {
				c.stopped = true
			}
			return done, err
		}
		done++
	}
	return done, nil
}

// Run executes until a breakpoint or fault, or until budget
// instructions have run when budget is nonzero.
func (c *Core) Run(budget uint64) (uint64, error) {
	var done uint64
	for budget == 0 || done < budget {
		var err error
		if c.stopped {
			c.stopped = false
			err = c.Interp.StepPast(c.Thread)
		} else {
			err = c.Interp.Step(c.Thread)
		}
		if err != nil {
			var brk *ppu.BreakError
			if errors.As(err, &brk) {
				c.stopped = true
			}
			return done, err
		}
		done++
	}
	return done, nil
}
