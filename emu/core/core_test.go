/*
 * CellPPU machine core test cases.
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

package core

import (
	"errors"
	"testing"

	"github.com/opencell-emu/ppu/emu/assemble"
	"github.com/opencell-emu/ppu/emu/ppu"
)

func loadAt(c *Core, addr uint32, program ...uint32) {
	for _, opcode := range program {
		_ = c.Mem.WriteWord(addr, opcode)
		addr += 4
	}
}

func TestCoreStep(t *testing.T) {
	c := New(64)
	c.Thread.SetPC(0x1000)
	loadAt(c, 0x1000,
		assemble.Addi(3, 0, 1),
		assemble.Addi(3, 3, 1),
	)

	done, err := c.Step(2)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if done != 2 {
		t.Errorf("steps were incorrect got: %d wanted: %d", done, 2)
	}
	if c.Thread.GPR(3) != 2 {
		t.Errorf("register 3 was incorrect got: %d wanted: %d", c.Thread.GPR(3), 2)
	}
}

func TestCoreRunToBreakpoint(t *testing.T) {
	c := New(64)
	c.Thread.SetPC(0x1000)
	loadAt(c, 0x1000,
		assemble.Addi(3, 3, 1),
		assemble.B(-4),
	)
	c.Breaks.AddGprEquals(0x1000, 3, 5)

	done, err := c.Run(0)
	var brk *ppu.BreakError
	if !errors.As(err, &brk) {
		t.Fatalf("run error was incorrect got: %v", err)
	}
	if c.Thread.GPR(3) != 5 {
		t.Errorf("register 3 was incorrect got: %d wanted: %d", c.Thread.GPR(3), 5)
	}
	if done != 10 {
		t.Errorf("instructions were incorrect got: %d wanted: %d", done, 10)
	}
}

// After stopping on a breakpoint the next step slides past it instead
// of hitting it again.
func TestCoreStepPastBreakpoint(t *testing.T) {
	c := New(64)
	c.Thread.SetPC(0x1000)
	loadAt(c, 0x1000,
		assemble.Addi(3, 0, 1),
		assemble.Addi(4, 0, 2),
	)
	c.Breaks.Add(0x1000)

	if _, err := c.Step(1); err == nil {
		t.Fatal("breakpoint did not fire")
	}
	done, err := c.Step(2)
	if err != nil {
		t.Fatalf("step past failed: %v", err)
	}
	if done != 2 {
		t.Errorf("steps were incorrect got: %d wanted: %d", done, 2)
	}
	if c.Thread.GPR(3) != 1 || c.Thread.GPR(4) != 2 {
		t.Errorf("registers were incorrect got: %d %d", c.Thread.GPR(3), c.Thread.GPR(4))
	}
}

func TestCoreRunBudget(t *testing.T) {
	c := New(64)
	c.Thread.SetPC(0x1000)
	loadAt(c, 0x1000,
		assemble.Addi(3, 3, 1),
		assemble.B(-4),
	)

	done, err := c.Run(100)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if done != 100 {
		t.Errorf("budget was incorrect got: %d wanted: %d", done, 100)
	}
}
