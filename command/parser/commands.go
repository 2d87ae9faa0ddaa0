/*
 * CellPPU - Command executer.
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
	"fmt"
	"log/slog"
	"math"

	"github.com/opencell-emu/ppu/emu/breakpoint"
	"github.com/opencell-emu/ppu/emu/core"
	"github.com/opencell-emu/ppu/emu/disassemble"
	"github.com/opencell-emu/ppu/emu/ppu"
)

var cmdList = []cmd{
	{Name: "step", Min: 2, Process: step},
	{Name: "run", Min: 2, Process: run},
	{Name: "continue", Min: 1, Process: run},
	{Name: "regs", Min: 1, Process: regs},
	{Name: "fregs", Min: 2, Process: fregs},
	{Name: "vregs", Min: 2, Process: vregs},
	{Name: "break", Min: 2, Process: breakCmd},
	{Name: "breaks", Min: 6, Process: listBreaks},
	{Name: "delete", Min: 3, Process: deleteCmd},
	{Name: "enable", Min: 2, Process: enable},
	{Name: "disable", Min: 3, Process: disable},
	{Name: "count", Min: 2, Process: count},
	{Name: "examine", Min: 2, Process: examine},
	{Name: "deposit", Min: 3, Process: deposit},
	{Name: "set", Min: 3, Process: set},
	{Name: "quit", Min: 1, Process: quit},
	{Name: "exit", Min: 2, Process: quit},
}

// report prints why a run or step stopped and where.
func report(c *core.Core, err error) {
	var brk *ppu.BreakError
	if errors.As(err, &brk) {
		fmt.Printf("Breakpoint at %08x\n", brk.Addr)
		return
	}
	if err != nil {
		fmt.Println("Stopped: " + err.Error())
	}
}

// showCurrent prints the instruction about to execute.
func showCurrent(c *core.Core) {
	pc := c.Thread.PC()
	if opcode, err := c.Mem.ReadWord(uint32(pc)); err == nil {
		fmt.Printf("%08x: %s\n", pc, disassemble.Disassemble(pc, opcode))
	}
}

// Run a fixed number of instructions, default one.
func step(line *cmdLine, c *core.Core) (bool, error) {
	slog.Debug("Command Step")
	n := uint64(1)
	if !line.isEOL() {
		var err error
		if n, err = line.getValue(); err != nil {
			return false, err
		}
	}
	_, err := c.Step(int(n))
	report(c, err)
	showCurrent(c)
	return false, nil
}

// Run until a breakpoint or fault, or until an optional budget.
func run(line *cmdLine, c *core.Core) (bool, error) {
	slog.Debug("Command Run")
	budget := uint64(0)
	if !line.isEOL() {
		var err error
		if budget, err = line.getValue(); err != nil {
			return false, err
		}
	}
	done, err := c.Run(budget)
	fmt.Printf("%d instructions executed\n", done)
	report(c, err)
	showCurrent(c)
	return false, nil
}

// Print the fixed point register file.
func regs(_ *cmdLine, c *core.Core) (bool, error) {
	t := c.Thread
	for i := 0; i < 32; i += 4 {
		fmt.Printf("r%-2d %016x  r%-2d %016x  r%-2d %016x  r%-2d %016x\n",
			i, t.GPR(i), i+1, t.GPR(i+1), i+2, t.GPR(i+2), i+3, t.GPR(i+3))
	}
	fmt.Printf("pc  %016x  lr  %016x  ctr %016x\n", t.PC(), t.Regs.LR, t.Regs.CTR)
	fmt.Printf("cr  %08x  xer %016x  state %s\n", t.Regs.CR, t.Regs.XER, t.State())
	return false, nil
}

// Print the floating point register file.
func fregs(_ *cmdLine, c *core.Core) (bool, error) {
	t := c.Thread
	for i := 0; i < 32; i += 2 {
		fmt.Printf("f%-2d %016x %-24g  f%-2d %016x %-24g\n",
			i, math.Float64bits(t.FPR(i)), t.FPR(i),
			i+1, math.Float64bits(t.FPR(i+1)), t.FPR(i+1))
	}
	fmt.Printf("fpscr %016x\n", t.Regs.FPSCR)
	return false, nil
}

// Print the vector register file.
func vregs(_ *cmdLine, c *core.Core) (bool, error) {
	t := c.Thread
	for i := 0; i < 32; i++ {
		v := t.VR(i)
		fmt.Printf("v%-2d %08x %08x %08x %08x\n", i, v[0], v[1], v[2], v[3])
	}
	return false, nil
}

// Arm a breakpoint: break addr [gpr reg value | count n].
func breakCmd(line *cmdLine, c *core.Core) (bool, error) {
	slog.Debug("Command Break")
	addr, err := line.getValue()
	if err != nil {
		return false, err
	}
	if line.isEOL() {
		c.Breaks.Add(addr)
		return false, nil
	}
	switch kind := line.getWord(); kind {
	case "gpr":
		reg, err := line.getValue()
		if err != nil {
			return false, err
		}
		if reg > 31 {
			return false, errors.New("register out of range")
		}
		value, err := line.getValue()
		if err != nil {
			return false, err
		}
		c.Breaks.AddGprEquals(addr, int(reg), value)
	case "count":
		n, err := line.getValue()
		if err != nil {
			return false, err
		}
		c.Breaks.AddInstrCount(addr, n)
	default:
		return false, errors.New("unknown breakpoint kind: " + kind)
	}
	return false, nil
}

// Remove one breakpoint or all of them.
func deleteCmd(line *cmdLine, c *core.Core) (bool, error) {
	slog.Debug("Command Delete")
	if line.isEOL() {
		return false, errors.New("delete needs an address or all")
	}
	save := line.pos
	if word := line.getWord(); word == "all" {
		c.Breaks.Clear()
		return false, nil
	}
	line.pos = save
	addr, err := line.getValue()
	if err != nil {
		return false, err
	}
	if !c.Breaks.Remove(addr) {
		return false, fmt.Errorf("no breakpoint at %08x", addr)
	}
	return false, nil
}

// Arm an existing breakpoint again.
func enable(line *cmdLine, c *core.Core) (bool, error) {
	addr, err := line.getValue()
	if err != nil {
		return false, err
	}
	if !c.Breaks.Enable(addr) {
		return false, fmt.Errorf("no breakpoint at %08x", addr)
	}
	return false, nil
}

// Disarm a breakpoint without forgetting it.
func disable(line *cmdLine, c *core.Core) (bool, error) {
	addr, err := line.getValue()
	if err != nil {
		return false, err
	}
	if !c.Breaks.Disable(addr) {
		return false, fmt.Errorf("no breakpoint at %08x", addr)
	}
	return false, nil
}

// List every breakpoint with its state and hit count.
func listBreaks(_ *cmdLine, c *core.Core) (bool, error) {
	for _, bp := range c.Breaks.List() {
		state := "enabled"
		if !bp.Enabled {
			state = "disabled"
		}
		switch bp.Kind {
		case breakpoint.Unconditional:
			fmt.Printf("%08x %-6s %s hits=%d\n", bp.Addr, bp.Kind, state, bp.HitCount)
		default:
			fmt.Printf("%08x %-6s %s reg=%d value=%x count=%d hits=%d\n",
				bp.Addr, bp.Kind, state, bp.Reg, bp.Value, bp.Count, bp.HitCount)
		}
	}
	return false, nil
}

// Show or reset the cumulative instruction counter.
func count(line *cmdLine, c *core.Core) (bool, error) {
	if !line.isEOL() && line.getWord() == "reset" {
		c.Breaks.ResetInstructionCount()
		return false, nil
	}
	fmt.Printf("%d instructions\n", c.Breaks.InstructionCount())
	return false, nil
}

// Dump memory words with disassembly: examine addr [count].
func examine(line *cmdLine, c *core.Core) (bool, error) {
	slog.Debug("Command Examine")
	addr, err := line.getValue()
	if err != nil {
		return false, err
	}
	n := uint64(1)
	if !line.isEOL() {
		if n, err = line.getValue(); err != nil {
			return false, err
		}
	}
	for i := uint64(0); i < n; i++ {
		a := addr + i*4
		word, err := c.Mem.ReadWord(uint32(a))
		if err != nil {
			return false, err
		}
		fmt.Printf("%08x: %08x  %s\n", a, word, disassemble.Disassemble(a, word))
	}
	return false, nil
}

// Write one memory word: deposit addr value.
func deposit(line *cmdLine, c *core.Core) (bool, error) {
	slog.Debug("Command Deposit")
	addr, err := line.getValue()
	if err != nil {
		return false, err
	}
	value, err := line.getValue()
	if err != nil {
		return false, err
	}
	return false, c.Mem.WriteWord(uint32(addr), uint32(value))
}

// Set a register: set r3 0x100, set pc 0x1000.
func set(line *cmdLine, c *core.Core) (bool, error) {
	slog.Debug("Command Set")
	kind, num, err := line.getRegister()
	if err != nil {
		return false, err
	}
	value, err := line.getValue()
	if err != nil {
		return false, err
	}
	t := c.Thread
	switch kind {
	case "pc":
		t.SetPC(value)
	case "lr":
		t.Regs.LR = value
	case "ctr":
		t.Regs.CTR = value
	case "xer":
		t.Regs.XER = value
	case "cr":
		t.Regs.CR = uint32(value)
	case "r":
		t.SetGPR(num, value)
	case "f":
		t.SetFPR(num, math.Float64frombits(value))
	default:
		return false, errors.New("cannot set register kind: " + kind)
	}
	return false, nil
}

// Leave the console.
func quit(_ *cmdLine, _ *core.Core) (bool, error) {
	slog.Debug("Command Quit")
	return true, nil
}
