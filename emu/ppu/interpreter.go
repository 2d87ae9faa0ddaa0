/*
 * CellPPU - Fetch/decode/execute step engine.
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

package ppu

import (
	"fmt"
	"log/slog"

	"github.com/opencell-emu/ppu/emu/breakpoint"
	"github.com/opencell-emu/ppu/emu/decoder"
	"github.com/opencell-emu/ppu/emu/disassemble"
	"github.com/opencell-emu/ppu/util/debug"
)

// Memory is the byte-addressable big-endian store the interpreter
// executes against. Addresses are 32 bits; general purpose registers
// are masked down at the point of use. Implementations must fail on
// unmapped access rather than panic.
type Memory interface {
	ReadByte(addr uint32) (uint8, error)
	WriteByte(addr uint32, value uint8) error
	ReadHalf(addr uint32) (uint16, error)
	WriteHalf(addr uint32, value uint16) error
	ReadWord(addr uint32) (uint32, error)
	WriteWord(addr uint32, value uint32) error
	ReadDouble(addr uint32) (uint64, error)
	WriteDouble(addr uint32, value uint64) error
	ReadQuad(addr uint32) ([16]byte, error)
	WriteQuad(addr uint32, value [16]byte) error
}

// BreakError reports that an enabled breakpoint fired before the fetch.
// It is a control flow signal, not a failure: no register was touched
// and the PC still points at the breakpoint address.
type BreakError struct {
	Addr uint64
}

func (e *BreakError) Error() string {
	return fmt.Sprintf("breakpoint at %08x", e.Addr)
}

// InstructionError reports a fetch or memory fault while executing the
// instruction at Addr. The PC is left unadvanced, so a retried step
// re-fetches the same address; remapping memory between retries is a
// legitimate recovery path.
type InstructionError struct {
	Addr   uint64
	Opcode uint32
}

func (e *InstructionError) Error() string {
	return fmt.Sprintf("invalid instruction %08x at %08x", e.Opcode, e.Addr)
}

// Interpreter executes one instruction per Step call against a Thread.
// A single Interpreter may serve many threads; it keeps no per-thread
// state of its own.
type Interpreter struct {
	mem    Memory
	breaks *breakpoint.Registry

	// Syscall, when set, is invoked for the sc instruction in place of
	// the default log-and-advance. The handler owns the PC.
	Syscall func(*Thread) error

	debugMask int
}

// New returns an interpreter bound to mem. breaks may be nil when no
// debugging surface is attached.
func New(mem Memory, breaks *breakpoint.Registry) *Interpreter {
	return &Interpreter{mem: mem, breaks: breaks}
}

// SetDebug selects the util/debug trace masks applied during Step.
func (ip *Interpreter) SetDebug(mask int) {
	ip.debugMask = mask
}

// Step runs exactly one instruction of t: breakpoint check, fetch,
// decode, dispatch. Every execution routine advances the PC itself;
// control flow instructions set it to the target instead.
func (ip *Interpreter) Step(t *Thread) error {
	return ip.step(t, true)
}

// StepPast runs one instruction with the breakpoint check suppressed.
// It is the "continue past breakpoint" variant: a caller stopped on a
// BreakError uses it to execute the instruction under the breakpoint
// without disabling the entry.
func (ip *Interpreter) StepPast(t *Thread) error {
	return ip.step(t, false)
}

func (ip *Interpreter) step(t *Thread, checkBreak bool) error {
	pc := t.PC()

	if checkBreak && ip.breaks != nil && ip.breaks.ShouldBreak(t) {
		ip.breaks.RecordHit(pc)
		debug.Debugf("PPU", ip.debugMask, debug.DebugBreak, "break at %08x", pc)
		return &BreakError{Addr: pc}
	}
	if ip.breaks != nil {
		ip.breaks.CountStep()
	}

	opcode, err := ip.mem.ReadWord(uint32(pc))
	if err != nil {
		return &InstructionError{Addr: pc, Opcode: 0}
	}

	inst := decoder.Decode(opcode)

	if ip.debugMask&debug.DebugInst != 0 {
		debug.Debugf("PPU", ip.debugMask, debug.DebugInst, "%08x: %s",
			pc, disassemble.Disassemble(pc, opcode))
	}

	switch inst.Form {
	case decoder.D:
		return ip.stepD(t, inst)
	case decoder.I:
		ip.stepI(t, inst)
	case decoder.B:
		ip.stepB(t, inst)
	case decoder.SC:
		return ip.stepSC(t, inst)
	case decoder.X:
		return ip.stepX(t, inst)
	case decoder.XL:
		ip.stepXL(t, inst)
	case decoder.M:
		ip.stepM(t, inst)
	case decoder.MD:
		ip.stepMD(t, inst)
	case decoder.A:
		ip.stepA(t, inst)
	case decoder.VA:
		ip.stepVA(t, inst)
	default:
		// Deliberate soft failure: an undecoded opcode becomes a
		// logged no-op so partially ported programs keep running.
		slog.Warn("unimplemented instruction form",
			"form", inst.Form.String(), "pc", fmt.Sprintf("%08x", pc),
			"opcode", fmt.Sprintf("%08x", opcode))
		t.AdvancePC()
	}
	return nil
}

// memFault wraps a memory error from a load or store into the fault
// for the current instruction. The caller must not have advanced PC.
func memFault(t *Thread, opcode uint32) error {
	return &InstructionError{Addr: t.PC(), Opcode: opcode}
}

// updateCR0 sets condition register field 0 from the signed sense of
// value plus the current summary overflow bit (the Rc=1 path).
func updateCR0(t *Thread, value uint64) {
	t.SetCRField(0, crSigned(int64(value), 0, t.SO()))
}

// crSigned builds the LT/GT/EQ/SO nibble for a signed comparison.
func crSigned(a, b int64, so bool) uint32 {
	var c uint32
	switch {
	case a < b:
		c = crLT
	case a > b:
		c = crGT
	default:
		c = crEQ
	}
	if so {
		c |= crSO
	}
	return c
}

// crUnsigned builds the LT/GT/EQ/SO nibble for an unsigned comparison.
func crUnsigned(a, b uint64, so bool) uint32 {
	var c uint32
	switch {
	case a < b:
		c = crLT
	case a > b:
		c = crGT
	default:
		c = crEQ
	}
	if so {
		c |= crSO
	}
	return c
}

// GenerateMask32 builds the rotate-and-mask word mask from begin/end
// bit indexes (0 = MSB). When mb > me the mask wraps: it is the OR of
// the two half ranges.
func GenerateMask32(mb, me uint8) uint32 {
	b := uint32(mb)
	e := uint32(me)
	if b <= e {
		return (^uint32(0) >> b) & (^uint32(0) << (31 - e))
	}
	return (^uint32(0) >> b) | (^uint32(0) << (31 - e))
}

// GenerateMask64 builds the doubleword mask for the MD rotate family,
// with the same wraparound rule over 64 bit positions.
func GenerateMask64(mb, me uint8) uint64 {
	b := uint32(mb)
	e := uint32(me)
	if b <= e {
		return (^uint64(0) >> b) & (^uint64(0) << (63 - e))
	}
	return (^uint64(0) >> b) | (^uint64(0) << (63 - e))
}
