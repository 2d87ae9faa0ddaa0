/*
 * CellPPU - Per-thread architectural state.
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

import "fmt"

// Registers holds one hardware thread's register files. GPR index 0 is
// an ordinary register: the "treat as zero" addressing convention is
// applied by the individual instruction routines, never here.
type Registers struct {
	GPR   [32]uint64    // General purpose registers.
	FPR   [32]float64   // Floating point registers.
	VR    [32][4]uint32 // Vector registers, 4 big-endian word lanes.
	CR    uint32        // Condition register, 8 four-bit fields.
	LR    uint64        // Link register.
	CTR   uint64        // Count register.
	XER   uint64        // Fixed point exception register.
	FPSCR uint64        // FP status and control.
	VSCR  uint32        // Vector status and control.
	CIA   uint64        // Current instruction address.
}

// State is the thread lifecycle. Instruction execution never changes
// it; only the explicit lifecycle calls below do.
type State int

const (
	Stopped State = iota
	Running
	Waiting
	Suspended
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Waiting:
		return "waiting"
	case Suspended:
		return "suspended"
	}
	return "unknown"
}

// Thread is one logical PPU hardware thread. Instances share no state
// with each other; a scheduler may step many of them without locking.
type Thread struct {
	ID        uint32
	Name      string
	Regs      Registers
	state     State
	StackAddr uint32
	StackSize uint32
	Priority  uint32
}

// NewThread returns a stopped thread with all registers cleared.
func NewThread(id uint32) *Thread {
	return &Thread{
		ID:    id,
		Name:  fmt.Sprintf("PPU Thread %d", id),
		state: Stopped,
	}
}

// PC returns the current instruction address.
func (t *Thread) PC() uint64 {
	return t.Regs.CIA
}

// SetPC redirects execution to addr.
func (t *Thread) SetPC(addr uint64) {
	t.Regs.CIA = addr
}

// AdvancePC moves past the current instruction.
func (t *Thread) AdvancePC() {
	t.Regs.CIA += 4
}

// GPR reads general purpose register reg.
func (t *Thread) GPR(reg int) uint64 {
	return t.Regs.GPR[reg]
}

// SetGPR writes general purpose register reg. Writes to r0 stick.
func (t *Thread) SetGPR(reg int, value uint64) {
	t.Regs.GPR[reg] = value
}

// FPR reads floating point register reg.
func (t *Thread) FPR(reg int) float64 {
	return t.Regs.FPR[reg]
}

// SetFPR writes floating point register reg.
func (t *Thread) SetFPR(reg int, value float64) {
	t.Regs.FPR[reg] = value
}

// VR reads vector register reg.
func (t *Thread) VR(reg int) [4]uint32 {
	return t.Regs.VR[reg]
}

// SetVR writes vector register reg.
func (t *Thread) SetVR(reg int, value [4]uint32) {
	t.Regs.VR[reg] = value
}

// CRField reads condition register field 0-7.
func (t *Thread) CRField(field int) uint32 {
	return (t.Regs.CR >> (28 - field*4)) & 0xf
}

// SetCRField writes condition register field 0-7.
func (t *Thread) SetCRField(field int, value uint32) {
	shift := 28 - field*4
	t.Regs.CR = (t.Regs.CR &^ (0xf << shift)) | ((value & 0xf) << shift)
}

// CRBit reads a single condition register bit, 0 being the MSB.
func (t *Thread) CRBit(bit int) uint32 {
	return (t.Regs.CR >> (31 - bit)) & 1
}

// SetCRBit writes a single condition register bit.
func (t *Thread) SetCRBit(bit int, value uint32) {
	shift := 31 - bit
	t.Regs.CR = (t.Regs.CR &^ (1 << shift)) | ((value & 1) << shift)
}

// CA reads the XER carry bit.
func (t *Thread) CA() bool {
	return t.Regs.XER&xerCA != 0
}

// SetCA writes the XER carry bit.
func (t *Thread) SetCA(value bool) {
	if value {
		t.Regs.XER |= xerCA
	} else {
		t.Regs.XER &^= xerCA
	}
}

// OV reads the XER overflow bit.
func (t *Thread) OV() bool {
	return t.Regs.XER&xerOV != 0
}

// SetOV writes the XER overflow bit and accumulates the sticky summary
// overflow when setting.
func (t *Thread) SetOV(value bool) {
	if value {
		t.Regs.XER |= xerOV | xerSO
	} else {
		t.Regs.XER &^= xerOV
	}
}

// SO reads the XER summary overflow bit.
func (t *Thread) SO() bool {
	return t.Regs.XER&xerSO != 0
}

// SetSO writes the summary overflow bit. Arithmetic never clears it;
// only an explicit mtspr to XER can.
func (t *Thread) SetSO(value bool) {
	if value {
		t.Regs.XER |= xerSO
	} else {
		t.Regs.XER &^= xerSO
	}
}

// State returns the lifecycle state.
func (t *Thread) State() State {
	return t.state
}

// Start marks the thread runnable.
func (t *Thread) Start() {
	t.state = Running
}

// Stop halts the thread.
func (t *Thread) Stop() {
	t.state = Stopped
}

// Wait blocks the thread on an external event.
func (t *Thread) Wait() {
	t.state = Waiting
}

// Suspend pauses the thread from the scheduler side.
func (t *Thread) Suspend() {
	t.state = Suspended
}

// IsRunning reports whether the thread is in the running state.
func (t *Thread) IsRunning() bool {
	return t.state == Running
}
