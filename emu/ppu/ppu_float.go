/*
 * CellPPU - Floating point execution: the A-form multiply-add family.
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

	"github.com/opencell-emu/ppu/emu/decoder"
	op "github.com/opencell-emu/ppu/emu/opcodemap"
)

// stepA executes the A-form float family. Primary opcode 59 carries
// the single precision variants, which compute in double and round the
// result to float32. The multiply operands are FRA and FRC; FRB is the
// addend, fixed per mnemonic.
func (ip *Interpreter) stepA(t *Thread, inst decoder.Inst) {
	frt, fra, frb, frc, rc := decoder.AForm(inst.Opcode)
	single := inst.Op == op.OpFloatS

	a := t.FPR(int(fra))
	b := t.FPR(int(frb))
	c := t.FPR(int(frc))

	var result float64
	known := true

	switch inst.Xo {
	case op.XoFadd:
		result = a + b
	case op.XoFsub:
		result = a - b
	case op.XoFmul:
		result = a * c
	case op.XoFdiv:
		result = a / b
	case op.XoFsel:
		if a >= 0 {
			result = c
		} else {
			result = b
		}
	case op.XoFmadd:
		result = a*c + b
	case op.XoFmsub:
		result = a*c - b
	case op.XoFnmadd:
		result = -(a*c + b)
	case op.XoFnmsub:
		result = -(a*c - b)
	default:
		// Primary 63 also carries X-form float ops (fcmpu, fmr, ...)
		// whose 10-bit xo lands on an unassigned 5-bit slot here; they
		// degrade like any other undecoded instruction.
		known = false
		slog.Warn("unimplemented A-form xo",
			"xo", inst.Xo, "op", inst.Op, "pc", fmt.Sprintf("%08x", t.PC()))
	}

	if known {
		if single {
			result = float64(float32(result))
		}
		t.SetFPR(int(frt), result)
		if rc {
			// CR1 receives the FPSCR exception summary nibble.
			t.SetCRField(1, uint32(t.Regs.FPSCR>>28)&0xf)
		}
	}

	t.AdvancePC()
}
