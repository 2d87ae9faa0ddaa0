/*
 * CellPPU - Branch and condition register execution: I, B, SC and XL
 *           forms.
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

// stepI executes the unconditional branch.
func (ip *Interpreter) stepI(t *Thread, inst decoder.Inst) {
	li, aa, lk := decoder.IForm(inst.Opcode)

	if lk {
		t.Regs.LR = t.PC() + 4
	}
	if aa {
		t.SetPC(uint64(int64(li)))
	} else {
		t.SetPC(uint64(int64(t.PC()) + int64(li)))
	}
}

// ctrGate evaluates the count register half of the BO gating. The
// decrement happens whenever the gate is armed, taken branch or not:
// it is an observable side effect in its own right.
func ctrGate(t *Thread, bo uint8) bool {
	if bo&boIgnoreCtr != 0 {
		return true
	}
	t.Regs.CTR--
	return (t.Regs.CTR == 0) == (bo&boCtrSense != 0)
}

// condGate evaluates the condition register half of the BO gating.
func condGate(t *Thread, bo, bi uint8) bool {
	if bo&boIgnoreCond != 0 {
		return true
	}
	return t.CRBit(int(bi)) == uint32((bo>>3)&1)
}

// stepB executes the conditional branch. Both gates always run, even
// when the other is statically true, so the CTR decrement is never
// skipped.
func (ip *Interpreter) stepB(t *Thread, inst decoder.Inst) {
	bo, bi, bd, aa, lk := decoder.BForm(inst.Opcode)

	ctrOK := ctrGate(t, bo)
	condOK := condGate(t, bo, bi)

	if ctrOK && condOK {
		if lk {
			t.Regs.LR = t.PC() + 4
		}
		if aa {
			t.SetPC(uint64(int64(bd)))
		} else {
			t.SetPC(uint64(int64(t.PC()) + int64(bd)))
		}
	} else {
		t.AdvancePC()
	}
}

// stepSC traps into the OS call layer. The kernel emulation is an
// external collaborator; without a handler the call is traced and
// skipped, with the call number in r11 per the ABI.
func (ip *Interpreter) stepSC(t *Thread, _ decoder.Inst) error {
	if ip.Syscall != nil {
		return ip.Syscall(t)
	}
	slog.Debug("syscall with no handler",
		"num", t.GPR(11), "pc", fmt.Sprintf("%08x", t.PC()))
	t.AdvancePC()
	return nil
}

// stepXL executes branches through LR/CTR and the condition register
// logical group.
func (ip *Interpreter) stepXL(t *Thread, inst decoder.Inst) {
	bt, ba, bb, _, lk := decoder.XForm(inst.Opcode)

	switch inst.Xo {
	case op.XoBclr:
		bo, bi := bt, ba
		ctrOK := ctrGate(t, bo)
		condOK := condGate(t, bo, bi)
		if ctrOK && condOK {
			// Target from the pre-update LR; the low bits never
			// survive into the PC.
			target := t.Regs.LR &^ 3
			if lk {
				t.Regs.LR = t.PC() + 4
			}
			t.SetPC(target)
		} else {
			t.AdvancePC()
		}

	case op.XoBcctr:
		// No CTR decrement here: decrement-and-branch-to-CTR is
		// architecturally undefined, only the condition gate applies.
		bo, bi := bt, ba
		if condGate(t, bo, bi) {
			target := t.Regs.CTR &^ 3
			if lk {
				t.Regs.LR = t.PC() + 4
			}
			t.SetPC(target)
		} else {
			t.AdvancePC()
		}

	case op.XoMcrf:
		bf := int((bt >> 2) & 7)
		bfa := int((ba >> 2) & 7)
		t.SetCRField(bf, t.CRField(bfa))
		t.AdvancePC()

	case op.XoCrand, op.XoCror, op.XoCrxor, op.XoCrnand,
		op.XoCrnor, op.XoCreqv, op.XoCrandc, op.XoCrorc:
		a := t.CRBit(int(ba))
		b := t.CRBit(int(bb))
		var result uint32
		switch inst.Xo {
		case op.XoCrand:
			result = a & b
		case op.XoCror:
			result = a | b
		case op.XoCrxor:
			result = a ^ b
		case op.XoCrnand:
			result = ^(a & b) & 1
		case op.XoCrnor:
			result = ^(a | b) & 1
		case op.XoCreqv:
			result = ^(a ^ b) & 1
		case op.XoCrandc:
			result = a &^ b
		case op.XoCrorc:
			result = a | (^b & 1)
		}
		t.SetCRBit(int(bt), result)
		t.AdvancePC()

	default:
		slog.Warn("unimplemented XL-form xo",
			"xo", inst.Xo, "pc", fmt.Sprintf("%08x", t.PC()))
		t.AdvancePC()
	}
}
