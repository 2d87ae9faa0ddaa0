/*
 * CellPPU - Fixed point execution: D, X, XO, M and MD forms.
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
	"math"
	"math/bits"

	"github.com/opencell-emu/ppu/emu/decoder"
	op "github.com/opencell-emu/ppu/emu/opcodemap"
)

// stepD executes the D-form load/store/immediate family. This is the
// hottest path in compiled code, so it switches directly on the
// primary opcode rather than going through a second form table.
func (ip *Interpreter) stepD(t *Thread, inst decoder.Inst) error {
	rt, ra, d16 := decoder.DForm(inst.Opcode)
	d := int64(d16)

	// Effective address: base register plus displacement, or the
	// displacement alone when the base field is 0. This is the
	// per-instruction "register 0 reads as zero" convention; the
	// register file itself has no such rule.
	ea := func() uint32 {
		if ra == 0 {
			return uint32(d)
		}
		return uint32(t.GPR(int(ra)) + uint64(d))
	}

	switch inst.Op {
	case op.OpAddi:
		if ra == 0 {
			t.SetGPR(int(rt), uint64(d))
		} else {
			t.SetGPR(int(rt), t.GPR(int(ra))+uint64(d))
		}

	case op.OpAddis:
		if ra == 0 {
			t.SetGPR(int(rt), uint64(d<<16))
		} else {
			t.SetGPR(int(rt), t.GPR(int(ra))+uint64(d<<16))
		}

	case op.OpMulli:
		t.SetGPR(int(rt), uint64(int64(t.GPR(int(ra)))*d))

	case op.OpSubfic:
		// RT = ~RA + SI + 1, CA from the carry out.
		result, carry := bits.Add64(^t.GPR(int(ra)), uint64(d), 1)
		t.SetGPR(int(rt), result)
		t.SetCA(carry != 0)

	case op.OpAddic, op.OpAddicR:
		result, carry := bits.Add64(t.GPR(int(ra)), uint64(d), 0)
		t.SetGPR(int(rt), result)
		t.SetCA(carry != 0)
		if inst.Op == op.OpAddicR {
			updateCR0(t, result)
		}

	case op.OpLwz:
		value, err := ip.mem.ReadWord(ea())
		if err != nil {
			return memFault(t, inst.Opcode)
		}
		t.SetGPR(int(rt), uint64(value))

	case op.OpLbz:
		value, err := ip.mem.ReadByte(ea())
		if err != nil {
			return memFault(t, inst.Opcode)
		}
		t.SetGPR(int(rt), uint64(value))

	case op.OpLhz:
		value, err := ip.mem.ReadHalf(ea())
		if err != nil {
			return memFault(t, inst.Opcode)
		}
		t.SetGPR(int(rt), uint64(value))

	case op.OpLha:
		value, err := ip.mem.ReadHalf(ea())
		if err != nil {
			return memFault(t, inst.Opcode)
		}
		t.SetGPR(int(rt), uint64(int64(int16(value))))

	case op.OpStw:
		if err := ip.mem.WriteWord(ea(), uint32(t.GPR(int(rt)))); err != nil {
			return memFault(t, inst.Opcode)
		}

	case op.OpStb:
		if err := ip.mem.WriteByte(ea(), uint8(t.GPR(int(rt)))); err != nil {
			return memFault(t, inst.Opcode)
		}

	case op.OpSth:
		if err := ip.mem.WriteHalf(ea(), uint16(t.GPR(int(rt)))); err != nil {
			return memFault(t, inst.Opcode)
		}

	// The logical immediates write to RA; the RT field holds the
	// source. Immediates are zero extended, unlike the arithmetic set.
	case op.OpOri:
		t.SetGPR(int(ra), t.GPR(int(rt))|uint64(uint16(d16)))

	case op.OpOris:
		t.SetGPR(int(ra), t.GPR(int(rt))|uint64(uint16(d16))<<16)

	case op.OpXori:
		t.SetGPR(int(ra), t.GPR(int(rt))^uint64(uint16(d16)))

	case op.OpXoris:
		t.SetGPR(int(ra), t.GPR(int(rt))^uint64(uint16(d16))<<16)

	case op.OpAndiR:
		value := t.GPR(int(rt)) & uint64(uint16(d16))
		t.SetGPR(int(ra), value)
		updateCR0(t, value)

	case op.OpAndisR:
		value := t.GPR(int(rt)) & (uint64(uint16(d16)) << 16)
		t.SetGPR(int(ra), value)
		updateCR0(t, value)

	case op.OpCmpi:
		bf := int((rt >> 2) & 7)
		wide := (rt & 1) != 0
		a := int64(t.GPR(int(ra)))
		b := d
		if !wide {
			a = int64(int32(a))
			b = int64(int32(b))
		}
		t.SetCRField(bf, crSigned(a, b, t.SO()))

	case op.OpCmpli:
		bf := int((rt >> 2) & 7)
		wide := (rt & 1) != 0
		a := t.GPR(int(ra))
		if !wide {
			a = uint64(uint32(a))
		}
		t.SetCRField(bf, crUnsigned(a, uint64(uint16(d16)), t.SO()))

	default:
		slog.Warn("unimplemented D-form op",
			"op", inst.Op, "pc", fmt.Sprintf("%08x", t.PC()))
	}

	t.AdvancePC()
	return nil
}

// stepX executes X-form logic, compares, indexed loads/stores and
// special register moves. An extended opcode the 10-bit match does not
// know falls through to the 9-bit XO-form re-match: every implemented
// 10-bit xo here is below 512 while OE=1 arithmetic always presents a
// 10-bit xo of 512 or more, so the fallback cannot shadow these arms.
func (ip *Interpreter) stepX(t *Thread, inst decoder.Inst) error {
	rs, ra, rb, xo, rc := decoder.XForm(inst.Opcode)

	// Indexed effective address, base field 0 meaning zero base.
	ea := func() uint32 {
		if ra == 0 {
			return uint32(t.GPR(int(rb)))
		}
		return uint32(t.GPR(int(ra)) + t.GPR(int(rb)))
	}

	switch xo {
	case op.XoAnd:
		value := t.GPR(int(rs)) & t.GPR(int(rb))
		t.SetGPR(int(ra), value)
		if rc {
			updateCR0(t, value)
		}

	case op.XoOr:
		value := t.GPR(int(rs)) | t.GPR(int(rb))
		t.SetGPR(int(ra), value)
		if rc {
			updateCR0(t, value)
		}

	case op.XoXor:
		value := t.GPR(int(rs)) ^ t.GPR(int(rb))
		t.SetGPR(int(ra), value)
		if rc {
			updateCR0(t, value)
		}

	case op.XoNor:
		value := ^(t.GPR(int(rs)) | t.GPR(int(rb)))
		t.SetGPR(int(ra), value)
		if rc {
			updateCR0(t, value)
		}

	case op.XoCmp:
		bf := int((rs >> 2) & 7)
		wide := (rs & 1) != 0
		a := int64(t.GPR(int(ra)))
		b := int64(t.GPR(int(rb)))
		if !wide {
			a = int64(int32(a))
			b = int64(int32(b))
		}
		t.SetCRField(bf, crSigned(a, b, t.SO()))

	case op.XoCmpl:
		bf := int((rs >> 2) & 7)
		wide := (rs & 1) != 0
		a := t.GPR(int(ra))
		b := t.GPR(int(rb))
		if !wide {
			a = uint64(uint32(a))
			b = uint64(uint32(b))
		}
		t.SetCRField(bf, crUnsigned(a, b, t.SO()))

	case op.XoLwzx:
		value, err := ip.mem.ReadWord(ea())
		if err != nil {
			return memFault(t, inst.Opcode)
		}
		t.SetGPR(int(rs), uint64(value))

	case op.XoLbzx:
		value, err := ip.mem.ReadByte(ea())
		if err != nil {
			return memFault(t, inst.Opcode)
		}
		t.SetGPR(int(rs), uint64(value))

	case op.XoStwx:
		if err := ip.mem.WriteWord(ea(), uint32(t.GPR(int(rs)))); err != nil {
			return memFault(t, inst.Opcode)
		}

	case op.XoStbx:
		if err := ip.mem.WriteByte(ea(), uint8(t.GPR(int(rs)))); err != nil {
			return memFault(t, inst.Opcode)
		}

	case op.XoMfspr:
		spr := uint16(rb)<<5 | uint16(ra)
		var value uint64
		switch spr {
		case op.SprXer:
			value = t.Regs.XER
		case op.SprLr:
			value = t.Regs.LR
		case op.SprCtr:
			value = t.Regs.CTR
		default:
			slog.Warn("unimplemented mfspr",
				"spr", spr, "pc", fmt.Sprintf("%08x", t.PC()))
		}
		t.SetGPR(int(rs), value)

	case op.XoMtspr:
		spr := uint16(rb)<<5 | uint16(ra)
		value := t.GPR(int(rs))
		switch spr {
		case op.SprXer:
			t.Regs.XER = value
		case op.SprLr:
			t.Regs.LR = value
		case op.SprCtr:
			t.Regs.CTR = value
		default:
			slog.Warn("unimplemented mtspr",
				"spr", spr, "pc", fmt.Sprintf("%08x", t.PC()))
		}

	default:
		ip.stepXO(t, inst)
		return nil
	}

	t.AdvancePC()
	return nil
}

// stepXO re-matches the extended opcode under a 9-bit mask to recover
// XO-form arithmetic routed through primary opcode 31.
func (ip *Interpreter) stepXO(t *Thread, inst decoder.Inst) {
	rt, ra, rb, oe, xo, rc := decoder.XOForm(inst.Opcode)

	switch xo {
	case op.XoAdd:
		a := t.GPR(int(ra))
		b := t.GPR(int(rb))
		result := a + b
		t.SetGPR(int(rt), result)
		if oe {
			// Signed overflow: operands agree in sign, result differs.
			t.SetOV((a^result)&(b^result)&signBit != 0)
		}
		if rc {
			updateCR0(t, result)
		}

	case op.XoSubf:
		a := t.GPR(int(ra))
		b := t.GPR(int(rb))
		result := b - a
		t.SetGPR(int(rt), result)
		if oe {
			t.SetOV((a^b)&(b^result)&signBit != 0)
		}
		if rc {
			updateCR0(t, result)
		}

	case op.XoNeg:
		a := t.GPR(int(ra))
		result := -a
		t.SetGPR(int(rt), result)
		if oe {
			t.SetOV(a == signBit)
		}
		if rc {
			updateCR0(t, result)
		}

	case op.XoMullw:
		a := int64(int32(t.GPR(int(ra))))
		b := int64(int32(t.GPR(int(rb))))
		result := uint64(a * b)
		t.SetGPR(int(rt), result)
		if rc {
			updateCR0(t, result)
		}

	case op.XoDivw:
		a := int32(t.GPR(int(ra)))
		b := int32(t.GPR(int(rb)))
		if b != 0 && !(a == math.MinInt32 && b == -1) {
			t.SetGPR(int(rt), uint64(int64(a/b)))
		} else {
			t.SetGPR(int(rt), 0)
			if oe {
				t.SetOV(true)
			}
		}
		if rc {
			updateCR0(t, t.GPR(int(rt)))
		}

	case op.XoDivwu:
		a := uint32(t.GPR(int(ra)))
		b := uint32(t.GPR(int(rb)))
		if b != 0 {
			t.SetGPR(int(rt), uint64(a/b))
		} else {
			t.SetGPR(int(rt), 0)
			if oe {
				t.SetOV(true)
			}
		}
		if rc {
			updateCR0(t, t.GPR(int(rt)))
		}

	default:
		slog.Warn("unimplemented X-form xo",
			"xo", inst.Xo, "pc", fmt.Sprintf("%08x", t.PC()))
	}

	t.AdvancePC()
}

const signBit uint64 = 1 << 63

// stepM executes the rotate-word-then-mask family.
func (ip *Interpreter) stepM(t *Thread, inst decoder.Inst) {
	rs, ra, sh, mb, me, rc := decoder.MForm(inst.Opcode)

	switch inst.Op {
	case op.OpRlwinm:
		rotated := bits.RotateLeft32(uint32(t.GPR(int(rs))), int(sh))
		result := uint64(rotated & GenerateMask32(mb, me))
		t.SetGPR(int(ra), result)
		if rc {
			updateCR0(t, result)
		}

	case op.OpRlwimi:
		// Insert under mask: bits outside the mask keep RA's value.
		rotated := bits.RotateLeft32(uint32(t.GPR(int(rs))), int(sh))
		mask := GenerateMask32(mb, me)
		result := uint64((rotated & mask) | (uint32(t.GPR(int(ra))) &^ mask))
		t.SetGPR(int(ra), result)
		if rc {
			updateCR0(t, result)
		}

	case op.OpRlwnm:
		amount := int(t.GPR(int(sh)) & 0x1f)
		rotated := bits.RotateLeft32(uint32(t.GPR(int(rs))), amount)
		result := uint64(rotated & GenerateMask32(mb, me))
		t.SetGPR(int(ra), result)
		if rc {
			updateCR0(t, result)
		}

	default:
		slog.Warn("unimplemented M-form op",
			"op", inst.Op, "pc", fmt.Sprintf("%08x", t.PC()))
	}

	t.AdvancePC()
}

// stepMD executes the doubleword rotate family.
func (ip *Interpreter) stepMD(t *Thread, inst decoder.Inst) {
	rs, ra, sh, mb, rc := decoder.MDForm(inst.Opcode)

	switch inst.Xo {
	case op.XoRldicl:
		rotated := bits.RotateLeft64(t.GPR(int(rs)), int(sh))
		result := rotated & GenerateMask64(mb, 63)
		t.SetGPR(int(ra), result)
		if rc {
			updateCR0(t, result)
		}

	case op.XoRldicr:
		// The six-bit field is the mask end for rldicr.
		rotated := bits.RotateLeft64(t.GPR(int(rs)), int(sh))
		result := rotated & GenerateMask64(0, mb)
		t.SetGPR(int(ra), result)
		if rc {
			updateCR0(t, result)
		}

	default:
		slog.Warn("unimplemented MD-form xo",
			"xo", inst.Xo, "pc", fmt.Sprintf("%08x", t.PC()))
	}

	t.AdvancePC()
}
