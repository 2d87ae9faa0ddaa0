/*
 * CellPPU - Render instruction words as assembler mnemonics.
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

// Package disassemble prints the executed subset of the instruction
// set. Anything it does not know comes out as a .long directive, so
// the output always round trips through an assembler.
package disassemble

import (
	"fmt"

	"github.com/opencell-emu/ppu/emu/decoder"
	op "github.com/opencell-emu/ppu/emu/opcodemap"
)

var dNames = map[uint8]string{
	op.OpMulli:  "mulli",
	op.OpSubfic: "subfic",
	op.OpAddic:  "addic",
	op.OpAddicR: "addic.",
	op.OpAddi:   "addi",
	op.OpAddis:  "addis",
	op.OpOri:    "ori",
	op.OpOris:   "oris",
	op.OpXori:   "xori",
	op.OpXoris:  "xoris",
	op.OpAndiR:  "andi.",
	op.OpAndisR: "andis.",
}

var dLoadStore = map[uint8]string{
	op.OpLwz: "lwz",
	op.OpLbz: "lbz",
	op.OpLhz: "lhz",
	op.OpLha: "lha",
	op.OpStw: "stw",
	op.OpStb: "stb",
	op.OpSth: "sth",
}

var xNames = map[uint16]string{
	op.XoAnd: "and",
	op.XoOr:  "or",
	op.XoXor: "xor",
	op.XoNor: "nor",
}

var xLoadStore = map[uint16]string{
	op.XoLwzx: "lwzx",
	op.XoLbzx: "lbzx",
	op.XoStwx: "stwx",
	op.XoStbx: "stbx",
}

var xoNames = map[uint16]string{
	op.XoAdd:   "add",
	op.XoSubf:  "subf",
	op.XoNeg:   "neg",
	op.XoMullw: "mullw",
	op.XoDivw:  "divw",
	op.XoDivwu: "divwu",
}

var crNames = map[uint16]string{
	op.XoCrand:  "crand",
	op.XoCror:   "cror",
	op.XoCrxor:  "crxor",
	op.XoCrnand: "crnand",
	op.XoCrnor:  "crnor",
	op.XoCreqv:  "creqv",
	op.XoCrandc: "crandc",
	op.XoCrorc:  "crorc",
}

var aNames = map[uint16]string{
	op.XoFadd:   "fadd",
	op.XoFsub:   "fsub",
	op.XoFmul:   "fmul",
	op.XoFdiv:   "fdiv",
	op.XoFsel:   "fsel",
	op.XoFmadd:  "fmadd",
	op.XoFmsub:  "fmsub",
	op.XoFnmadd: "fnmadd",
	op.XoFnmsub: "fnmsub",
}

var vaNames = map[uint16]string{
	op.XoVperm:    "vperm",
	op.XoVsel:     "vsel",
	op.XoVmaddfp:  "vmaddfp",
	op.XoVnmsubfp: "vnmsubfp",
}

var sprNames = map[uint16]string{
	op.SprXer: "xer",
	op.SprLr:  "lr",
	op.SprCtr: "ctr",
}

func dot(rc bool) string {
	if rc {
		return "."
	}
	return ""
}

// Disassemble renders the instruction word at pc. Relative branch
// targets are resolved against pc; everything unknown falls back to a
// raw .long.
func Disassemble(pc uint64, opcode uint32) string {
	inst := decoder.Decode(opcode)

	switch inst.Form {
	case decoder.I:
		li, aa, lk := decoder.IForm(opcode)
		mn := "b"
		if lk {
			mn += "l"
		}
		target := uint64(int64(li))
		if aa {
			mn += "a"
		} else {
			target = pc + uint64(int64(li))
		}
		return fmt.Sprintf("%-8s 0x%x", mn, target)

	case decoder.B:
		bo, bi, bd, aa, lk := decoder.BForm(opcode)
		mn := "bc"
		if lk {
			mn += "l"
		}
		target := uint64(int64(bd))
		if aa {
			mn += "a"
		} else {
			target = pc + uint64(int64(bd))
		}
		return fmt.Sprintf("%-8s %d,%d,0x%x", mn, bo, bi, target)

	case decoder.SC:
		return "sc"

	case decoder.D:
		rt, ra, d := decoder.DForm(opcode)
		if name, ok := dNames[inst.Op]; ok {
			switch inst.Op {
			case op.OpOri, op.OpOris, op.OpXori, op.OpXoris,
				op.OpAndiR, op.OpAndisR:
				// Logical immediates swap source and target and are
				// unsigned.
				return fmt.Sprintf("%-8s r%d,r%d,0x%x", name, ra, rt, uint16(d))
			}
			return fmt.Sprintf("%-8s r%d,r%d,%d", name, rt, ra, d)
		}
		if name, ok := dLoadStore[inst.Op]; ok {
			return fmt.Sprintf("%-8s r%d,%d(r%d)", name, rt, d, ra)
		}
		switch inst.Op {
		case op.OpCmpi:
			return fmt.Sprintf("%-8s cr%d,%d,r%d,%d", "cmpi", rt>>2, rt&1, ra, d)
		case op.OpCmpli:
			return fmt.Sprintf("%-8s cr%d,%d,r%d,%d", "cmpli", rt>>2, rt&1, ra, uint16(d))
		}

	case decoder.X:
		rt, ra, rb, xo, rc := decoder.XForm(opcode)
		if name, ok := xNames[xo]; ok {
			return fmt.Sprintf("%-8s r%d,r%d,r%d", name+dot(rc), ra, rt, rb)
		}
		if name, ok := xLoadStore[xo]; ok {
			return fmt.Sprintf("%-8s r%d,r%d,r%d", name, rt, ra, rb)
		}
		switch xo {
		case op.XoCmp:
			return fmt.Sprintf("%-8s cr%d,%d,r%d,r%d", "cmp", rt>>2, rt&1, ra, rb)
		case op.XoCmpl:
			return fmt.Sprintf("%-8s cr%d,%d,r%d,r%d", "cmpl", rt>>2, rt&1, ra, rb)
		case op.XoMfspr, op.XoMtspr:
			spr := uint16(rb)<<5 | uint16(ra)
			name, ok := sprNames[spr]
			if !ok {
				name = fmt.Sprintf("%d", spr)
			}
			if xo == op.XoMfspr {
				return fmt.Sprintf("%-8s r%d,%s", "mfspr", rt, name)
			}
			return fmt.Sprintf("%-8s %s,r%d", "mtspr", name, rt)
		}
		// OE lives one bit above the 9-bit arithmetic extended opcode.
		oe := ""
		if xo&0x200 != 0 {
			oe = "o"
		}
		if name, ok := xoNames[xo&0x1ff]; ok {
			if xo&0x1ff == op.XoNeg {
				return fmt.Sprintf("%-8s r%d,r%d", name+oe+dot(rc), rt, ra)
			}
			return fmt.Sprintf("%-8s r%d,r%d,r%d", name+oe+dot(rc), rt, ra, rb)
		}

	case decoder.XL:
		bt, ba, bb, xo, lk := decoder.XForm(opcode)
		switch xo {
		case op.XoBclr:
			mn := "bclr"
			if lk {
				mn = "bclrl"
			}
			return fmt.Sprintf("%-8s %d,%d", mn, bt, ba)
		case op.XoBcctr:
			mn := "bcctr"
			if lk {
				mn = "bcctrl"
			}
			return fmt.Sprintf("%-8s %d,%d", mn, bt, ba)
		case op.XoMcrf:
			return fmt.Sprintf("%-8s cr%d,cr%d", "mcrf", bt>>2, ba>>2)
		}
		if name, ok := crNames[xo]; ok {
			return fmt.Sprintf("%-8s %d,%d,%d", name, bt, ba, bb)
		}

	case decoder.M:
		rs, ra, rb, mb, me, rc := decoder.MForm(opcode)
		var name string
		switch inst.Op {
		case op.OpRlwinm:
			name = "rlwinm"
		case op.OpRlwimi:
			name = "rlwimi"
		case op.OpRlwnm:
			name = "rlwnm"
		}
		if name != "" {
			return fmt.Sprintf("%-8s r%d,r%d,%d,%d,%d", name+dot(rc), ra, rs, rb, mb, me)
		}

	case decoder.MD:
		rs, ra, sh, mb, rc := decoder.MDForm(opcode)
		switch inst.Xo {
		case op.XoRldicl:
			return fmt.Sprintf("%-8s r%d,r%d,%d,%d", "rldicl"+dot(rc), ra, rs, sh, mb)
		case op.XoRldicr:
			return fmt.Sprintf("%-8s r%d,r%d,%d,%d", "rldicr"+dot(rc), ra, rs, sh, mb)
		}

	case decoder.A:
		frt, fra, frb, frc, rc := decoder.AForm(opcode)
		name, ok := aNames[inst.Xo]
		if ok {
			if inst.Op == op.OpFloatS {
				name += "s"
			}
			switch inst.Xo {
			case op.XoFadd, op.XoFsub, op.XoFdiv:
				return fmt.Sprintf("%-8s f%d,f%d,f%d", name+dot(rc), frt, fra, frb)
			case op.XoFmul:
				return fmt.Sprintf("%-8s f%d,f%d,f%d", name+dot(rc), frt, fra, frc)
			}
			return fmt.Sprintf("%-8s f%d,f%d,f%d,f%d", name+dot(rc), frt, fra, frc, frb)
		}

	case decoder.VA:
		vd, va, vb, vc := decoder.VAForm(opcode)
		if name, ok := vaNames[inst.Xo]; ok {
			return fmt.Sprintf("%-8s v%d,v%d,v%d,v%d", name, vd, va, vb, vc)
		}
	}

	return fmt.Sprintf("%-8s 0x%08x", ".long", opcode)
}
