/*
 * CellPPU - Build instruction words for tests and the console.
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

// Package assemble builds the instruction words the interpreter
// executes, one encoder per instruction format plus convenience
// wrappers named after the mnemonics the tests lean on.
package assemble

import (
	op "github.com/opencell-emu/ppu/emu/opcodemap"
)

func bit(b bool, pos uint) uint32 {
	if b {
		return 1 << pos
	}
	return 0
}

// DOp encodes a D-form instruction.
func DOp(primary uint8, rt, ra uint8, d int16) uint32 {
	return uint32(primary)<<26 | uint32(rt&0x1f)<<21 |
		uint32(ra&0x1f)<<16 | uint32(uint16(d))
}

// XOp encodes an X-form instruction.
func XOp(xo uint16, rt, ra, rb uint8, rc bool) uint32 {
	return uint32(op.OpIndex)<<26 | uint32(rt&0x1f)<<21 |
		uint32(ra&0x1f)<<16 | uint32(rb&0x1f)<<11 |
		uint32(xo&0x3ff)<<1 | bit(rc, 0)
}

// XOOp encodes an XO-form arithmetic instruction with its OE bit.
func XOOp(xo uint16, rt, ra, rb uint8, oe, rc bool) uint32 {
	return uint32(op.OpIndex)<<26 | uint32(rt&0x1f)<<21 |
		uint32(ra&0x1f)<<16 | uint32(rb&0x1f)<<11 |
		bit(oe, 10) | uint32(xo&0x1ff)<<1 | bit(rc, 0)
}

// IOp encodes an I-form branch with a byte displacement.
func IOp(li int32, aa, lk bool) uint32 {
	return uint32(op.OpB)<<26 | (uint32(li)>>2&0xffffff)<<2 |
		bit(aa, 1) | bit(lk, 0)
}

// BOp encodes a B-form conditional branch with a byte displacement.
func BOp(bo, bi uint8, bd int32, aa, lk bool) uint32 {
	return uint32(op.OpBc)<<26 | uint32(bo&0x1f)<<21 |
		uint32(bi&0x1f)<<16 | (uint32(bd)>>2&0x3fff)<<2 |
		bit(aa, 1) | bit(lk, 0)
}

// XLOp encodes an XL-form instruction (branch to register or CR logic).
func XLOp(xo uint16, bt, ba, bb uint8, lk bool) uint32 {
	return uint32(op.OpCrOps)<<26 | uint32(bt&0x1f)<<21 |
		uint32(ba&0x1f)<<16 | uint32(bb&0x1f)<<11 |
		uint32(xo&0x3ff)<<1 | bit(lk, 0)
}

// MOp encodes an M-form rotate and mask instruction.
func MOp(primary uint8, rs, ra, rb, mb, me uint8, rc bool) uint32 {
	return uint32(primary)<<26 | uint32(rs&0x1f)<<21 |
		uint32(ra&0x1f)<<16 | uint32(rb&0x1f)<<11 |
		uint32(mb&0x1f)<<6 | uint32(me&0x1f)<<1 | bit(rc, 0)
}

// MDOp encodes an MD-form doubleword rotate; sh and mb are the 6-bit
// values, split across the word by the encoder.
func MDOp(xo uint16, rs, ra, sh, mb uint8, rc bool) uint32 {
	return uint32(op.OpRldOps)<<26 | uint32(rs&0x1f)<<21 |
		uint32(ra&0x1f)<<16 | uint32(sh&0x1f)<<11 |
		uint32(mb&0x1f)<<6 | uint32(mb&0x20) |
		uint32(xo&0x7)<<2 | uint32(sh&0x20)>>4 | bit(rc, 0)
}

// AOp encodes an A-form floating instruction.
func AOp(primary uint8, xo uint16, frt, fra, frb, frc uint8, rc bool) uint32 {
	return uint32(primary)<<26 | uint32(frt&0x1f)<<21 |
		uint32(fra&0x1f)<<16 | uint32(frb&0x1f)<<11 |
		uint32(frc&0x1f)<<6 | uint32(xo&0x1f)<<1 | bit(rc, 0)
}

// VAOp encodes a VA-form vector instruction.
func VAOp(xo uint16, vd, va, vb, vc uint8) uint32 {
	return uint32(op.OpVector)<<26 | uint32(vd&0x1f)<<21 |
		uint32(va&0x1f)<<16 | uint32(vb&0x1f)<<11 |
		uint32(vc&0x1f)<<6 | uint32(xo&0x3f)
}

// Mnemonic wrappers. Operand order follows the assembler books, not
// the bit layout, so rs-before-ra logicals read the way listings do.

func Addi(rt, ra uint8, si int16) uint32  { return DOp(op.OpAddi, rt, ra, si) }
func Addis(rt, ra uint8, si int16) uint32 { return DOp(op.OpAddis, rt, ra, si) }
func Mulli(rt, ra uint8, si int16) uint32 { return DOp(op.OpMulli, rt, ra, si) }
func Subfic(rt, ra uint8, si int16) uint32 {
	return DOp(op.OpSubfic, rt, ra, si)
}
func Addic(rt, ra uint8, si int16) uint32 { return DOp(op.OpAddic, rt, ra, si) }
func AddicR(rt, ra uint8, si int16) uint32 {
	return DOp(op.OpAddicR, rt, ra, si)
}

func Ori(ra, rs uint8, ui uint16) uint32  { return DOp(op.OpOri, rs, ra, int16(ui)) }
func Oris(ra, rs uint8, ui uint16) uint32 { return DOp(op.OpOris, rs, ra, int16(ui)) }
func Xori(ra, rs uint8, ui uint16) uint32 { return DOp(op.OpXori, rs, ra, int16(ui)) }
func Xoris(ra, rs uint8, ui uint16) uint32 {
	return DOp(op.OpXoris, rs, ra, int16(ui))
}
func AndiR(ra, rs uint8, ui uint16) uint32 {
	return DOp(op.OpAndiR, rs, ra, int16(ui))
}
func AndisR(ra, rs uint8, ui uint16) uint32 {
	return DOp(op.OpAndisR, rs, ra, int16(ui))
}

func Lwz(rt, ra uint8, d int16) uint32 { return DOp(op.OpLwz, rt, ra, d) }
func Lbz(rt, ra uint8, d int16) uint32 { return DOp(op.OpLbz, rt, ra, d) }
func Lhz(rt, ra uint8, d int16) uint32 { return DOp(op.OpLhz, rt, ra, d) }
func Lha(rt, ra uint8, d int16) uint32 { return DOp(op.OpLha, rt, ra, d) }
func Stw(rs, ra uint8, d int16) uint32 { return DOp(op.OpStw, rs, ra, d) }
func Stb(rs, ra uint8, d int16) uint32 { return DOp(op.OpStb, rs, ra, d) }
func Sth(rs, ra uint8, d int16) uint32 { return DOp(op.OpSth, rs, ra, d) }

// Cmpi encodes cmpi bf,l,ra,si; Cmpli its unsigned twin.
func Cmpi(bf uint8, wide bool, ra uint8, si int16) uint32 {
	field := bf<<2 | uint8(bit(wide, 0))
	return DOp(op.OpCmpi, field, ra, si)
}
func Cmpli(bf uint8, wide bool, ra uint8, ui uint16) uint32 {
	field := bf<<2 | uint8(bit(wide, 0))
	return DOp(op.OpCmpli, field, ra, int16(ui))
}

func And(ra, rs, rb uint8, rc bool) uint32 { return XOp(op.XoAnd, rs, ra, rb, rc) }
func Or(ra, rs, rb uint8, rc bool) uint32  { return XOp(op.XoOr, rs, ra, rb, rc) }
func Xor(ra, rs, rb uint8, rc bool) uint32 { return XOp(op.XoXor, rs, ra, rb, rc) }
func Nor(ra, rs, rb uint8, rc bool) uint32 { return XOp(op.XoNor, rs, ra, rb, rc) }

func Lwzx(rt, ra, rb uint8) uint32 { return XOp(op.XoLwzx, rt, ra, rb, false) }
func Lbzx(rt, ra, rb uint8) uint32 { return XOp(op.XoLbzx, rt, ra, rb, false) }
func Stwx(rs, ra, rb uint8) uint32 { return XOp(op.XoStwx, rs, ra, rb, false) }
func Stbx(rs, ra, rb uint8) uint32 { return XOp(op.XoStbx, rs, ra, rb, false) }

func Cmp(bf uint8, wide bool, ra, rb uint8) uint32 {
	field := bf<<2 | uint8(bit(wide, 0))
	return XOp(op.XoCmp, field, ra, rb, false)
}
func Cmpl(bf uint8, wide bool, ra, rb uint8) uint32 {
	field := bf<<2 | uint8(bit(wide, 0))
	return XOp(op.XoCmpl, field, ra, rb, false)
}

// Mfspr and Mtspr split the SPR number across the ra/rb fields with the
// halves swapped, as the architecture encodes it.
func Mfspr(rt uint8, spr uint16) uint32 {
	return XOp(op.XoMfspr, rt, uint8(spr&0x1f), uint8(spr>>5), false)
}
func Mtspr(spr uint16, rs uint8) uint32 {
	return XOp(op.XoMtspr, rs, uint8(spr&0x1f), uint8(spr>>5), false)
}

func Add(rt, ra, rb uint8, oe, rc bool) uint32 {
	return XOOp(op.XoAdd, rt, ra, rb, oe, rc)
}
func Subf(rt, ra, rb uint8, oe, rc bool) uint32 {
	return XOOp(op.XoSubf, rt, ra, rb, oe, rc)
}
func Neg(rt, ra uint8, oe, rc bool) uint32 {
	return XOOp(op.XoNeg, rt, ra, 0, oe, rc)
}
func Mullw(rt, ra, rb uint8, oe, rc bool) uint32 {
	return XOOp(op.XoMullw, rt, ra, rb, oe, rc)
}
func Divw(rt, ra, rb uint8, oe, rc bool) uint32 {
	return XOOp(op.XoDivw, rt, ra, rb, oe, rc)
}
func Divwu(rt, ra, rb uint8, oe, rc bool) uint32 {
	return XOOp(op.XoDivwu, rt, ra, rb, oe, rc)
}

func B(li int32) uint32  { return IOp(li, false, false) }
func Bl(li int32) uint32 { return IOp(li, false, true) }
func Ba(li int32) uint32 { return IOp(li, true, false) }

func Bc(bo, bi uint8, bd int32) uint32  { return BOp(bo, bi, bd, false, false) }
func Bcl(bo, bi uint8, bd int32) uint32 { return BOp(bo, bi, bd, false, true) }

func Bclr(bo, bi uint8, lk bool) uint32 {
	return XLOp(op.XoBclr, bo, bi, 0, lk)
}
func Bcctr(bo, bi uint8, lk bool) uint32 {
	return XLOp(op.XoBcctr, bo, bi, 0, lk)
}
func Mcrf(bf, bfa uint8) uint32 {
	return XLOp(op.XoMcrf, bf<<2, bfa<<2, 0, false)
}
func Crand(bt, ba, bb uint8) uint32 { return XLOp(op.XoCrand, bt, ba, bb, false) }
func Cror(bt, ba, bb uint8) uint32  { return XLOp(op.XoCror, bt, ba, bb, false) }
func Crxor(bt, ba, bb uint8) uint32 { return XLOp(op.XoCrxor, bt, ba, bb, false) }

func Rlwinm(ra, rs, sh, mb, me uint8, rc bool) uint32 {
	return MOp(op.OpRlwinm, rs, ra, sh, mb, me, rc)
}
func Rlwimi(ra, rs, sh, mb, me uint8, rc bool) uint32 {
	return MOp(op.OpRlwimi, rs, ra, sh, mb, me, rc)
}
func Rlwnm(ra, rs, rb, mb, me uint8, rc bool) uint32 {
	return MOp(op.OpRlwnm, rs, ra, rb, mb, me, rc)
}

func Rldicl(ra, rs, sh, mb uint8, rc bool) uint32 {
	return MDOp(op.XoRldicl, rs, ra, sh, mb, rc)
}
func Rldicr(ra, rs, sh, me uint8, rc bool) uint32 {
	return MDOp(op.XoRldicr, rs, ra, sh, me, rc)
}

func Fadd(frt, fra, frb uint8) uint32 {
	return AOp(op.OpFloat, op.XoFadd, frt, fra, frb, 0, false)
}
func Fsub(frt, fra, frb uint8) uint32 {
	return AOp(op.OpFloat, op.XoFsub, frt, fra, frb, 0, false)
}
func Fmul(frt, fra, frc uint8) uint32 {
	return AOp(op.OpFloat, op.XoFmul, frt, fra, 0, frc, false)
}
func Fdiv(frt, fra, frb uint8) uint32 {
	return AOp(op.OpFloat, op.XoFdiv, frt, fra, frb, 0, false)
}
func Fsel(frt, fra, frc, frb uint8) uint32 {
	return AOp(op.OpFloat, op.XoFsel, frt, fra, frb, frc, false)
}
func Fmadd(frt, fra, frc, frb uint8) uint32 {
	return AOp(op.OpFloat, op.XoFmadd, frt, fra, frb, frc, false)
}
func Fmsub(frt, fra, frc, frb uint8) uint32 {
	return AOp(op.OpFloat, op.XoFmsub, frt, fra, frb, frc, false)
}
func Fnmadd(frt, fra, frc, frb uint8) uint32 {
	return AOp(op.OpFloat, op.XoFnmadd, frt, fra, frb, frc, false)
}
func Fnmsub(frt, fra, frc, frb uint8) uint32 {
	return AOp(op.OpFloat, op.XoFnmsub, frt, fra, frb, frc, false)
}
func Fadds(frt, fra, frb uint8) uint32 {
	return AOp(op.OpFloatS, op.XoFadd, frt, fra, frb, 0, false)
}
func Fmadds(frt, fra, frc, frb uint8) uint32 {
	return AOp(op.OpFloatS, op.XoFmadd, frt, fra, frb, frc, false)
}

func Vperm(vd, va, vb, vc uint8) uint32 {
	return VAOp(op.XoVperm, vd, va, vb, vc)
}
func Vsel(vd, va, vb, vc uint8) uint32 {
	return VAOp(op.XoVsel, vd, va, vb, vc)
}
func Vmaddfp(vd, va, vc, vb uint8) uint32 {
	return VAOp(op.XoVmaddfp, vd, va, vb, vc)
}
func Vnmsubfp(vd, va, vc, vb uint8) uint32 {
	return VAOp(op.XoVnmsubfp, vd, va, vb, vc)
}

// Sc encodes the system call instruction, level 0.
func Sc() uint32 {
	return uint32(op.OpSc)<<26 | 2
}
