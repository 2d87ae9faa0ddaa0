/*
 * CellPPU - PowerPC opcode numbers shared by the interpreter,
 *           assembler and disassembler.
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

package opcodemap

// Primary opcodes (bits 0-5, MSB first).
const (
	OpVector uint8 = 4  // VA/VX group
	OpMulli  uint8 = 7  // mulli
	OpSubfic uint8 = 8  // subfic
	OpCmpli  uint8 = 10 // cmpli
	OpCmpi   uint8 = 11 // cmpi
	OpAddic  uint8 = 12 // addic
	OpAddicR uint8 = 13 // addic.
	OpAddi   uint8 = 14 // addi
	OpAddis  uint8 = 15 // addis
	OpBc     uint8 = 16 // bc
	OpSc     uint8 = 17 // sc
	OpB      uint8 = 18 // b
	OpCrOps  uint8 = 19 // XL group
	OpRlwimi uint8 = 20 // rlwimi
	OpRlwinm uint8 = 21 // rlwinm
	OpRlwnm  uint8 = 23 // rlwnm
	OpOri    uint8 = 24 // ori
	OpOris   uint8 = 25 // oris
	OpXori   uint8 = 26 // xori
	OpXoris  uint8 = 27 // xoris
	OpAndiR  uint8 = 28 // andi.
	OpAndisR uint8 = 29 // andis.
	OpRldOps uint8 = 30 // MD group
	OpIndex  uint8 = 31 // X/XO group
	OpLwz    uint8 = 32 // lwz
	OpLbz    uint8 = 34 // lbz
	OpStw    uint8 = 36 // stw
	OpStb    uint8 = 38 // stb
	OpLhz    uint8 = 40 // lhz
	OpLha    uint8 = 42 // lha
	OpSth    uint8 = 44 // sth
	OpFloatS uint8 = 59 // A group, single precision
	OpFloat  uint8 = 63 // A group, double precision
)

// X-form extended opcodes (10 bits).
const (
	XoCmp   uint16 = 0
	XoLwzx  uint16 = 23
	XoAnd   uint16 = 28
	XoCmpl  uint16 = 32
	XoLbzx  uint16 = 87
	XoNor   uint16 = 124
	XoStwx  uint16 = 151
	XoStbx  uint16 = 215
	XoXor   uint16 = 316
	XoMfspr uint16 = 339
	XoOr    uint16 = 444
	XoMtspr uint16 = 467
)

// XO-form extended opcodes (9 bits, OE one bit above them).
const (
	XoSubf  uint16 = 40
	XoNeg   uint16 = 104
	XoMullw uint16 = 235
	XoAdd   uint16 = 266
	XoDivwu uint16 = 459
	XoDivw  uint16 = 491
)

// XL-form extended opcodes (10 bits).
const (
	XoMcrf   uint16 = 0
	XoBclr   uint16 = 16
	XoCrnor  uint16 = 33
	XoCrandc uint16 = 129
	XoCrxor  uint16 = 193
	XoCrnand uint16 = 225
	XoCrand  uint16 = 257
	XoCreqv  uint16 = 289
	XoCrorc  uint16 = 417
	XoCror   uint16 = 449
	XoBcctr  uint16 = 528
)

// MD-form extended opcodes (3 bits).
const (
	XoRldicl uint16 = 0
	XoRldicr uint16 = 1
)

// A-form extended opcodes (5 bits).
const (
	XoFdiv   uint16 = 18
	XoFsub   uint16 = 20
	XoFadd   uint16 = 21
	XoFsel   uint16 = 23
	XoFmul   uint16 = 25
	XoFmsub  uint16 = 28
	XoFmadd  uint16 = 29
	XoFnmsub uint16 = 30
	XoFnmadd uint16 = 31
)

// VA-form extended opcodes (6 bits).
const (
	XoVsel     uint16 = 42
	XoVperm    uint16 = 43
	XoVmaddfp  uint16 = 46
	XoVnmsubfp uint16 = 47
)

// Special purpose register numbers for mfspr/mtspr.
const (
	SprXer uint16 = 1
	SprLr  uint16 = 8
	SprCtr uint16 = 9
)
