/*
 * CellPPU - PowerPC instruction form classifier and field extraction.
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

package decoder

/*
   PowerPC instructions are a fixed 32 bits, big endian, with the primary
   opcode in the 6 most significant bits. Bit numbering below follows the
   architecture books: bit 0 is the MSB.

    I format:   (unconditional branch)
      +------+--------------------------------+----+----+
      |  op  |               LI               | AA | LK |
      +------+--------------------------------+----+----+
       0      6                                30   31

    B format:   (conditional branch)
      +------+-----+-----+--------------------+----+----+
      |  op  | BO  | BI  |         BD         | AA | LK |
      +------+-----+-----+--------------------+----+----+

    D format:   (load/store and immediate arithmetic)
      +------+-----+-----+------------------------------+
      |  op  | RT  | RA  |              D               |
      +------+-----+-----+------------------------------+

    X/XO/XL formats: (indexed load/store, logic, arithmetic, CR ops)
      +------+-----+-----+-----+--------------------+----+
      |  op  | RT  | RA  | RB  |         XO         | Rc |
      +------+-----+-----+-----+--------------------+----+
       * XO form uses a 9 bit XO with the OE bit above it.

    M format:   (rotate and mask)
      +------+-----+-----+-----+-----+-----+----------+----+
      |  op  | RS  | RA  |SH/RB| MB  | ME             | Rc |
      +------+-----+-----+-----+-----+-----+----------+----+

    A format:   (floating multiply-add family)
      +------+-----+-----+-----+-----+----------+----+
      |  op  | FRT | FRA | FRB | FRC |    XO    | Rc |
      +------+-----+-----+-----+-----+----------+----+

    VA format:  (vector three operand)
      +------+-----+-----+-----+-----+----------------+
      |  op  | VD  | VA  | VB  | VC  |       XO       |
      +------+-----+-----+-----+-----+----------------+
*/

// Form is the instruction encoding template a primary opcode follows.
type Form int

const (
	Unknown Form = iota
	I
	B
	SC
	D
	DS
	X
	XL
	XFX
	XFL
	XS
	XO
	A
	M
	MD
	MDS
	VA
	VX
	VXR
)

var formNames = map[Form]string{
	Unknown: "Unknown",
	I:       "I",
	B:       "B",
	SC:      "SC",
	D:       "D",
	DS:      "DS",
	X:       "X",
	XL:      "XL",
	XFX:     "XFX",
	XFL:     "XFL",
	XS:      "XS",
	XO:      "XO",
	A:       "A",
	M:       "M",
	MD:      "MD",
	MDS:     "MDS",
	VA:      "VA",
	VX:      "VX",
	VXR:     "VXR",
}

func (f Form) String() string {
	if name, ok := formNames[f]; ok {
		return name
	}
	return "Unknown"
}

// Inst is one decoded instruction. Built fresh on every Decode call;
// never cached, since emulated programs may rewrite their own code.
type Inst struct {
	Opcode uint32 // Raw instruction word.
	Op     uint8  // Primary opcode, bits 0-5.
	Xo     uint16 // Extended opcode, zero when the form has none.
	Form   Form
}

// Decode classifies a 32-bit instruction word. Total over all inputs:
// opcodes outside every known range come back as Unknown with Xo 0.
func Decode(opcode uint32) Inst {
	op := uint8((opcode >> 26) & 0x3f)
	form := Unknown
	var xo uint16

	switch {
	case op == 18:
		form = I
	case op == 16:
		form = B
	case op == 17:
		form = SC
	case op == 2 || op == 3,
		op >= 7 && op <= 15,
		op >= 24 && op <= 29,
		op >= 32 && op <= 55,
		op == 58:
		form = D
	case op == 62:
		form = DS
	case op == 19:
		form = XL
		xo = uint16((opcode >> 1) & 0x3ff)
	case op == 31:
		// The true form may be X, XO, XS or XFX depending on further
		// fields; the execution routine sorts that out.
		form = X
		xo = uint16((opcode >> 1) & 0x3ff)
	case op == 30:
		form = MD
		xo = uint16((opcode >> 2) & 0x7)
	case op >= 20 && op <= 23:
		form = M
	case op == 59 || op == 63:
		form = A
		xo = uint16((opcode >> 1) & 0x1f)
	case op == 4:
		form = VA
		xo = uint16(opcode & 0x3f)
	}

	return Inst{Opcode: opcode, Op: op, Xo: xo, Form: form}
}

// DForm returns RT (bits 6-10), RA (11-15) and the signed 16-bit
// displacement/immediate.
func DForm(opcode uint32) (uint8, uint8, int16) {
	rt := uint8((opcode >> 21) & 0x1f)
	ra := uint8((opcode >> 16) & 0x1f)
	d := int16(opcode & 0xffff)
	return rt, ra, d
}

// XForm returns RT, RA, RB, the 10-bit extended opcode and the Rc bit.
func XForm(opcode uint32) (uint8, uint8, uint8, uint16, bool) {
	rt := uint8((opcode >> 21) & 0x1f)
	ra := uint8((opcode >> 16) & 0x1f)
	rb := uint8((opcode >> 11) & 0x1f)
	xo := uint16((opcode >> 1) & 0x3ff)
	rc := (opcode & 1) != 0
	return rt, ra, rb, xo, rc
}

// XOForm returns RT, RA, RB, the OE bit, the 9-bit extended opcode and
// the Rc bit.
func XOForm(opcode uint32) (uint8, uint8, uint8, bool, uint16, bool) {
	rt := uint8((opcode >> 21) & 0x1f)
	ra := uint8((opcode >> 16) & 0x1f)
	rb := uint8((opcode >> 11) & 0x1f)
	oe := ((opcode >> 10) & 1) != 0
	xo := uint16((opcode >> 1) & 0x1ff)
	rc := (opcode & 1) != 0
	return rt, ra, rb, oe, xo, rc
}

// IForm returns the branch displacement already sign extended from 24
// bits and converted from words to bytes, plus the AA and LK bits.
func IForm(opcode uint32) (int32, bool, bool) {
	li := int32((opcode >> 2) & 0xffffff)
	if li&0x800000 != 0 {
		li |= ^int32(0xffffff)
	}
	li <<= 2
	aa := ((opcode >> 1) & 1) != 0
	lk := (opcode & 1) != 0
	return li, aa, lk
}

// BForm returns BO, BI, the branch displacement sign extended from 14
// bits and converted to bytes, plus the AA and LK bits.
func BForm(opcode uint32) (uint8, uint8, int32, bool, bool) {
	bo := uint8((opcode >> 21) & 0x1f)
	bi := uint8((opcode >> 16) & 0x1f)
	bd := int32((opcode >> 2) & 0x3fff)
	if bd&0x2000 != 0 {
		bd |= ^int32(0x3fff)
	}
	bd <<= 2
	aa := ((opcode >> 1) & 1) != 0
	lk := (opcode & 1) != 0
	return bo, bi, bd, aa, lk
}

// MForm returns RS, RA, the shift amount or RB register, the mask
// begin/end bit indexes and the Rc bit.
func MForm(opcode uint32) (uint8, uint8, uint8, uint8, uint8, bool) {
	rs := uint8((opcode >> 21) & 0x1f)
	ra := uint8((opcode >> 16) & 0x1f)
	rb := uint8((opcode >> 11) & 0x1f)
	mb := uint8((opcode >> 6) & 0x1f)
	me := uint8((opcode >> 1) & 0x1f)
	rc := (opcode & 1) != 0
	return rs, ra, rb, mb, me, rc
}

// MDForm returns RS, RA, the 6-bit shift amount (low five bits plus the
// split high bit) and the 6-bit mask index, whose high bit sits below
// the five-bit field in the encoding.
func MDForm(opcode uint32) (uint8, uint8, uint8, uint8, bool) {
	rs := uint8((opcode >> 21) & 0x1f)
	ra := uint8((opcode >> 16) & 0x1f)
	sh := uint8((opcode>>11)&0x1f) | uint8((opcode&2)<<4)
	mb := uint8((opcode>>6)&0x1f) | uint8(opcode&0x20)
	rc := (opcode & 1) != 0
	return rs, ra, sh, mb, rc
}

// AForm returns FRT, FRA, FRB, FRC and the Rc bit. The multiply
// operands of the fused family are FRA and FRC; FRB is the addend.
func AForm(opcode uint32) (uint8, uint8, uint8, uint8, bool) {
	frt := uint8((opcode >> 21) & 0x1f)
	fra := uint8((opcode >> 16) & 0x1f)
	frb := uint8((opcode >> 11) & 0x1f)
	frc := uint8((opcode >> 6) & 0x1f)
	rc := (opcode & 1) != 0
	return frt, fra, frb, frc, rc
}

// VAForm returns VD, VA, VB and VC.
func VAForm(opcode uint32) (uint8, uint8, uint8, uint8) {
	vd := uint8((opcode >> 21) & 0x1f)
	va := uint8((opcode >> 16) & 0x1f)
	vb := uint8((opcode >> 11) & 0x1f)
	vc := uint8((opcode >> 6) & 0x1f)
	return vd, va, vb, vc
}
