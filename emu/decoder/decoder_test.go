/*
 * CellPPU decoder test cases.
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

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
)

func TestDecodeForms(t *testing.T) {
	cases := []struct {
		name   string
		opcode uint32
		form   Form
		op     uint8
		xo     uint16
	}{
		{"b", 0x48000100, I, 18, 0},
		{"bc", 0x41820040, B, 16, 0},
		{"sc", 0x44000002, SC, 17, 0},
		{"addi", 0x38600064, D, 14, 0},
		{"addis", 0x3c601234, D, 15, 0},
		{"mulli", 0x1c640003, D, 7, 0},
		{"lwz", 0x80640008, D, 32, 0},
		{"stw", 0x90640008, D, 36, 0},
		{"ori", 0x60830001, D, 24, 0},
		{"std", 0xf8410028, DS, 62, 0},
		{"add", 0x7c642a14, X, 31, 266},
		{"or", 0x7c852378, X, 31, 444},
		{"bclr", 0x4e800020, XL, 19, 16},
		{"bcctr", 0x4e800420, XL, 19, 528},
		{"rlwinm", 0x5464063e, M, 21, 0},
		{"rlwimi", 0x50640420, M, 20, 0},
		{"rldicl", 0x78640020, MD, 30, 0},
		{"rldicr", 0x786407c6, MD, 30, 1},
		{"fadd", 0xfc64282a, A, 63, 21},
		{"fadds", 0xec64282a, A, 59, 21},
		{"vperm", 0x1064216b, VA, 4, 43},
	}
	for _, c := range cases {
		inst := Decode(c.opcode)
		assert.Equal(t, c.form, inst.Form, "%s form: %s", c.name, spew.Sdump(inst))
		assert.Equal(t, c.op, inst.Op, "%s primary opcode", c.name)
		assert.Equal(t, c.xo, inst.Xo, "%s extended opcode", c.name)
		assert.Equal(t, c.opcode, inst.Opcode, "%s raw word", c.name)
	}
}

// The primary opcodes outside every recognized range classify as
// Unknown with a zero extended opcode.
func TestDecodeUnknown(t *testing.T) {
	for _, primary := range []uint32{0, 1, 5, 6, 56, 57, 60, 61} {
		inst := Decode(primary << 26)
		assert.Equal(t, Unknown, inst.Form, "primary %d", primary)
		assert.Equal(t, uint16(0), inst.Xo, "primary %d", primary)
	}
}

func TestDecodeDRanges(t *testing.T) {
	// Every D-form primary opcode of the load/store and immediate
	// groups.
	dOps := []uint32{2, 3, 7, 8, 9, 10, 11, 12, 13, 14, 15,
		24, 25, 26, 27, 28, 29, 58}
	for primary := uint32(32); primary <= 55; primary++ {
		dOps = append(dOps, primary)
	}
	for _, primary := range dOps {
		inst := Decode(primary << 26)
		assert.Equal(t, D, inst.Form, "primary %d", primary)
	}
}

func TestDFormFields(t *testing.T) {
	// addi r3, r4, 100.
	rt, ra, d := DForm(0x38640064)
	assert.Equal(t, uint8(3), rt)
	assert.Equal(t, uint8(4), ra)
	assert.Equal(t, int16(100), d)

	// Negative displacement sign extends.
	_, _, d = DForm(0x3864ffce)
	assert.Equal(t, int16(-50), d)
}

func TestXFormFields(t *testing.T) {
	// add r3, r4, r5 with Rc.
	rt, ra, rb, xo, rc := XForm(0x7c642a15)
	assert.Equal(t, uint8(3), rt)
	assert.Equal(t, uint8(4), ra)
	assert.Equal(t, uint8(5), rb)
	assert.Equal(t, uint16(266), xo)
	assert.True(t, rc)
}

func TestXOFormFields(t *testing.T) {
	// addo: OE set shifts the 10-bit xo by 512 but the 9-bit xo holds.
	rt, ra, rb, oe, xo, rc := XOForm(0x7c642e14)
	assert.Equal(t, uint8(3), rt)
	assert.Equal(t, uint8(4), ra)
	assert.Equal(t, uint8(5), rb)
	assert.True(t, oe)
	assert.Equal(t, uint16(266), xo)
	assert.False(t, rc)

	inst := Decode(0x7c642e14)
	assert.Equal(t, uint16(266+512), inst.Xo, "10-bit view includes OE")
}

func TestIFormFields(t *testing.T) {
	// b +0x100.
	li, aa, lk := IForm(0x48000100)
	assert.Equal(t, int32(0x100), li)
	assert.False(t, aa)
	assert.False(t, lk)

	// bla: absolute with link.
	li, aa, lk = IForm(0x48000103)
	assert.Equal(t, int32(0x100), li)
	assert.True(t, aa)
	assert.True(t, lk)

	// Backward branch sign extends from 24 bits.
	li, _, _ = IForm(0x4bffff00)
	assert.Equal(t, int32(-0x100), li)
}

func TestBFormFields(t *testing.T) {
	// bc 12, 2, +0x40.
	bo, bi, bd, aa, lk := BForm(0x41820040)
	assert.Equal(t, uint8(12), bo)
	assert.Equal(t, uint8(2), bi)
	assert.Equal(t, int32(0x40), bd)
	assert.False(t, aa)
	assert.False(t, lk)

	// Backward displacement sign extends from 14 bits.
	_, _, bd, _, _ = BForm(0x4182fffc)
	assert.Equal(t, int32(-4), bd)
}

func TestMFormFields(t *testing.T) {
	// rlwinm r4, r3, 8, 16, 31.
	rs, ra, sh, mb, me, rc := MForm(0x5464443e)
	assert.Equal(t, uint8(3), rs)
	assert.Equal(t, uint8(4), ra)
	assert.Equal(t, uint8(8), sh)
	assert.Equal(t, uint8(16), mb)
	assert.Equal(t, uint8(31), me)
	assert.False(t, rc)
}

// The MD form splits both six-bit fields; the high bits live away from
// the low five.
func TestMDFormFields(t *testing.T) {
	// rldicl r4, r3, 34, 33: sh and mb both need their high bit.
	opcode := uint32(30)<<26 | uint32(3)<<21 | uint32(4)<<16 |
		uint32(34&0x1f)<<11 | uint32(33&0x1f)<<6 | uint32(33&0x20) |
		uint32(34&0x20)>>4
	rs, ra, sh, mb, rc := MDForm(opcode)
	assert.Equal(t, uint8(3), rs)
	assert.Equal(t, uint8(4), ra)
	assert.Equal(t, uint8(34), sh)
	assert.Equal(t, uint8(33), mb)
	assert.False(t, rc)
}

func TestAFormFields(t *testing.T) {
	// fmadd f1, f2, f3, f4: frc multiplies, frb adds.
	opcode := uint32(63)<<26 | uint32(1)<<21 | uint32(2)<<16 |
		uint32(4)<<11 | uint32(3)<<6 | uint32(29)<<1
	frt, fra, frb, frc, rc := AForm(opcode)
	assert.Equal(t, uint8(1), frt)
	assert.Equal(t, uint8(2), fra)
	assert.Equal(t, uint8(4), frb)
	assert.Equal(t, uint8(3), frc)
	assert.False(t, rc)
}

func TestVAFormFields(t *testing.T) {
	// vperm v3, v4, v5, v6.
	opcode := uint32(4)<<26 | uint32(3)<<21 | uint32(4)<<16 |
		uint32(5)<<11 | uint32(6)<<6 | 43
	vd, va, vb, vc := VAForm(opcode)
	assert.Equal(t, uint8(3), vd)
	assert.Equal(t, uint8(4), va)
	assert.Equal(t, uint8(5), vb)
	assert.Equal(t, uint8(6), vc)
}

func TestFormString(t *testing.T) {
	assert.Equal(t, "D", D.String())
	assert.Equal(t, "VA", VA.String())
	assert.Equal(t, "Unknown", Unknown.String())
	assert.Equal(t, "Unknown", Form(99).String())
}
