/*
 * CellPPU - Vector execution: the VA-form three-operand group.
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

	"github.com/opencell-emu/ppu/emu/decoder"
	op "github.com/opencell-emu/ppu/emu/opcodemap"
)

// vrByte extracts byte i (0 = leftmost) from a vector register held as
// four big-endian word lanes.
func vrByte(v [4]uint32, i int) uint8 {
	return uint8(v[i>>2] >> (24 - 8*(i&3)))
}

// vrPack packs 16 bytes, leftmost first, back into word lanes.
func vrPack(b [16]byte) [4]uint32 {
	var v [4]uint32
	for lane := range v {
		v[lane] = uint32(b[lane*4])<<24 | uint32(b[lane*4+1])<<16 |
			uint32(b[lane*4+2])<<8 | uint32(b[lane*4+3])
	}
	return v
}

// vrFloats views the four word lanes as single precision floats.
func vrFloats(v [4]uint32) [4]float32 {
	var f [4]float32
	for i := range f {
		f[i] = math.Float32frombits(v[i])
	}
	return f
}

// vrFromFloats packs four single precision floats into word lanes.
func vrFromFloats(f [4]float32) [4]uint32 {
	var v [4]uint32
	for i := range v {
		v[i] = math.Float32bits(f[i])
	}
	return v
}

// stepVA executes the vector three-operand group: byte permute,
// lane-wise select and the single precision fused multiply family.
func (ip *Interpreter) stepVA(t *Thread, inst decoder.Inst) {
	vd, va, vb, vc := decoder.VAForm(inst.Opcode)

	a := t.VR(int(va))
	b := t.VR(int(vb))
	c := t.VR(int(vc))

	switch inst.Xo {
	case op.XoVperm:
		// Each result byte selects from the 32-byte concatenation of
		// VA and VB using the low 5 bits of the VC byte.
		var result [16]byte
		for i := range result {
			sel := int(vrByte(c, i) & 0x1f)
			if sel < 16 {
				result[i] = vrByte(a, sel)
			} else {
				result[i] = vrByte(b, sel-16)
			}
		}
		t.SetVR(int(vd), vrPack(result))

	case op.XoVsel:
		// Bitwise select: VC bits choose VB where set, VA where clear.
		var result [4]uint32
		for i := range result {
			result[i] = (a[i] &^ c[i]) | (b[i] & c[i])
		}
		t.SetVR(int(vd), result)

	case op.XoVmaddfp:
		af, bf, cf := vrFloats(a), vrFloats(b), vrFloats(c)
		var result [4]float32
		for i := range result {
			result[i] = float32(float64(af[i])*float64(cf[i]) + float64(bf[i]))
		}
		t.SetVR(int(vd), vrFromFloats(result))

	case op.XoVnmsubfp:
		af, bf, cf := vrFloats(a), vrFloats(b), vrFloats(c)
		var result [4]float32
		for i := range result {
			result[i] = float32(-(float64(af[i])*float64(cf[i]) - float64(bf[i])))
		}
		t.SetVR(int(vd), vrFromFloats(result))

	default:
		slog.Warn("unimplemented VA-form xo",
			"xo", inst.Xo, "pc", fmt.Sprintf("%08x", t.PC()))
	}

	t.AdvancePC()
}
