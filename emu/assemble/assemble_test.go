/*
 * CellPPU assembler test cases.
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

package assemble

import (
	"testing"

	"github.com/opencell-emu/ppu/emu/decoder"
)

// Known encodings checked against the architecture books.
func TestKnownEncodings(t *testing.T) {
	cases := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"addi r3,r0,100", Addi(3, 0, 100), 0x38600064},
		{"b +0x100", B(0x100), 0x48000100},
		{"blr", Bclr(20, 0, false), 0x4e800020},
		{"bctr", Bcctr(20, 0, false), 0x4e800420},
		{"sc", Sc(), 0x44000002},
		{"ori r0,r0,0 (nop)", Ori(0, 0, 0), 0x60000000},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("%s was incorrect got: %08x wanted: %08x", c.name, c.got, c.want)
		}
	}
}

func TestDFormRoundTrip(t *testing.T) {
	word := Addi(3, 4, -50)
	inst := decoder.Decode(word)
	if inst.Form != decoder.D {
		t.Fatalf("form was incorrect got: %s", inst.Form)
	}
	rt, ra, d := decoder.DForm(word)
	if rt != 3 || ra != 4 || d != -50 {
		t.Errorf("fields were incorrect got: %d %d %d", rt, ra, d)
	}
}

func TestXOFormRoundTrip(t *testing.T) {
	word := Add(3, 4, 5, true, true)
	rt, ra, rb, oe, xo, rc := decoder.XOForm(word)
	if rt != 3 || ra != 4 || rb != 5 {
		t.Errorf("registers were incorrect got: %d %d %d", rt, ra, rb)
	}
	if !oe || !rc {
		t.Error("OE or Rc bit was lost")
	}
	if xo != 266 {
		t.Errorf("xo was incorrect got: %d wanted: %d", xo, 266)
	}
}

func TestBranchRoundTrip(t *testing.T) {
	li, aa, lk := decoder.IForm(Bl(-0x4000))
	if li != -0x4000 || aa || !lk {
		t.Errorf("bl fields were incorrect got: %x %v %v", li, aa, lk)
	}

	bo, bi, bd, _, _ := decoder.BForm(Bc(12, 2, 0x40))
	if bo != 12 || bi != 2 || bd != 0x40 {
		t.Errorf("bc fields were incorrect got: %d %d %x", bo, bi, bd)
	}
}

// The MD encoders must place the split high bits of the six-bit fields.
func TestMDFormRoundTrip(t *testing.T) {
	word := Rldicl(4, 3, 34, 33, false)
	inst := decoder.Decode(word)
	if inst.Form != decoder.MD || inst.Xo != 0 {
		t.Fatalf("decode was incorrect got: %s xo %d", inst.Form, inst.Xo)
	}
	rs, ra, sh, mb, rc := decoder.MDForm(word)
	if rs != 3 || ra != 4 {
		t.Errorf("registers were incorrect got: %d %d", rs, ra)
	}
	if sh != 34 || mb != 33 {
		t.Errorf("split fields were incorrect got: sh %d mb %d", sh, mb)
	}
	if rc {
		t.Error("Rc bit was set")
	}
}

func TestSprEncoding(t *testing.T) {
	// The SPR number's halves swap in the encoding; mfspr/mtspr of LR
	// must decode back to SPR 8.
	_, ra, rb, xo, _ := decoder.XForm(Mfspr(4, 8))
	if xo != 339 {
		t.Errorf("mfspr xo was incorrect got: %d wanted: %d", xo, 339)
	}
	if uint16(rb)<<5|uint16(ra) != 8 {
		t.Errorf("mfspr spr was incorrect got: %d wanted: %d",
			uint16(rb)<<5|uint16(ra), 8)
	}
}

func TestVAFormRoundTrip(t *testing.T) {
	word := Vperm(3, 4, 5, 6)
	inst := decoder.Decode(word)
	if inst.Form != decoder.VA || inst.Xo != 43 {
		t.Fatalf("decode was incorrect got: %s xo %d", inst.Form, inst.Xo)
	}
	vd, va, vb, vc := decoder.VAForm(word)
	if vd != 3 || va != 4 || vb != 5 || vc != 6 {
		t.Errorf("fields were incorrect got: %d %d %d %d", vd, va, vb, vc)
	}
}
