/*
 * CellPPU disassembler test cases.
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

package disassemble

import (
	"strings"
	"testing"

	"github.com/opencell-emu/ppu/emu/assemble"
)

func TestDisassemble(t *testing.T) {
	cases := []struct {
		opcode uint32
		pc     uint64
		want   string
	}{
		{assemble.Addi(3, 0, 100), 0x1000, "addi     r3,r0,100"},
		{assemble.Addi(3, 4, -50), 0x1000, "addi     r3,r4,-50"},
		{assemble.Ori(5, 4, 0xff), 0x1000, "ori      r5,r4,0xff"},
		{assemble.Lwz(3, 1, 8), 0x1000, "lwz      r3,8(r1)"},
		{assemble.Stw(3, 1, -4), 0x1000, "stw      r3,-4(r1)"},
		{assemble.B(0x100), 0x1000, "b        0x1100"},
		{assemble.Bl(-0x100), 0x1000, "bl       0xf00"},
		{assemble.Bc(12, 2, 0x40), 0x1000, "bc       12,2,0x1040"},
		{assemble.Bclr(20, 0, false), 0x1000, "bclr     20,0"},
		{assemble.Sc(), 0x1000, "sc"},
		{assemble.Add(3, 4, 5, false, false), 0x1000, "add      r3,r4,r5"},
		{assemble.Add(3, 4, 5, true, true), 0x1000, "addo.    r3,r4,r5"},
		{assemble.Or(5, 3, 4, false), 0x1000, "or       r5,r3,r4"},
		{assemble.Neg(3, 4, false, false), 0x1000, "neg      r3,r4"},
		{assemble.Mfspr(4, 8), 0x1000, "mfspr    r4,lr"},
		{assemble.Mtspr(9, 5), 0x1000, "mtspr    ctr,r5"},
		{assemble.Rlwinm(4, 3, 8, 0, 31, false), 0x1000, "rlwinm   r4,r3,8,0,31"},
		{assemble.Rldicl(4, 3, 0, 32, false), 0x1000, "rldicl   r4,r3,0,32"},
		{assemble.Fadd(1, 2, 3), 0x1000, "fadd     f1,f2,f3"},
		{assemble.Fmadds(1, 2, 3, 4), 0x1000, "fmadds   f1,f2,f3,f4"},
		{assemble.Vperm(3, 4, 5, 6), 0x1000, "vperm    v3,v4,v5,v6"},
	}
	for _, c := range cases {
		got := Disassemble(c.pc, c.opcode)
		if got != c.want {
			t.Errorf("disassembly was incorrect got: %q wanted: %q", got, c.want)
		}
	}
}

// Anything unknown renders as a raw word directive.
func TestDisassembleUnknown(t *testing.T) {
	got := Disassemble(0x1000, 0x00000000)
	if !strings.HasPrefix(got, ".long") {
		t.Errorf("unknown opcode was incorrect got: %q", got)
	}
	if !strings.Contains(got, "0x00000000") {
		t.Errorf("unknown opcode lost the raw word got: %q", got)
	}
}
