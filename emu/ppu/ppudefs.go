/*
 * CellPPU - PPU architectural constants.
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

// XER bit masks. The register is 64 bits wide but the defined bits
// live in the low word, mirroring the hardware layout.
const (
	xerSO uint64 = 0x80000000 // Summary overflow, sticky.
	xerOV uint64 = 0x40000000 // Overflow.
	xerCA uint64 = 0x20000000 // Carry.
)

// Condition register nibble, one field per comparison result.
const (
	crLT uint32 = 0b1000
	crGT uint32 = 0b0100
	crEQ uint32 = 0b0010
	crSO uint32 = 0b0001
)

// BO field gate bits for conditional branches.
const (
	boIgnoreCond uint8 = 0x10 // Branch regardless of the CR bit.
	boCondSense  uint8 = 0x08 // Expected value of the CR bit.
	boIgnoreCtr  uint8 = 0x04 // Do not decrement and test CTR.
	boCtrSense   uint8 = 0x02 // Branch when CTR reaches zero.
)
