/*
 * CellPPU memory test cases.
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

package memory

import (
	"errors"
	"testing"
)

func TestMemorySize(t *testing.T) {
	mem := New(64)
	if mem.Size() != 64*1024 {
		t.Errorf("size was incorrect got: %d wanted: %d", mem.Size(), 64*1024)
	}
}

func TestMemoryByteOrder(t *testing.T) {
	mem := New(1)
	if err := mem.WriteWord(0, 0x11223344); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	// Big endian: most significant byte first.
	b, _ := mem.ReadByte(0)
	if b != 0x11 {
		t.Errorf("byte 0 was incorrect got: %x wanted: %x", b, 0x11)
	}
	b, _ = mem.ReadByte(3)
	if b != 0x44 {
		t.Errorf("byte 3 was incorrect got: %x wanted: %x", b, 0x44)
	}
	h, _ := mem.ReadHalf(2)
	if h != 0x3344 {
		t.Errorf("half 2 was incorrect got: %x wanted: %x", h, 0x3344)
	}
}

func TestMemoryDouble(t *testing.T) {
	mem := New(1)
	if err := mem.WriteDouble(8, 0x1122334455667788); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	v, err := mem.ReadDouble(8)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if v != 0x1122334455667788 {
		t.Errorf("double was incorrect got: %x", v)
	}
	w, _ := mem.ReadWord(8)
	if w != 0x11223344 {
		t.Errorf("high word was incorrect got: %x wanted: %x", w, 0x11223344)
	}
}

// Unaligned word access is allowed.
func TestMemoryUnaligned(t *testing.T) {
	mem := New(1)
	if err := mem.WriteWord(1, 0xcafebabe); err != nil {
		t.Fatalf("unaligned write failed: %v", err)
	}
	v, err := mem.ReadWord(1)
	if err != nil {
		t.Fatalf("unaligned read failed: %v", err)
	}
	if v != 0xcafebabe {
		t.Errorf("unaligned word was incorrect got: %x", v)
	}
}

// Quad access forces 16-byte alignment itself.
func TestMemoryQuadAlign(t *testing.T) {
	mem := New(1)
	var value [16]byte
	for i := range value {
		value[i] = byte(i)
	}
	if err := mem.WriteQuad(0x17, value); err != nil {
		t.Fatalf("quad write failed: %v", err)
	}
	got, err := mem.ReadQuad(0x10)
	if err != nil {
		t.Fatalf("quad read failed: %v", err)
	}
	if got != value {
		t.Errorf("quad was incorrect got: %x wanted: %x", got, value)
	}
}

func TestMemoryBounds(t *testing.T) {
	mem := New(1)

	if _, err := mem.ReadWord(1022); err == nil {
		t.Error("straddling read did not fail")
	}
	if err := mem.WriteByte(1024, 1); err == nil {
		t.Error("out of range write did not fail")
	}

	// The error carries the faulting address and width.
	_, err := mem.ReadDouble(0xfffffffc)
	var access *AccessError
	if !errors.As(err, &access) {
		t.Fatalf("error type was incorrect got: %v", err)
	}
	if access.Addr != 0xfffffffc || access.Size != 8 {
		t.Errorf("access error was incorrect got: %x %d", access.Addr, access.Size)
	}
}
