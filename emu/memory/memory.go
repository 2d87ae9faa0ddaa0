/*
 * CellPPU - Low level memory
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

// Package memory is a flat byte-addressable big-endian store. It backs
// the interpreter in tests, the console and main; a full system build
// replaces it with the paged address space of the memory subsystem.
package memory

import (
	"encoding/binary"
	"fmt"
)

// Maximum size in K (256MB, the console's XDR main memory).
const maxK = 256 * 1024

// AccessError reports an access touching unmapped memory.
type AccessError struct {
	Addr uint32
	Size int
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("unmapped %d-byte access at %08x", e.Size, e.Addr)
}

// Memory is one flat region starting at address 0. Unaligned access is
// allowed everywhere; the emulated bus raises alignment interrupts at
// a layer above this one when it cares.
type Memory struct {
	data []byte
}

// New returns a memory of the given size in K, capped at 256MB.
func New(sizeK int) *Memory {
	if sizeK > maxK {
		sizeK = maxK
	}
	return &Memory{data: make([]byte, sizeK*1024)}
}

// Size returns the size of memory in bytes.
func (m *Memory) Size() uint32 {
	return uint32(len(m.data))
}

func (m *Memory) check(addr uint32, size int) error {
	if uint64(addr)+uint64(size) > uint64(len(m.data)) {
		return &AccessError{Addr: addr, Size: size}
	}
	return nil
}

// ReadByte reads one byte.
func (m *Memory) ReadByte(addr uint32) (uint8, error) {
	if err := m.check(addr, 1); err != nil {
		return 0, err
	}
	return m.data[addr], nil
}

// WriteByte writes one byte.
func (m *Memory) WriteByte(addr uint32, value uint8) error {
	if err := m.check(addr, 1); err != nil {
		return err
	}
	m.data[addr] = value
	return nil
}

// ReadHalf reads a big-endian halfword.
func (m *Memory) ReadHalf(addr uint32) (uint16, error) {
	if err := m.check(addr, 2); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(m.data[addr:]), nil
}

// WriteHalf writes a big-endian halfword.
func (m *Memory) WriteHalf(addr uint32, value uint16) error {
	if err := m.check(addr, 2); err != nil {
		return err
	}
	binary.BigEndian.PutUint16(m.data[addr:], value)
	return nil
}

// ReadWord reads a big-endian word.
func (m *Memory) ReadWord(addr uint32) (uint32, error) {
	if err := m.check(addr, 4); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(m.data[addr:]), nil
}

// WriteWord writes a big-endian word.
func (m *Memory) WriteWord(addr uint32, value uint32) error {
	if err := m.check(addr, 4); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(m.data[addr:], value)
	return nil
}

// ReadDouble reads a big-endian doubleword.
func (m *Memory) ReadDouble(addr uint32) (uint64, error) {
	if err := m.check(addr, 8); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(m.data[addr:]), nil
}

// WriteDouble writes a big-endian doubleword.
func (m *Memory) WriteDouble(addr uint32, value uint64) error {
	if err := m.check(addr, 8); err != nil {
		return err
	}
	binary.BigEndian.PutUint64(m.data[addr:], value)
	return nil
}

// ReadQuad reads an aligned 16-byte vector.
func (m *Memory) ReadQuad(addr uint32) ([16]byte, error) {
	var value [16]byte
	addr &^= 15
	if err := m.check(addr, 16); err != nil {
		return value, err
	}
	copy(value[:], m.data[addr:])
	return value, nil
}

// WriteQuad writes an aligned 16-byte vector.
func (m *Memory) WriteQuad(addr uint32, value [16]byte) error {
	addr &^= 15
	if err := m.check(addr, 16); err != nil {
		return err
	}
	copy(m.data[addr:], value[:])
	return nil
}
