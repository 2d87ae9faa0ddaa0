/*
 * CellPPU - Breakpoint registry and instruction counter.
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

// Package breakpoint holds the shared debugging state consulted on
// every instruction fetch: an address-keyed breakpoint table and the
// cumulative instruction counter. Both may be poked from a debugger
// goroutine while an interpreter is mid-step, so the table lives
// behind a reader/writer lock and the counter is atomic.
package breakpoint

import (
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
)

// Kind selects how a breakpoint's condition is evaluated.
type Kind int

const (
	// Unconditional fires whenever the PC reaches the address.
	Unconditional Kind = iota
	// GprEquals fires when a general purpose register holds a value.
	GprEquals
	// InstrCount fires once the cumulative instruction counter has
	// reached a threshold.
	InstrCount
)

func (k Kind) String() string {
	switch k {
	case Unconditional:
		return "exec"
	case GprEquals:
		return "gpr"
	case InstrCount:
		return "count"
	}
	return "unknown"
}

// Breakpoint is one table entry. One breakpoint per address: adding at
// an occupied address replaces the prior entry.
type Breakpoint struct {
	Addr     uint64
	Kind     Kind
	Reg      int    // GprEquals: register index.
	Value    uint64 // GprEquals: expected value.
	Count    uint64 // InstrCount: counter threshold.
	Enabled  bool
	HitCount uint64
}

// Thread is the slice of thread state a condition can observe.
type Thread interface {
	PC() uint64
	GPR(reg int) uint64
}

// Registry is safe for concurrent use from a debugger surface and any
// number of stepping interpreters.
type Registry struct {
	mu     sync.RWMutex
	points map[uint64]*Breakpoint
	icount atomic.Uint64
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{points: map[uint64]*Breakpoint{}}
}

func (r *Registry) insert(bp *Breakpoint) {
	r.mu.Lock()
	r.points[bp.Addr] = bp
	r.mu.Unlock()
	slog.Debug("breakpoint added", "addr", bp.Addr, "kind", bp.Kind.String())
}

// Add sets an unconditional breakpoint at addr.
func (r *Registry) Add(addr uint64) {
	r.insert(&Breakpoint{Addr: addr, Kind: Unconditional, Enabled: true})
}

// AddGprEquals sets a breakpoint at addr conditional on GPR reg
// holding value.
func (r *Registry) AddGprEquals(addr uint64, reg int, value uint64) {
	r.insert(&Breakpoint{
		Addr: addr, Kind: GprEquals, Reg: reg, Value: value, Enabled: true,
	})
}

// AddInstrCount sets a breakpoint at addr conditional on the
// cumulative instruction counter having reached count.
func (r *Registry) AddInstrCount(addr uint64, count uint64) {
	r.insert(&Breakpoint{
		Addr: addr, Kind: InstrCount, Count: count, Enabled: true,
	})
}

// Remove deletes the breakpoint at addr.
func (r *Registry) Remove(addr uint64) bool {
	r.mu.Lock()
	_, ok := r.points[addr]
	delete(r.points, addr)
	r.mu.Unlock()
	if ok {
		slog.Debug("breakpoint removed", "addr", addr)
	}
	return ok
}

// Enable arms the breakpoint at addr.
func (r *Registry) Enable(addr uint64) bool {
	return r.setEnabled(addr, true)
}

// Disable disarms the breakpoint at addr without removing it.
func (r *Registry) Disable(addr uint64) bool {
	return r.setEnabled(addr, false)
}

func (r *Registry) setEnabled(addr uint64, enabled bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	bp, ok := r.points[addr]
	if ok {
		bp.Enabled = enabled
	}
	return ok
}

// Clear drops every breakpoint.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.points = map[uint64]*Breakpoint{}
	r.mu.Unlock()
	slog.Debug("breakpoints cleared")
}

// List returns a snapshot sorted by address, not a live view.
func (r *Registry) List() []Breakpoint {
	r.mu.RLock()
	list := make([]Breakpoint, 0, len(r.points))
	for _, bp := range r.points {
		list = append(list, *bp)
	}
	r.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool { return list[i].Addr < list[j].Addr })
	return list
}

// Lookup returns a copy of the entry at addr.
func (r *Registry) Lookup(addr uint64) (Breakpoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bp, ok := r.points[addr]
	if !ok {
		return Breakpoint{}, false
	}
	return *bp, true
}

// ShouldBreak reports whether an enabled breakpoint's condition holds
// at the thread's current PC. It has no side effects; the interpreter
// records the hit itself, exactly once per triggering fetch. The empty
// and miss cases return under a read lock with no allocation.
func (r *Registry) ShouldBreak(t Thread) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bp, ok := r.points[t.PC()]
	if !ok || !bp.Enabled {
		return false
	}
	switch bp.Kind {
	case GprEquals:
		return t.GPR(bp.Reg) == bp.Value
	case InstrCount:
		return r.icount.Load() >= bp.Count
	}
	return true
}

// RecordHit bumps the hit count of the breakpoint at addr.
func (r *Registry) RecordHit(addr uint64) {
	r.mu.Lock()
	if bp, ok := r.points[addr]; ok {
		bp.HitCount++
	}
	r.mu.Unlock()
}

// CountStep advances the cumulative instruction counter. Called once
// per fetched instruction, after the breakpoint check.
func (r *Registry) CountStep() {
	r.icount.Add(1)
}

// InstructionCount returns the cumulative instruction counter.
func (r *Registry) InstructionCount() uint64 {
	return r.icount.Load()
}

// ResetInstructionCount zeroes the cumulative instruction counter.
func (r *Registry) ResetInstructionCount() {
	r.icount.Store(0)
}
