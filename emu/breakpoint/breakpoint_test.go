/*
 * CellPPU breakpoint registry test cases.
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

package breakpoint

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeThread satisfies the Thread view with fixed values.
type fakeThread struct {
	pc   uint64
	gprs [32]uint64
}

func (f *fakeThread) PC() uint64         { return f.pc }
func (f *fakeThread) GPR(reg int) uint64 { return f.gprs[reg] }

func TestRegistryAddRemove(t *testing.T) {
	r := NewRegistry()
	r.Add(0x1000)
	r.Add(0x2000)

	bp, ok := r.Lookup(0x1000)
	require.True(t, ok)
	assert.Equal(t, Unconditional, bp.Kind)
	assert.True(t, bp.Enabled)

	assert.True(t, r.Remove(0x1000))
	assert.False(t, r.Remove(0x1000), "second remove finds nothing")
	_, ok = r.Lookup(0x1000)
	assert.False(t, ok)
}

// One breakpoint per address: a second add replaces the first.
func TestRegistryReplace(t *testing.T) {
	r := NewRegistry()
	r.Add(0x1000)
	r.AddGprEquals(0x1000, 3, 42)

	bp, ok := r.Lookup(0x1000)
	require.True(t, ok)
	assert.Equal(t, GprEquals, bp.Kind)
	assert.Equal(t, 3, bp.Reg)
	assert.Equal(t, uint64(42), bp.Value)

	list := r.List()
	assert.Len(t, list, 1)
}

func TestRegistryListSorted(t *testing.T) {
	r := NewRegistry()
	r.Add(0x3000)
	r.Add(0x1000)
	r.Add(0x2000)

	list := r.List()
	require.Len(t, list, 3)
	assert.Equal(t, uint64(0x1000), list[0].Addr)
	assert.Equal(t, uint64(0x2000), list[1].Addr)
	assert.Equal(t, uint64(0x3000), list[2].Addr)
}

func TestRegistryEnableDisable(t *testing.T) {
	r := NewRegistry()
	r.Add(0x1000)
	th := &fakeThread{pc: 0x1000}

	assert.True(t, r.ShouldBreak(th))
	assert.True(t, r.Disable(0x1000))
	assert.False(t, r.ShouldBreak(th), "disabled breakpoint must not fire")
	assert.True(t, r.Enable(0x1000))
	assert.True(t, r.ShouldBreak(th))

	assert.False(t, r.Disable(0x9999), "missing address")
}

func TestRegistryShouldBreakMiss(t *testing.T) {
	r := NewRegistry()
	r.Add(0x1000)
	assert.False(t, r.ShouldBreak(&fakeThread{pc: 0x1004}))
}

func TestRegistryGprCondition(t *testing.T) {
	r := NewRegistry()
	r.AddGprEquals(0x1000, 3, 42)

	th := &fakeThread{pc: 0x1000}
	th.gprs[3] = 41
	assert.False(t, r.ShouldBreak(th))
	th.gprs[3] = 42
	assert.True(t, r.ShouldBreak(th))
}

// The count condition compares against the cumulative counter with >=,
// so a threshold crossed while the PC was elsewhere still fires.
func TestRegistryCountCondition(t *testing.T) {
	r := NewRegistry()
	r.AddInstrCount(0x1000, 3)
	th := &fakeThread{pc: 0x1000}

	assert.False(t, r.ShouldBreak(th))
	r.CountStep()
	r.CountStep()
	assert.False(t, r.ShouldBreak(th))
	r.CountStep()
	assert.True(t, r.ShouldBreak(th))
	r.CountStep()
	assert.True(t, r.ShouldBreak(th), "stays armed past the threshold")
}

// ShouldBreak has no side effects; hits are recorded explicitly.
func TestRegistryHitRecording(t *testing.T) {
	r := NewRegistry()
	r.Add(0x1000)
	th := &fakeThread{pc: 0x1000}

	r.ShouldBreak(th)
	r.ShouldBreak(th)
	bp, _ := r.Lookup(0x1000)
	assert.Equal(t, uint64(0), bp.HitCount)

	r.RecordHit(0x1000)
	bp, _ = r.Lookup(0x1000)
	assert.Equal(t, uint64(1), bp.HitCount)

	r.RecordHit(0x9999) // Unknown address is a no-op.
}

func TestRegistryCounter(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 5; i++ {
		r.CountStep()
	}
	assert.Equal(t, uint64(5), r.InstructionCount())
	r.ResetInstructionCount()
	assert.Equal(t, uint64(0), r.InstructionCount())
}

func TestRegistryClear(t *testing.T) {
	r := NewRegistry()
	r.Add(0x1000)
	r.Add(0x2000)
	r.Clear()
	assert.Empty(t, r.List())
}

// The registry takes concurrent traffic from a debugger surface while
// interpreters are stepping.
func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry()
	th := &fakeThread{pc: 0x1000}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				addr := uint64(0x1000 + (seed+i)%8*4)
				switch i % 5 {
				case 0:
					r.Add(addr)
				case 1:
					r.ShouldBreak(th)
				case 2:
					r.CountStep()
				case 3:
					r.List()
				case 4:
					r.Remove(addr)
				}
			}
		}(w)
	}
	wg.Wait()
}
