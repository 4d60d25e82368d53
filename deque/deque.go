// Package deque implements a lock-free Chase-Lev work-stealing deque of
// taskqueue.Task, the per-worker data structure behind sortengine's
// stealing coordination mode. Adapted from the fixed-int-task deque used
// by the work-stealing compressor this module was grown out of: the owner
// pushes and pops from the bottom without contention; thieves CAS the top.
package deque

import (
	"sync/atomic"

	"concursort/taskqueue"
)

const cacheLineSize = 64

// Deque is a single-owner, multi-thief work-stealing deque.
type Deque struct {
	tasks []taskqueue.Task
	mask  uint64

	_ [cacheLineSize]byte

	top atomic.Uint64

	_ [cacheLineSize]byte

	bottom atomic.Uint64
}

func nextPow2(n int) int {
	if n < 1 {
		n = 1
	}
	x := uint64(n - 1)
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	return int(x + 1)
}

// New allocates a deque with capacity at least capacity (rounded up to a
// power of two).
func New(capacity int) *Deque {
	size := nextPow2(capacity)
	return &Deque{
		tasks: make([]taskqueue.Task, size),
		mask:  uint64(size - 1),
	}
}

// PushBottom appends task at the bottom. Owner-only; must never be called
// concurrently with another PushBottom or PopBottom on the same deque.
func (d *Deque) PushBottom(task taskqueue.Task) {
	b := d.bottom.Load()
	d.tasks[b&d.mask] = task
	d.bottom.Store(b + 1)
}

// PopBottom removes and returns the task at the bottom. Owner-only. The
// race with a concurrent Steal for the very last task is resolved with a
// CAS on top.
func (d *Deque) PopBottom() (taskqueue.Task, bool) {
	b := d.bottom.Load()
	if b == 0 {
		return nil, false
	}
	b--
	d.bottom.Store(b)

	t := d.top.Load()
	if t <= b {
		task := d.tasks[b&d.mask]
		if t == b {
			if !d.top.CompareAndSwap(t, t+1) {
				d.bottom.Store(b + 1)
				return nil, false
			}
			d.bottom.Store(b + 1)
		}
		return task, true
	}
	d.bottom.Store(b + 1)
	return nil, false
}

// Steal removes and returns the task at the top. Safe to call
// concurrently from any number of thieves and alongside the owner's
// PushBottom/PopBottom.
func (d *Deque) Steal() (taskqueue.Task, bool) {
	t := d.top.Load()
	b := d.bottom.Load()
	if t >= b {
		return nil, false
	}
	task := d.tasks[t&d.mask]
	if !d.top.CompareAndSwap(t, t+1) {
		return nil, false
	}
	return task, true
}
