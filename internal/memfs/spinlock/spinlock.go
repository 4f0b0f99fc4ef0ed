// Package spinlock implements a conventional reader-writer spin lock: one
// shared atomic reader counter plus one shared atomic writer flag.
//
// It exists alongside rwlock.L rather than being replaced by it. rwlock.L's
// per-goroutine reader slots pay off when a structure is read so often from
// so many goroutines that a shared counter's cache line becomes the
// bottleneck — that is true of the filesystem's single global mnode table,
// but is not worth the 192-slot array's memory and setup cost for the
// paths map or for a single memnode guarded by its own lock. Those use
// this simpler, conventional design instead.
//
// Like rwlock.L, RWMutex never parks a goroutine: Lock and RLock spin,
// yielding to the Go scheduler between attempts, so that a caller blocked
// here never performs what the wider system would consider a voluntary
// suspension.
package spinlock

import (
	"runtime"
	"sync/atomic"
)

// RWMutex is a spinning, conventional reader-writer lock. The zero value
// is ready to use.
type RWMutex struct {
	writer  atomic.Bool
	readers atomic.Int32
}

// Lock blocks until exclusive access is available.
func (m *RWMutex) Lock() {
	spins := 0
	for !m.writer.CompareAndSwap(false, true) {
		spins = spin(spins)
	}
	spins = 0
	for m.readers.Load() != 0 {
		spins = spin(spins)
	}
}

// Unlock releases exclusive access. Calling Unlock without a held write
// lock panics.
func (m *RWMutex) Unlock() {
	if !m.writer.CompareAndSwap(true, false) {
		panic("spinlock: Unlock called without a held write lock")
	}
}

// RLock blocks until shared access is available.
func (m *RWMutex) RLock() {
	spins := 0
	for {
		for m.writer.Load() {
			spins = spin(spins)
		}
		m.readers.Add(1)
		if !m.writer.Load() {
			return
		}
		m.readers.Add(-1)
		spins = spin(spins)
	}
}

// RUnlock releases shared access. Calling RUnlock without a held read lock
// panics.
func (m *RWMutex) RUnlock() {
	for {
		cur := m.readers.Load()
		if cur == 0 {
			panic("spinlock: RUnlock called without a held read lock")
		}
		if m.readers.CompareAndSwap(cur, cur-1) {
			return
		}
	}
}

func spin(spins int) int {
	if spins > 32 {
		runtime.Gosched()
		return 0
	}
	return spins + 1
}
