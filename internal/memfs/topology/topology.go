// Package topology reports the hardware-thread count the sharded reader-writer
// lock should size itself to.
//
// The real answer to "how many hyperthreads does socket 0 have" depends on
// parsing /sys/devices/system/cpu or calling into an OS-specific topology
// API; this package intentionally does not do that. It returns a stable,
// non-zero, process-lifetime-constant value and leaves socket-aware sizing
// to whatever runtime embeds this filesystem. Swapping in a real probe is a
// one-function change: implement Prober and pass it to the filesystem with
// WithTopology.
package topology

import "runtime"

// MaxReaderThreads bounds the number of reader slots the sharded lock will
// ever inspect. It mirrors the fixed-size reader-slot array in rwlock.L: a
// writer's drain check is a linear scan over active slots, so this constant
// caps the worst-case cost of that scan.
const MaxReaderThreads = 192

// Prober reports the number of hardware threads available to size a
// rwlock.L's active reader slots. Implementations must return a positive,
// stable value for the lifetime of the process; the lock never re-probes.
type Prober interface {
	CPUsOnSocket(socket int) int
}

// Default is the zero-configuration Prober used when a filesystem is
// constructed without an explicit topology override. It reports
// runtime.NumCPU(), clamped to [1, MaxReaderThreads], regardless of which
// socket is requested — this process has no socket-aware view of the
// machine, only a count of the logical CPUs usable by the process.
type Default struct{}

// CPUsOnSocket implements Prober. The socket argument is accepted for
// interface compatibility with topology-aware embedders but is not
// consulted: Default reports the same value for every socket.
func (Default) CPUsOnSocket(int) int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	if n > MaxReaderThreads {
		return MaxReaderThreads
	}
	return n
}

// Fixed is a Prober stub that always reports the same configured count,
// useful for tests that want deterministic active-slot counts independent
// of the machine running them.
type Fixed int

// CPUsOnSocket implements Prober, ignoring the socket argument.
func (f Fixed) CPUsOnSocket(int) int {
	n := int(f)
	if n < 1 {
		return 1
	}
	if n > MaxReaderThreads {
		return MaxReaderThreads
	}
	return n
}
