// Package fd implements a single file-descriptor slot: the bookkeeping a
// caller holds on behalf of one open file, independent of the filesystem
// itself.
//
// The filesystem never inspects a Descriptor; it only ever sees raw mnode
// ids passed to Read/Write. A Descriptor exists purely as a convenience for
// callers layered on top (a syscall-style open-file table, for instance)
// that want an offset which advances across successive reads/writes
// without threading it through by hand. Lifetime discipline — allocating,
// reusing, and bounding the number of open descriptors — is entirely the
// caller's responsibility; see fsstate.ErrOpenFileLimit for the reserved
// error such a table would raise.
package fd

import (
	"math"
	"sync/atomic"
)

// Unbound is the sentinel mnode id a freshly constructed Descriptor holds
// before it is bound to a real file via Bind.
const Unbound = math.MaxUint64

// Flags captures the open-time flags a Descriptor was bound with. The
// filesystem does not interpret these; they exist for the caller's own
// open()-style bookkeeping.
type Flags uint32

// Descriptor holds one open file's mnode id, open flags, and a
// concurrently-advanceable byte offset. Every field is atomic so Bind,
// Flags, Offset, and SetOffset may be called from different goroutines
// without external synchronization.
type Descriptor struct {
	mnodeID atomic.Uint64
	flags   atomic.Uint32
	offset  atomic.Uint64
}

// New returns a Descriptor in its sentinel, unbound state.
func New() *Descriptor {
	d := &Descriptor{}
	d.mnodeID.Store(Unbound)
	return d
}

// Bind associates the descriptor with an (id, flags) pair, resetting its
// offset to zero. Binding an already-bound descriptor simply rebinds it;
// the filesystem places no constraint on reuse.
func (d *Descriptor) Bind(id uint64, flags Flags) {
	d.flags.Store(uint32(flags))
	d.offset.Store(0)
	d.mnodeID.Store(id)
}

// MnodeID returns the bound mnode id, or Unbound if never bound.
func (d *Descriptor) MnodeID() uint64 {
	return d.mnodeID.Load()
}

// Flags returns the flags this descriptor was last bound with.
func (d *Descriptor) Flags() Flags {
	return Flags(d.flags.Load())
}

// Offset returns the descriptor's current byte offset.
func (d *Descriptor) Offset() uint64 {
	return d.offset.Load()
}

// SetOffset updates the descriptor's byte offset, for example after a
// Read/Write call has consumed some number of bytes.
func (d *Descriptor) SetOffset(off uint64) {
	d.offset.Store(off)
}
