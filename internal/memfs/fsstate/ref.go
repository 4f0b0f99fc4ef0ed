package fsstate

import "sync/atomic"

// sharedID is a reference-counted handle to an mnode id, the in-process
// equivalent of an Arc<u64>. The paths map holds exactly one sharedID per
// mapping, contributing one to its count; every outstanding Ref returned by
// Lookup contributes one more. Delete consults the count to decide whether
// the mapping it is about to drop is the last surviving handle.
type sharedID struct {
	id   uint64
	refs atomic.Int64
}

func newSharedID(id uint64) *sharedID {
	s := &sharedID{id: id}
	s.refs.Store(1)
	return s
}

// clone returns the same handle with its count incremented, mirroring
// Arc::clone. It does not allocate a new id.
func (s *sharedID) clone() *sharedID {
	s.refs.Add(1)
	return s
}

// release drops one reference. It never frees anything itself; Delete is
// the only place that acts on a handle reaching uniqueness.
func (s *sharedID) release() {
	s.refs.Add(-1)
}

// strongCount reports the number of outstanding handles: the paths map's
// own (if still present) plus every Ref a caller has not yet released.
func (s *sharedID) strongCount() int64 {
	return s.refs.Load()
}

// Ref pins an mnode id alive against concurrent deletion. Obtained from
// FS.Lookup, it must be released exactly once; while a Ref is outstanding,
// Delete of the path it was looked up from fails with ErrPermission.
type Ref struct {
	sid      *sharedID
	released atomic.Bool
}

// ID returns the pinned mnode id.
func (r *Ref) ID() uint64 {
	return r.sid.id
}

// Release drops this handle's pin. Calling Release more than once on the
// same Ref is a no-op, not a protocol violation: unlike the spin locks
// elsewhere in this module, a forgotten or doubled Release here only delays
// or skips one deletion, which is recoverable, so it does not warrant a
// panic.
func (r *Ref) Release() {
	if r.released.CompareAndSwap(false, true) {
		r.sid.release()
	}
}
