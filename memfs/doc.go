// Package memfs provides a concurrent, in-memory, POSIX-flavored filesystem:
// a single flat directory of byte-addressable files, built around a
// scalable sharded reader-writer lock so that many goroutines can read
// different (or the same) file at once without serializing on a shared
// counter.
//
// # Quick Start
//
//	fs := memfs.New()
//
//	id, err := fs.Create("/greeting", 0o700)
//	if err != nil {
//		// handle err
//	}
//	if _, err := fs.Write(id, []byte("hello"), 0); err != nil {
//		// handle err
//	}
//
//	buf := make([]byte, 5)
//	if _, err := fs.Read(id, buf, 0); err != nil {
//		// handle err
//	}
//
// # Paths and ids
//
// Files are named by path for Create, Truncate, Delete, Rename, and
// Lookup, and addressed by a stable numeric id (assigned by Create,
// resolved by Lookup) for Read, Write, and FileInfo. Lookup returns a Ref
// that must be released exactly once; holding a Ref pins its file alive
// against a concurrent Delete of the same path, which fails with
// ErrPermission until the Ref is released.
//
// # Concurrency
//
// Every exported method is safe to call concurrently from any number of
// goroutines. Internally the filesystem is two tables under independent
// locks, always acquired in the order paths, then the mnode table, then
// (if needed) a single mnode's own lock — see internal/memfs/fsstate for
// the implementation.
//
// # Errors
//
// Every failure mode is one of the sentinel errors declared in this
// package; classify them with errors.Is.
package memfs
