// Package memnode implements the in-memory inode equivalent: a single
// file's or directory's identity, wrapped around an optional file buffer
// with kind-dispatched permission checks.
package memnode

import (
	"errors"
	"fmt"

	"github.com/kolkov/memfs/internal/memfs/filebuffer"
)

// Errors returned by Memnode operations. Besides these two, Write passes
// through filebuffer.ErrOutOfMemory (wrapped) when growing the buffer would
// exceed its cap; the filesystem layer is responsible for catching "id not
// found" before it ever reaches here.
var (
	ErrPermission    = errors.New("memnode: permission denied")
	ErrInvalidOffset = errors.New("memnode: invalid offset")
)

// Kind distinguishes a directory mnode from a regular file mnode. The
// numeric values match the wire encoding used by FileInfo.MarshalBinary in
// the fsstate package, so do not renumber them.
type Kind uint64

const (
	// Directory marks a directory mnode. Only the root (mnode id 1) is
	// ever a Directory in this filesystem; there is no nested directory
	// hierarchy.
	Directory Kind = 1
	// File marks a regular, byte-addressable file mnode.
	File Kind = 2
)

func (k Kind) String() string {
	switch k {
	case Directory:
		return "directory"
	case File:
		return "file"
	default:
		return fmt.Sprintf("memnode.Kind(%d)", uint64(k))
	}
}

// Memnode is a single file or directory's identity. ID, Name, and Kind are
// fixed at construction and never change afterward; only the attached file
// buffer (present iff Kind == File) may be mutated, via Write and Truncate.
type Memnode struct {
	id   uint64
	name string
	kind Kind
	file *filebuffer.Buffer
}

// New constructs a Memnode. For kind == File it allocates a file buffer
// with the given POSIX-style creation modes; for kind == Directory no
// buffer is allocated. maxFileSize bounds the buffer's growth (0 selects
// filebuffer.DefaultMaxSize) and is ignored for directories.
func New(id uint64, name string, modes uint32, kind Kind, maxFileSize int) *Memnode {
	n := &Memnode{id: id, name: name, kind: kind}
	if kind == File {
		n.file = filebuffer.New(filebuffer.ModeFromPOSIX(modes), maxFileSize)
	}
	return n
}

// ID returns the mnode's immutable identifier.
func (n *Memnode) ID() uint64 { return n.id }

// Name returns the mnode's immutable name.
func (n *Memnode) Name() string { return n.name }

// Kind returns whether this mnode is a file or a directory.
func (n *Memnode) Kind() Kind { return n.kind }

// FileSize returns the current byte length of the attached file buffer, or
// 0 for a directory.
func (n *Memnode) FileSize() int {
	if n.file == nil {
		return 0
	}
	return n.file.Size()
}

// Write writes p at offset into the attached file buffer. It fails with
// ErrPermission if this mnode is a directory or its buffer is not writable,
// and with ErrInvalidOffset if offset is negative.
func (n *Memnode) Write(p []byte, offset int) (int, error) {
	if n.kind != File || !n.file.Mode().Writable {
		return 0, ErrPermission
	}
	if offset < 0 {
		return 0, ErrInvalidOffset
	}
	return n.file.Write(p, offset)
}

// Read copies up to len(dst) bytes starting at offset into dst, returning
// the number of bytes actually read. It fails with ErrPermission if this
// mnode is a directory or its buffer is not readable, and with
// ErrInvalidOffset if offset is negative, past the end of the file, or the
// read would be empty (including the EOF case where offset equals the file
// size).
func (n *Memnode) Read(dst []byte, offset int) (int, error) {
	if n.kind != File || !n.file.Mode().Readable {
		return 0, ErrPermission
	}

	size := n.FileSize()
	if offset < 0 || offset > size {
		return 0, ErrInvalidOffset
	}

	toRead := size - offset
	if toRead > len(dst) {
		toRead = len(dst)
	}
	newOffset := offset + toRead

	if offset >= newOffset || newOffset > size {
		return 0, ErrInvalidOffset
	}

	return n.file.Read(dst, offset, newOffset)
}

// Truncate discards the attached file buffer's contents. It fails with
// ErrPermission if this mnode is a directory or its buffer is not writable;
// it is otherwise infallible and idempotent.
func (n *Memnode) Truncate() error {
	if n.kind != File || !n.file.Mode().Writable {
		return ErrPermission
	}
	n.file.Truncate()
	return nil
}

// Equal reports whether two mnodes are structurally identical: same id,
// name, kind, and (for files) the same buffer mode and contents. It exists
// for tests; production code never needs to compare mnodes for equality.
func (n *Memnode) Equal(other *Memnode) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.id != other.id || n.name != other.name || n.kind != other.kind {
		return false
	}
	if n.kind != File {
		return true
	}
	if n.file.Mode() != other.file.Mode() {
		return false
	}
	if n.file.Size() != other.file.Size() {
		return false
	}
	a := make([]byte, n.file.Size())
	b := make([]byte, other.file.Size())
	if _, err := n.file.Read(a, 0, len(a)); err != nil && len(a) > 0 {
		return false
	}
	if _, err := other.file.Read(b, 0, len(b)); err != nil && len(b) > 0 {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
