package memfs

import (
	"github.com/kolkov/memfs/internal/memfs/fd"
	"github.com/kolkov/memfs/internal/memfs/fsstate"
	"github.com/kolkov/memfs/internal/memfs/memnode"
	"github.com/kolkov/memfs/internal/memfs/topology"
)

// Sentinel errors. Every error an FS method returns satisfies
// errors.Is against exactly one of these.
var (
	ErrInvalidFileDescriptor = fsstate.ErrInvalidFileDescriptor
	ErrInvalidFile           = fsstate.ErrInvalidFile
	ErrInvalidFlags          = fsstate.ErrInvalidFlags
	ErrInvalidOffset         = fsstate.ErrInvalidOffset
	ErrPermission            = fsstate.ErrPermission
	ErrAlreadyPresent        = fsstate.ErrAlreadyPresent
	ErrDirectory             = fsstate.ErrDirectory
	ErrOpenFileLimit         = fsstate.ErrOpenFileLimit
	ErrOutOfMemory           = fsstate.ErrOutOfMemory
)

// Kind distinguishes a directory mnode from a regular file mnode.
type Kind = memnode.Kind

const (
	// Directory marks the (sole) root directory.
	Directory = memnode.Directory
	// File marks a regular, byte-addressable file.
	File = memnode.File
)

// RootPath is the filesystem's one directory.
const RootPath = fsstate.RootPath

// FileInfo is the metadata snapshot returned by FS.FileInfo.
type FileInfo = fsstate.FileInfo

// Ref pins an mnode id alive against concurrent deletion of the path it
// was looked up from. Obtained from FS.Lookup; Release must be called
// exactly once.
type Ref = fsstate.Ref

// Descriptor is an open-file-table slot: a caller-held (mnode id, flags,
// offset) triple whose offset the caller advances with SetOffset across
// successive Read/Write calls. FS
// never inspects a Descriptor or bounds how many exist — see
// ErrOpenFileLimit — it is purely a convenience for layering POSIX-style
// stateful file handles on top of FS's id-addressed Read/Write.
type Descriptor = fd.Descriptor

// DescriptorFlags captures the open-time flags a Descriptor was bound
// with; FS does not interpret them.
type DescriptorFlags = fd.Flags

// UnboundDescriptor is the sentinel mnode id a freshly constructed
// Descriptor holds before Bind.
const UnboundDescriptor = fd.Unbound

// NewDescriptor returns a Descriptor in its sentinel, unbound state.
func NewDescriptor() *Descriptor {
	return fd.New()
}

// Prober reports hardware-thread counts used to size the mnode table's
// sharded lock; see the topology package for the default implementation
// and a fixed stub useful in tests.
type Prober = topology.Prober

// Option configures a FS constructed with New.
type Option = fsstate.Option

// WithTopology overrides the Prober used to size the mnode table's
// sharded lock. The default reports runtime.NumCPU().
func WithTopology(p Prober) Option {
	return fsstate.WithTopology(p)
}

// WithMaxFileSize overrides the byte cap applied to every file's buffer.
func WithMaxFileSize(n int) Option {
	return fsstate.WithMaxFileSize(n)
}

// FS is a concurrent, in-memory, single-directory filesystem. The zero
// value is not usable; construct one with New.
type FS struct {
	state *fsstate.FS
}

// New constructs a filesystem containing only the root directory at "/".
func New(opts ...Option) *FS {
	return &FS{state: fsstate.New(opts...)}
}

// Create installs a new, empty file at path with the given POSIX-style
// creation modes (only the user-read 0o400 and user-write 0o200 bits are
// interpreted). It fails with ErrAlreadyPresent if path already exists.
func (fs *FS) Create(path string, modes uint32) (id uint64, err error) {
	return fs.state.Create(path, modes)
}

// Write writes p at offset into the file identified by id, growing the
// file and zero-filling any gap before offset if necessary. It fails with
// ErrInvalidFile if id does not name a live file, ErrPermission if the
// file was not created with the write bit, and ErrOutOfMemory if growing
// the buffer would exceed its configured cap.
func (fs *FS) Write(id uint64, p []byte, offset int) (n int, err error) {
	return fs.state.Write(id, p, offset)
}

// Read copies up to len(dst) bytes starting at offset from the file
// identified by id into dst, returning the number of bytes read. It fails
// with ErrInvalidFile if id does not name a live file, ErrPermission if
// the file was not created with the read bit, and ErrInvalidOffset if
// offset is past the end of the file.
func (fs *FS) Read(id uint64, dst []byte, offset int) (n int, err error) {
	return fs.state.Read(id, dst, offset)
}

// Truncate discards the contents of the file at path. It fails with
// ErrInvalidFile if path does not exist and ErrPermission if the file is
// not writable or path names the root directory.
func (fs *FS) Truncate(path string) error {
	return fs.state.Truncate(path)
}

// Lookup resolves path to a Ref pinning its mnode id alive; the caller
// must call Release on the returned Ref exactly once. ok is false if path
// does not exist.
func (fs *FS) Lookup(path string) (ref *Ref, ok bool) {
	return fs.state.Lookup(path)
}

// FileInfo reports the size and kind of the mnode identified by id. It
// panics if id does not name a live mnode; callers should only pass an id
// obtained from Create or a successful Lookup.
func (fs *FS) FileInfo(id uint64) FileInfo {
	return fs.state.FileInfo(id)
}

// Delete removes path from the filesystem. It fails with ErrInvalidFile
// if path does not exist, and ErrPermission if path names the root
// directory or an outstanding Ref still pins it alive.
func (fs *FS) Delete(path string) error {
	return fs.state.Delete(path)
}

// Rename moves the file at oldPath to newPath, replacing newPath if it
// already exists (subject to the same outstanding-Ref protection as
// Delete). It fails with ErrInvalidFile if oldPath does not exist.
func (fs *FS) Rename(oldPath, newPath string) error {
	return fs.state.Rename(oldPath, newPath)
}
