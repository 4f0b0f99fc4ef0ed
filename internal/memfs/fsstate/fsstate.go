// Package fsstate implements the filesystem's core state: a path table and
// an mnode table, each under its own lock, composed in the locking order
// paths -> mnodes (sharded) -> per-mnode.
package fsstate

import (
	"errors"
	"sync/atomic"

	"github.com/kolkov/memfs/internal/memfs/filebuffer"
	"github.com/kolkov/memfs/internal/memfs/memnode"
	"github.com/kolkov/memfs/internal/memfs/readerid"
	"github.com/kolkov/memfs/internal/memfs/rwlock"
	"github.com/kolkov/memfs/internal/memfs/spinlock"
	"github.com/kolkov/memfs/internal/memfs/topology"
)

// RootPath is the one directory this filesystem has; there is no nested
// hierarchy.
const RootPath = "/"

// RootID is the root directory's fixed mnode id.
const RootID = 1

// DefaultMaxFileSize bounds a file buffer's growth when a caller does not
// override it; see filebuffer.DefaultMaxSize.
const DefaultMaxFileSize = 1 << 30

// nodeEntry pairs an mnode with the conventional spin lock that protects
// mutations to it. The entry itself lives inside the sharded mnodes table;
// reaching one requires mnodes.Read or mnodes.Write first.
type nodeEntry struct {
	mu   spinlock.RWMutex
	node *memnode.Memnode
}

// FS is an in-memory, single-directory filesystem. The zero value is not
// usable; construct one with New.
type FS struct {
	pathsMu spinlock.RWMutex
	paths   map[string]*sharedID

	mnodes  *rwlock.L[map[uint64]*nodeEntry]
	readers *readerid.Pool

	nextID      atomic.Uint64
	maxFileSize int
}

// Option configures a FS constructed with New.
type Option func(*options)

type options struct {
	prober      topology.Prober
	maxFileSize int
}

// WithTopology overrides the Prober used to size the mnode table's sharded
// lock. The default is topology.Default{}.
func WithTopology(p topology.Prober) Option {
	return func(o *options) { o.prober = p }
}

// WithMaxFileSize overrides the byte cap applied to every file's buffer.
// The default is DefaultMaxFileSize.
func WithMaxFileSize(n int) Option {
	return func(o *options) { o.maxFileSize = n }
}

// New constructs a filesystem containing only the root directory at "/".
func New(opts ...Option) *FS {
	cfg := options{prober: topology.Default{}, maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	activeSlots := cfg.prober.CPUsOnSocket(0)

	root := memnode.New(RootID, RootPath, 0o700, memnode.Directory, cfg.maxFileSize)
	table := map[uint64]*nodeEntry{RootID: {node: root}}

	fs := &FS{
		paths:       map[string]*sharedID{RootPath: newSharedID(RootID)},
		mnodes:      rwlock.New(table, activeSlots),
		readers:     readerid.New(activeSlots),
		maxFileSize: cfg.maxFileSize,
	}
	fs.nextID.Store(RootID)
	return fs
}

// Create installs a new, empty file at path with the given POSIX-style
// creation modes. It fails with ErrAlreadyPresent if path already names a
// file.
func (fs *FS) Create(path string, modes uint32) (uint64, error) {
	fs.pathsMu.RLock()
	_, exists := fs.paths[path]
	fs.pathsMu.RUnlock()
	if exists {
		return 0, ErrAlreadyPresent
	}

	id := fs.nextID.Add(1)
	node := memnode.New(id, path, modes, memnode.File, fs.maxFileSize)

	fs.pathsMu.Lock()
	if _, exists := fs.paths[path]; exists {
		fs.pathsMu.Unlock()
		return 0, ErrAlreadyPresent
	}
	fs.paths[path] = newSharedID(id)
	fs.pathsMu.Unlock()

	g := fs.mnodes.Write()
	(*g.Value())[id] = &nodeEntry{node: node}
	g.Release()

	return id, nil
}

// lookupEntry resolves an mnode id to its table entry under a read-held
// reader slot. ok is false if no such id is present.
func (fs *FS) lookupEntry(id uint64) (*nodeEntry, bool) {
	tid, release := fs.readers.Acquire()
	defer release()

	g := fs.mnodes.Read(tid)
	entry, ok := (*g.Value())[id]
	g.Release()
	return entry, ok
}

// Write writes p at offset into the file identified by id. It fails with
// ErrInvalidFile if id does not name a live file, ErrPermission if the file
// is not writable, and ErrOutOfMemory if growing the buffer would exceed
// its configured cap.
func (fs *FS) Write(id uint64, p []byte, offset int) (int, error) {
	entry, ok := fs.lookupEntry(id)
	if !ok {
		return 0, ErrInvalidFile
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	n, err := entry.node.Write(p, offset)
	return n, translateNodeErr(err)
}

// Read copies up to len(dst) bytes starting at offset from the file
// identified by id. It fails with ErrInvalidFile if id does not name a live
// file, ErrPermission if the file is not readable, and ErrInvalidOffset if
// offset is past the end of the file.
func (fs *FS) Read(id uint64, dst []byte, offset int) (int, error) {
	entry, ok := fs.lookupEntry(id)
	if !ok {
		return 0, ErrInvalidFile
	}

	entry.mu.RLock()
	defer entry.mu.RUnlock()
	n, err := entry.node.Read(dst, offset)
	return n, translateNodeErr(err)
}

// Truncate discards the contents of the file named by path. It fails with
// ErrInvalidFile if path does not exist and ErrPermission if the file is
// not writable (including the case where path names the root directory).
func (fs *FS) Truncate(path string) error {
	fs.pathsMu.RLock()
	sid, ok := fs.paths[path]
	fs.pathsMu.RUnlock()
	if !ok {
		return ErrInvalidFile
	}

	entry, ok := fs.lookupEntry(sid.id)
	if !ok {
		return ErrInvalidFile
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return translateNodeErr(entry.node.Truncate())
}

// Lookup resolves path to a Ref pinning its mnode id alive. The caller must
// call Release on the returned Ref exactly once. ok is false if path does
// not exist.
func (fs *FS) Lookup(path string) (ref *Ref, ok bool) {
	fs.pathsMu.RLock()
	sid, exists := fs.paths[path]
	if !exists {
		fs.pathsMu.RUnlock()
		return nil, false
	}
	cloned := sid.clone()
	fs.pathsMu.RUnlock()

	return &Ref{sid: cloned}, true
}

// FileInfo reports the size and kind of the mnode identified by id. It
// panics if id does not name a live mnode: callers are expected to obtain
// id from Create or a successful Lookup, so an unknown id here indicates a
// caller bug rather than a recoverable runtime condition.
func (fs *FS) FileInfo(id uint64) FileInfo {
	entry, ok := fs.lookupEntry(id)
	if !ok {
		panic("fsstate: FileInfo called with an id that names no mnode")
	}

	entry.mu.RLock()
	defer entry.mu.RUnlock()
	return FileInfo{Size: uint64(entry.node.FileSize()), Kind: entry.node.Kind()}
}

// Delete removes path from the filesystem. It fails with ErrInvalidFile if
// path does not exist, and with ErrPermission if path names the root
// directory or if an outstanding Ref (from Lookup) still pins the mnode
// alive; in the latter case the path mapping is left untouched so the
// holder of the Ref can still resolve it.
func (fs *FS) Delete(path string) error {
	if path == RootPath {
		return ErrPermission
	}

	fs.pathsMu.Lock()
	sid, ok := fs.paths[path]
	if !ok {
		fs.pathsMu.Unlock()
		return ErrInvalidFile
	}
	delete(fs.paths, path)

	if sid.strongCount() != 1 {
		fs.paths[path] = sid
		fs.pathsMu.Unlock()
		return ErrPermission
	}
	fs.pathsMu.Unlock()

	g := fs.mnodes.Write()
	delete(*g.Value(), sid.id)
	g.Release()
	return nil
}

// Rename moves the file at oldPath to newPath. It fails with ErrPermission
// if oldPath names the root directory, for the same reason Delete refuses
// it: "/" must always resolve to RootID. If newPath already exists, Rename
// first attempts to delete it as Delete would, surfacing the same
// ErrPermission if that file is pinned by an outstanding Ref. It fails with
// ErrInvalidFile if oldPath does not exist, and with ErrPermission if a
// concurrent Create raced newPath into existence between the check above
// and the final insertion (oldPath's mapping is lost in that case, but its
// mnode remains in the table, unreachable — the same benign-leak outcome
// the id allocator accepts elsewhere in this package).
func (fs *FS) Rename(oldPath, newPath string) error {
	if oldPath == RootPath {
		return ErrPermission
	}

	fs.pathsMu.RLock()
	_, oldExists := fs.paths[oldPath]
	_, newExists := fs.paths[newPath]
	fs.pathsMu.RUnlock()
	if !oldExists {
		return ErrInvalidFile
	}
	if newExists {
		if err := fs.Delete(newPath); err != nil {
			return err
		}
	}

	fs.pathsMu.Lock()
	sid, ok := fs.paths[oldPath]
	if !ok {
		fs.pathsMu.Unlock()
		return ErrInvalidFile
	}
	delete(fs.paths, oldPath)

	if _, displaced := fs.paths[newPath]; displaced {
		fs.pathsMu.Unlock()
		return ErrPermission
	}
	fs.paths[newPath] = sid
	fs.pathsMu.Unlock()
	return nil
}

// translateNodeErr maps memnode's sentinel errors onto this package's
// public vocabulary so callers only ever match against fsstate's own Err
// values.
func translateNodeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, memnode.ErrPermission):
		return ErrPermission
	case errors.Is(err, memnode.ErrInvalidOffset):
		return ErrInvalidOffset
	case errors.Is(err, filebuffer.ErrOutOfMemory):
		return ErrOutOfMemory
	default:
		return err
	}
}
