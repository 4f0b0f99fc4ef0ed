package fsstate

import "errors"

// Error classification for the filesystem's public surface. Callers should
// classify errors with errors.Is; internal layers (memnode, filebuffer)
// raise their own sentinels, which the methods below translate into these
// so callers only ever need to know one vocabulary.
var (
	// ErrInvalidFileDescriptor is reserved for a descriptor table layered
	// on top of this package (see the fd package); the filesystem itself
	// never raises it.
	ErrInvalidFileDescriptor = errors.New("memfs: invalid file descriptor")

	// ErrInvalidFile means a path or mnode id was not present.
	ErrInvalidFile = errors.New("memfs: invalid file")

	// ErrInvalidFlags is reserved; the current interface never raises it.
	ErrInvalidFlags = errors.New("memfs: invalid flags")

	// ErrInvalidOffset means a read offset exceeded the file size, or the
	// read was attempted exactly at EOF with a non-zero request.
	ErrInvalidOffset = errors.New("memfs: invalid offset")

	// ErrPermission means a read/write/truncate was attempted without the
	// matching mode bit, a deletion was blocked by an outstanding Ref, or
	// a rename lost a race with a concurrent create.
	ErrPermission = errors.New("memfs: permission denied")

	// ErrAlreadyPresent means Create was called against an existing path.
	ErrAlreadyPresent = errors.New("memfs: already present")

	// ErrDirectory is reserved; directories below the root are not
	// supported and this package never raises it today.
	ErrDirectory = errors.New("memfs: directory error")

	// ErrOpenFileLimit is reserved for a descriptor table bounded by
	// MaxFilesPerProcess; this package does not implement such a table.
	ErrOpenFileLimit = errors.New("memfs: open file limit")

	// ErrOutOfMemory means growing a file buffer, or installing a new
	// mnode, failed.
	ErrOutOfMemory = errors.New("memfs: out of memory")
)

// MaxFilesPerProcess bounds a reserved, unimplemented descriptor table; see
// ErrOpenFileLimit.
const MaxFilesPerProcess = 1024
