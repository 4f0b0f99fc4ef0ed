package fsstate

import (
	"encoding/binary"
	"fmt"

	"github.com/kolkov/memfs/internal/memfs/memnode"
)

// FileInfo is the metadata snapshot returned by FS.FileInfo: a file's
// current size and whether the underlying mnode is a file or directory.
type FileInfo struct {
	Size uint64
	Kind memnode.Kind
}

// binaryFileInfoLen is the fixed wire length of FileInfo.MarshalBinary:
// two uint64s in the host's byte order, Size then Kind.
const binaryFileInfoLen = 16

// MarshalBinary encodes f as two uint64s in the host's byte order (Size,
// then Kind), for carrying a FileInfo across a process boundary.
func (f FileInfo) MarshalBinary() ([]byte, error) {
	buf := make([]byte, binaryFileInfoLen)
	binary.NativeEndian.PutUint64(buf[0:8], f.Size)
	binary.NativeEndian.PutUint64(buf[8:16], uint64(f.Kind))
	return buf, nil
}

// UnmarshalBinary decodes a FileInfo from the format written by
// MarshalBinary.
func (f *FileInfo) UnmarshalBinary(data []byte) error {
	if len(data) != binaryFileInfoLen {
		return fmt.Errorf("fsstate: FileInfo.UnmarshalBinary: want %d bytes, got %d", binaryFileInfoLen, len(data))
	}
	f.Size = binary.NativeEndian.Uint64(data[0:8])
	f.Kind = memnode.Kind(binary.NativeEndian.Uint64(data[8:16]))
	return nil
}
