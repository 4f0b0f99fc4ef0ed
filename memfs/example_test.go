package memfs_test

import (
	"fmt"

	"github.com/kolkov/memfs/memfs"
)

// Example demonstrates creating a file, writing to it, and reading it
// back.
func Example() {
	fs := memfs.New()

	id, err := fs.Create("/greeting", 0o700)
	if err != nil {
		fmt.Println(err)
		return
	}
	if _, err := fs.Write(id, []byte("hello"), 0); err != nil {
		fmt.Println(err)
		return
	}

	buf := make([]byte, 5)
	if _, err := fs.Read(id, buf, 0); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(string(buf))

	// Output:
	// hello
}

// Example_descriptorTracksOffset shows a Descriptor used to carry a byte
// offset across successive Read calls, the way a caller would build a
// stateful open-file handle on top of FS's id-addressed Read/Write.
func Example_descriptorTracksOffset() {
	fs := memfs.New()
	id, _ := fs.Create("/log", 0o700)
	fs.Write(id, []byte("abcdef"), 0)

	d := memfs.NewDescriptor()
	d.Bind(id, 0)

	buf := make([]byte, 3)
	n, _ := fs.Read(d.MnodeID(), buf, int(d.Offset()))
	d.SetOffset(d.Offset() + uint64(n))
	fmt.Println(string(buf[:n]))

	n, _ = fs.Read(d.MnodeID(), buf, int(d.Offset()))
	d.SetOffset(d.Offset() + uint64(n))
	fmt.Println(string(buf[:n]))

	// Output:
	// abc
	// def
}

// Example_lookupPinsAgainstDelete shows that a Ref obtained from Lookup
// blocks Delete of the same path until it is released.
func Example_lookupPinsAgainstDelete() {
	fs := memfs.New()
	fs.Create("/pinned", 0o700)

	ref, _ := fs.Lookup("/pinned")

	if err := fs.Delete("/pinned"); err != nil {
		fmt.Println("blocked:", err)
	}

	ref.Release()

	if err := fs.Delete("/pinned"); err != nil {
		fmt.Println(err)
	} else {
		fmt.Println("deleted")
	}

	// Output:
	// blocked: memfs: permission denied
	// deleted
}
