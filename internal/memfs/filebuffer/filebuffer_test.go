package filebuffer

import (
	"bytes"
	"errors"
	"testing"
)

func TestModeFromPOSIX(t *testing.T) {
	cases := []struct {
		modes uint32
		want  Mode
	}{
		{0o700, Mode{Readable: true, Writable: true}},
		{0o400, Mode{Readable: true, Writable: false}},
		{0o200, Mode{Readable: false, Writable: true}},
		{0o100, Mode{Readable: false, Writable: false}},
		{0o000, Mode{Readable: false, Writable: false}},
	}
	for _, tc := range cases {
		if got := ModeFromPOSIX(tc.modes); got != tc.want {
			t.Errorf("ModeFromPOSIX(%o) = %+v, want %+v", tc.modes, got, tc.want)
		}
	}
}

func TestWriteGrowsAndReadsBack(t *testing.T) {
	b := New(ModeFromPOSIX(0o700), 0)

	n, err := b.Write([]byte{0x41, 0x42, 0x43}, 0)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != 3 {
		t.Fatalf("Write returned %d, want 3", n)
	}
	if b.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", b.Size())
	}

	dst := make([]byte, 3)
	if _, err := b.Read(dst, 0, 3); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(dst, []byte{0x41, 0x42, 0x43}) {
		t.Errorf("Read back %v, want [41 42 43]", dst)
	}
}

func TestWriteZeroFillsGap(t *testing.T) {
	b := New(ModeFromPOSIX(0o700), 0)
	if _, err := b.Write([]byte{1, 2, 3, 4}, 4); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if b.Size() != 8 {
		t.Fatalf("Size() = %d, want 8", b.Size())
	}

	dst := make([]byte, 4)
	if _, err := b.Read(dst, 0, 4); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(dst, []byte{0, 0, 0, 0}) {
		t.Errorf("gap bytes = %v, want zero-filled", dst)
	}
}

func TestWriteOverwritesExistingRegion(t *testing.T) {
	b := New(ModeFromPOSIX(0o700), 0)
	if _, err := b.Write([]byte{1, 2, 3, 4}, 0); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := b.Write([]byte{9, 9}, 1); err != nil {
		t.Fatalf("Write: %v", err)
	}

	dst := make([]byte, 4)
	if _, err := b.Read(dst, 0, 4); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(dst, []byte{1, 9, 9, 4}) {
		t.Errorf("Read back %v, want [1 9 9 4]", dst)
	}
}

func TestWriteOutOfMemory(t *testing.T) {
	b := New(ModeFromPOSIX(0o700), 4)
	_, err := b.Write([]byte{1, 2, 3, 4, 5}, 0)
	if !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("Write past cap: err = %v, want ErrOutOfMemory", err)
	}
}

func TestTruncateResetsSize(t *testing.T) {
	b := New(ModeFromPOSIX(0o700), 0)
	if _, err := b.Write([]byte{1, 2, 3}, 0); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b.Truncate()
	if b.Size() != 0 {
		t.Errorf("Size() after Truncate = %d, want 0", b.Size())
	}

	// Idempotent: truncating an already-empty buffer stays at zero.
	b.Truncate()
	if b.Size() != 0 {
		t.Errorf("Size() after second Truncate = %d, want 0", b.Size())
	}
}
