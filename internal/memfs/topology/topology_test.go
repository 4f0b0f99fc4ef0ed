package topology

import "testing"

func TestDefaultCPUsOnSocketIsPositive(t *testing.T) {
	n := Default{}.CPUsOnSocket(0)
	if n < 1 {
		t.Fatalf("CPUsOnSocket(0) = %d, want >= 1", n)
	}
	if n > MaxReaderThreads {
		t.Fatalf("CPUsOnSocket(0) = %d, want <= %d", n, MaxReaderThreads)
	}
}

func TestDefaultCPUsOnSocketStable(t *testing.T) {
	d := Default{}
	first := d.CPUsOnSocket(0)
	for i := 0; i < 10; i++ {
		if got := d.CPUsOnSocket(i); got != first {
			t.Fatalf("CPUsOnSocket(%d) = %d, want stable value %d", i, got, first)
		}
	}
}

func TestFixedClamps(t *testing.T) {
	cases := []struct {
		in   Fixed
		want int
	}{
		{0, 1},
		{-5, 1},
		{4, 4},
		{MaxReaderThreads, MaxReaderThreads},
		{MaxReaderThreads + 50, MaxReaderThreads},
	}
	for _, tc := range cases {
		if got := tc.in.CPUsOnSocket(0); got != tc.want {
			t.Errorf("Fixed(%d).CPUsOnSocket(0) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
