package readerid

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClampsSize(t *testing.T) {
	p := New(0)
	if got := p.Size(); got != 1 {
		t.Errorf("Size() = %d, want 1", got)
	}
}

func TestAcquireReturnsDistinctSlots(t *testing.T) {
	p := New(4)
	seen := map[int]bool{}
	var releases []func()
	for i := 0; i < 4; i++ {
		tid, release := p.Acquire()
		if tid < 0 || tid >= 4 {
			t.Fatalf("Acquire returned out-of-range tid %d", tid)
		}
		if seen[tid] {
			t.Fatalf("Acquire returned duplicate tid %d while all 4 outstanding", tid)
		}
		seen[tid] = true
		releases = append(releases, release)
	}
	for _, release := range releases {
		release()
	}
}

func TestReleaseAllowsReacquire(t *testing.T) {
	p := New(1)
	tid, release := p.Acquire()
	release()

	tid2, release2 := p.Acquire()
	if tid2 != tid {
		t.Errorf("Acquire after release = %d, want reused slot %d", tid2, tid)
	}
	release2()
}

// TestAcquireBlocksUntilCapacityFrees exercises the exhausted-pool path: a
// third goroutine should not get a slot out of a 2-slot pool until one of
// the two holders releases.
func TestAcquireBlocksUntilCapacityFrees(t *testing.T) {
	p := New(2)
	_, releaseA := p.Acquire()
	_, releaseB := p.Acquire()

	var wg sync.WaitGroup
	wg.Add(1)
	done := make(chan struct{})
	go func() {
		defer wg.Done()
		_, release := p.Acquire()
		close(done)
		release()
	}()

	select {
	case <-done:
		t.Fatal("third Acquire returned before any slot was released")
	default:
	}

	releaseA()
	<-done
	wg.Wait()
	releaseB()
}

// TestAcquireSlotsStayWithinBounds checks every handed-out tid against the
// pool's advertised size across many acquisitions, not just the first
// batch, using assert so a mid-loop failure doesn't abort the rest of the
// checks.
func TestAcquireSlotsStayWithinBounds(t *testing.T) {
	p := New(3)
	for i := 0; i < 10; i++ {
		tid, release := p.Acquire()
		assert.GreaterOrEqual(t, tid, 0)
		assert.Less(t, tid, p.Size())
		release()
	}
}

func TestConcurrentAcquireNeverExceedsSize(t *testing.T) {
	const slots = 6
	p := New(slots)

	var active int
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, release := p.Acquire()
			mu.Lock()
			active++
			if active > slots {
				mu.Unlock()
				t.Error("more concurrent holders than slots")
				return
			}
			mu.Unlock()

			mu.Lock()
			active--
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()
}
