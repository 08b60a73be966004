package core

import (
	"sync"
	"testing"
)

func TestSequencerStartsAtOneAndIncrements(t *testing.T) {
	seq := NewSequencer()

	for want := int64(1); want <= 5; want++ {
		if got := seq.Next("room-1"); got != want {
			t.Fatalf("Next = %d, want %d", got, want)
		}
	}

	if got := seq.Current("room-1"); got != 5 {
		t.Fatalf("Current = %d, want 5", got)
	}
	// Current must not advance the counter.
	if got := seq.Current("room-1"); got != 5 {
		t.Fatalf("Current after Current = %d, want 5", got)
	}
}

func TestSequencerUnknownRoomIsFresh(t *testing.T) {
	seq := NewSequencer()

	if got := seq.Current("ghost"); got != 0 {
		t.Fatalf("Current for unknown room = %d, want 0", got)
	}
	if got := seq.Next("ghost"); got != 1 {
		t.Fatalf("Next for unknown room = %d, want 1", got)
	}
}

func TestSequencerRoomsAreIndependent(t *testing.T) {
	seq := NewSequencer()

	seq.Next("a")
	seq.Next("a")
	seq.Next("b")

	if got := seq.Current("a"); got != 2 {
		t.Fatalf("room a Current = %d, want 2", got)
	}
	if got := seq.Current("b"); got != 1 {
		t.Fatalf("room b Current = %d, want 1", got)
	}
}

func TestSequencerReset(t *testing.T) {
	seq := NewSequencer()

	seq.Next("room-1")
	seq.Next("room-1")
	seq.Reset("room-1")

	if got := seq.Current("room-1"); got != 0 {
		t.Fatalf("Current after Reset = %d, want 0", got)
	}
	if got := seq.Next("room-1"); got != 1 {
		t.Fatalf("Next after Reset = %d, want 1", got)
	}
}

func TestSequencerAdvance(t *testing.T) {
	seq := NewSequencer()

	seq.Advance("room-1", 10)
	if got := seq.Next("room-1"); got != 11 {
		t.Fatalf("Next after Advance(10) = %d, want 11", got)
	}

	// Advancing backwards is a no-op.
	seq.Advance("room-1", 3)
	if got := seq.Next("room-1"); got != 12 {
		t.Fatalf("Next after backwards Advance = %d, want 12", got)
	}
}

// Concurrent callers must observe strictly increasing values with no
// duplicates and no gaps.
func TestSequencerConcurrentNext(t *testing.T) {
	const (
		workers = 8
		perWork = 250
	)
	seq := NewSequencer()
	results := make(chan int64, workers*perWork)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWork; j++ {
				results <- seq.Next("room-1")
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int64]bool, workers*perWork)
	for v := range results {
		if seen[v] {
			t.Fatalf("duplicate sequence %d", v)
		}
		seen[v] = true
	}
	for i := int64(1); i <= workers*perWork; i++ {
		if !seen[i] {
			t.Fatalf("gap: sequence %d never issued", i)
		}
	}
}
