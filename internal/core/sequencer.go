package core

import "sync"

// Sequencer issues per-room sequence numbers. Assignment order, not
// arrival order, defines the canonical timeline of a room, so Next is
// the single serialization point for concurrent admissions.
type Sequencer struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewSequencer constructs a sequencer with no rooms.
func NewSequencer() *Sequencer {
	return &Sequencer{counters: make(map[string]int64)}
}

// Next returns the next sequence number for the room, starting from 1.
// Values for a room are strictly increasing with no gaps, and two
// concurrent calls never observe the same value. An unknown room
// behaves as a fresh room with counter 0.
func (s *Sequencer) Next(roomID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[roomID]++
	return s.counters[roomID]
}

// Current returns the last value issued for the room, or 0 if none.
// It has no side effect.
func (s *Sequencer) Current(roomID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[roomID]
}

// Advance raises the room's counter to at least seq. Used when
// pre-stamped events are inserted into a log so that later Next calls
// cannot collide with restored sequence numbers.
func (s *Sequencer) Advance(roomID string, seq int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq > s.counters[roomID] {
		s.counters[roomID] = seq
	}
}

// Reset discards the room's counter, returning it to the initial state.
func (s *Sequencer) Reset(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counters, roomID)
}
