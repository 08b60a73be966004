package core

import (
	"sort"
	"sync"
	"time"
)

// EventLog stores the ordered timeline of every room. Rooms are created
// implicitly on first reference and the log is kept sorted ascending by
// sequence number after every operation.
//
// Admitted events are treated as immutable: reads return fresh slices
// but share the stored event values, so callers must not mutate them.
type EventLog struct {
	seq   *Sequencer
	mu    sync.RWMutex
	rooms map[string][]*Event
}

// NewEventLog constructs an empty log with its own sequencer.
func NewEventLog() *EventLog {
	return &EventLog{
		seq:   NewSequencer(),
		rooms: make(map[string][]*Event),
	}
}

// Admit stamps the event with the room's next sequence number and the
// current wall-clock time, inserts it into the room's timeline and
// returns the stored copy. Admission is all-or-nothing: the returned
// event is fully sequenced and inserted.
//
// The caller's event is taken by value; its Sequence and Timestamp are
// ignored.
func (l *EventLog) Admit(roomID string, ev Event) *Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	ev.RoomID = roomID
	ev.Sequence = l.seq.Next(roomID)
	ev.Timestamp = time.Now()

	stored := &ev
	l.insertLocked(roomID, stored)
	return stored
}

// Insert places a pre-stamped event into the room's timeline, keeping
// it sorted regardless of arrival order. This is the replay path for
// events that already carry a sequence number; the sequencer is
// advanced so later admissions cannot reuse it.
func (l *EventLog) Insert(roomID string, ev *Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq.Advance(roomID, ev.Sequence)
	l.insertLocked(roomID, ev)
}

// insertLocked inserts keeping ascending sequence order. The in-process
// admit path always appends at the tail; the position search only does
// work for out-of-order replay inserts.
func (l *EventLog) insertLocked(roomID string, ev *Event) {
	events := l.rooms[roomID]
	if n := len(events); n == 0 || events[n-1].Sequence < ev.Sequence {
		l.rooms[roomID] = append(events, ev)
		return
	}
	i := sort.Search(len(events), func(i int) bool {
		return events[i].Sequence >= ev.Sequence
	})
	events = append(events, nil)
	copy(events[i+1:], events[i:])
	events[i] = ev
	l.rooms[roomID] = events
}

// All returns a snapshot of the room's timeline in ascending sequence
// order. Unknown rooms yield an empty slice. The snapshot is safe to
// iterate while admissions continue.
func (l *EventLog) All(roomID string) []*Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	events := l.rooms[roomID]
	out := make([]*Event, len(events))
	copy(out, events)
	return out
}

// After returns exactly those events with sequence strictly greater
// than seq, in ascending order. After(roomID, 0) equals All(roomID).
func (l *EventLog) After(roomID string, seq int64) []*Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	events := l.rooms[roomID]
	i := sort.Search(len(events), func(i int) bool {
		return events[i].Sequence > seq
	})
	out := make([]*Event, len(events)-i)
	copy(out, events[i:])
	return out
}

// CurrentSequence returns the room's sequence high-water mark, 0 for an
// unknown or empty room.
func (l *EventLog) CurrentSequence(roomID string) int64 {
	return l.seq.Current(roomID)
}

// Clear empties the room's timeline and resets its sequencer, so the
// next admitted event receives sequence 1 again.
func (l *EventLog) Clear(roomID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.rooms, roomID)
	l.seq.Reset(roomID)
}
