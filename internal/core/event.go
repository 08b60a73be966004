package core

import "time"

// EventType discriminates the variants of the canvas event union.
type EventType string

const (
	// EventDrawLine is a straight line segment stroke.
	EventDrawLine EventType = "DRAW_LINE"
	// EventDrawPath is a freehand path stroke.
	EventDrawPath EventType = "DRAW_PATH"
	// EventErase removes a rectangular region of the canvas.
	EventErase EventType = "ERASE"
	// EventClearCanvas wipes the whole canvas.
	EventClearCanvas EventType = "CLEAR_CANVAS"
	// EventJoinRoom records a user joining a room.
	EventJoinRoom EventType = "JOIN_ROOM"
	// EventLeaveRoom records a user leaving a room.
	EventLeaveRoom EventType = "LEAVE_ROOM"
)

// Point is an (x, y) canvas coordinate.
type Point [2]float64

// Stroke carries the drawing payload shared by DRAW_LINE and DRAW_PATH.
type Stroke struct {
	Points []Point
	Color  string
	Width  float64
}

// Region is the rectangular area affected by an ERASE event.
type Region struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Event is a canvas event. Stroke is non-nil for the draw variants and
// Region is non-nil for ERASE; both are nil otherwise.
//
// Sequence is zero until the event is admitted to a room's log. It is
// assigned exactly once, by the EventLog, and is immutable afterwards.
// Timestamp is set at admission time and is advisory only; ordering is
// defined solely by Sequence.
type Event struct {
	Type      EventType
	UserID    string
	RoomID    string
	Timestamp time.Time
	Sequence  int64
	Stroke    *Stroke
	Region    *Region
}

// IsEdit reports whether the event mutates the canvas and therefore
// belongs in the room's event log.
func (e *Event) IsEdit() bool {
	switch e.Type {
	case EventDrawLine, EventDrawPath, EventErase, EventClearCanvas:
		return true
	default:
		return false
	}
}
