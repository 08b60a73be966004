package proto

// Protocol message type names as they appear on the wire.
const (
	TypeJoinRoom    = "JOIN_ROOM"
	TypeLeaveRoom   = "LEAVE_ROOM"
	TypeDrawLine    = "DRAW_LINE"
	TypeDrawPath    = "DRAW_PATH"
	TypeErase       = "ERASE"
	TypeClearCanvas = "CLEAR_CANVAS"

	TypeRoomJoined = "ROOM_JOINED"
	TypeLeftRoom   = "LEFT_ROOM"
	TypeEvent      = "EVENT"
	TypeError      = "ERROR"
	TypeUserJoined = "USER_JOINED"
	TypeUserLeft   = "USER_LEFT"
)

// Inbound is a flat client message; Type selects which fields apply.
type Inbound struct {
	Type        string       `json:"type"`
	RoomID      string       `json:"roomId,omitempty"`
	UserID      string       `json:"userId,omitempty"`
	Points      [][2]float64 `json:"points,omitempty"`
	Path        [][2]float64 `json:"path,omitempty"`
	Color       string       `json:"color,omitempty"`
	StrokeWidth float64      `json:"strokeWidth,omitempty"`
	Region      *Region      `json:"region,omitempty"`
}

// Region is a rectangular canvas area.
type Region struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// StampedEvent is a sequenced canvas event as serialized to clients and
// the HTTP read path. Timestamp is Unix milliseconds, advisory only.
type StampedEvent struct {
	Type        string       `json:"type"`
	UserID      string       `json:"userId"`
	RoomID      string       `json:"roomId"`
	Timestamp   int64        `json:"timestamp"`
	Sequence    int64        `json:"sequence"`
	Points      [][2]float64 `json:"points,omitempty"`
	Path        [][2]float64 `json:"path,omitempty"`
	Color       string       `json:"color,omitempty"`
	StrokeWidth float64      `json:"strokeWidth,omitempty"`
	Region      *Region      `json:"region,omitempty"`
}

// RoomJoined acknowledges a JOIN_ROOM and carries the room snapshot.
type RoomJoined struct {
	Type   string         `json:"type"`
	RoomID string         `json:"roomId"`
	Events []StampedEvent `json:"events"`
}

// LeftRoom acknowledges a LEAVE_ROOM.
type LeftRoom struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
}

// EventEnvelope wraps a stamped event broadcast to room members.
type EventEnvelope struct {
	Type    string       `json:"type"`
	Payload StampedEvent `json:"payload"`
}

// Presence notifies room members that a user joined or left.
type Presence struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

// ErrorReply reports a protocol error to the originating connection.
type ErrorReply struct {
	Type  string `json:"type"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}
