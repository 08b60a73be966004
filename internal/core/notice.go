package core

// NoticeKind is a notification the core emits to connections.
type NoticeKind int

const (
	// NoticeRoomJoined acknowledges a join and carries the room's
	// current timeline snapshot.
	NoticeRoomJoined NoticeKind = iota
	// NoticeLeftRoom acknowledges a leave.
	NoticeLeftRoom
	// NoticeEvent delivers an admitted canvas event to a room member.
	NoticeEvent
	// NoticeUserJoined tells room members that a user joined.
	NoticeUserJoined
	// NoticeUserLeft tells room members that a user left.
	NoticeUserLeft
	// NoticeError reports a protocol error to the originating connection.
	NoticeError
)

// Notice is sent to connections to describe what happened. Event is
// non-nil for NoticeEvent, Events for NoticeRoomJoined, Error for
// NoticeError.
type Notice struct {
	Kind   NoticeKind
	Room   string
	User   string
	Event  *Event
	Events []*Event
	Error  *CoreError
}
