package core

// CommandKind describes what the connection wants to do.
type CommandKind int

const (
	// CommandJoinRoom subscribes the connection to a room.
	CommandJoinRoom CommandKind = iota
	// CommandLeaveRoom unsubscribes the connection from its room.
	CommandLeaveRoom
	// CommandSubmitEvent admits a canvas edit to the room's timeline.
	CommandSubmitEvent
)

// Command is an action requested by a connection. Event is non-nil for
// CommandSubmitEvent.
type Command struct {
	Kind  CommandKind
	Room  string
	User  string
	Event *Event
}
