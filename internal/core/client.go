package core

// Client is one inbound connection as seen by the core layer. The
// transport feeds decoded commands into Commands in arrival order and
// drains Notices back to the wire.
type Client struct {
	ID       string
	UserID   string
	Commands chan *Command
	Notices  chan *Notice

	// room is the client's current room, empty while unjoined. Owned by
	// the hub goroutine; the transport must not touch it.
	room string
}

// NewClient constructs a client with the given notice buffer size. A
// full buffer causes fan-out to drop notices for this client rather
// than stall the room.
func NewClient(id string, buffer int) *Client {
	if buffer <= 0 {
		buffer = 32
	}
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Notices:  make(chan *Notice, buffer),
	}
}
