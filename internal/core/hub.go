package core

import (
	"context"

	"github.com/rs/zerolog"
)

// Hub owns the per-connection protocol state machines. Commands from
// each connection are processed in arrival order; the hub loop is the
// sole mutator of connection state, while the event log and registry
// are independently safe for the HTTP read side.
type Hub struct {
	log      *EventLog
	registry *Registry
	logger   zerolog.Logger

	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand

	// clients is the set of live connections, owned by the run loop.
	// Commands pumped after a connection unregisters are dropped.
	clients map[*Client]struct{}
}

type clientCommand struct {
	client *Client
	cmd    *Command
}

// NewHub constructs a hub over the given event log and registry. A nil
// logger disables logging.
func NewHub(log *EventLog, registry *Registry, logger *zerolog.Logger) *Hub {
	if log == nil {
		log = NewEventLog()
	}
	if registry == nil {
		registry = NewRegistry()
	}
	lg := zerolog.Nop()
	if logger != nil {
		lg = *logger
	}
	return &Hub{
		log:        log,
		registry:   registry,
		logger:     lg,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan clientCommand),
		clients:    make(map[*Client]struct{}),
	}
}

// Log exposes the event log for the HTTP read side.
func (h *Hub) Log() *EventLog { return h.log }

// Registry exposes the registry for the HTTP read side.
func (h *Hub) Registry() *Registry { return h.registry }

// RegisterClient attaches a connection to the hub. The hub pumps the
// client's command channel until it is closed by the transport.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient detaches a connection, removing its memberships.
// Called by the transport on close, graceful or not.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Run processes registrations and commands until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			go h.pump(ctx, c)
		case c := <-h.unregister:
			h.handleDisconnect(c)
		case cc := <-h.commands:
			if _, ok := h.clients[cc.client]; !ok {
				continue
			}
			h.dispatch(cc.client, cc.cmd)
		case <-ctx.Done():
			return
		}
	}
}

// pump forwards one connection's commands to the run loop, preserving
// per-connection arrival order.
func (h *Hub) pump(ctx context.Context, c *Client) {
	for {
		select {
		case cmd, ok := <-c.Commands:
			if !ok {
				return
			}
			select {
			case h.commands <- clientCommand{client: c, cmd: cmd}:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) dispatch(c *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandJoinRoom:
		h.handleJoin(c, cmd)
	case CommandLeaveRoom:
		h.handleLeave(c, cmd)
	case CommandSubmitEvent:
		h.handleSubmit(c, cmd)
	default:
		h.send(c, &Notice{
			Kind:  NoticeError,
			Error: coreError(ErrCodeInvalidMessage, "unknown command"),
		})
	}
}

// handleJoin moves the connection to JOINED. A join while already
// joined is a room switch: the previous membership is released first.
func (h *Hub) handleJoin(c *Client, cmd *Command) {
	if cmd.Room == "" || cmd.User == "" {
		h.send(c, &Notice{
			Kind:  NoticeError,
			Error: coreError(ErrCodeBadRequest, "roomId and userId are required"),
		})
		return
	}

	if c.room != "" && (c.room != cmd.Room || c.UserID != cmd.User) {
		h.registry.Leave(c.room, c.UserID)
		h.broadcast(c.room, &Notice{Kind: NoticeUserLeft, Room: c.room, User: c.UserID})
	}

	h.registry.Join(cmd.Room, cmd.User, c)
	c.room = cmd.Room
	c.UserID = cmd.User

	h.send(c, &Notice{
		Kind:   NoticeRoomJoined,
		Room:   cmd.Room,
		User:   cmd.User,
		Events: h.log.All(cmd.Room),
	})
	h.broadcast(cmd.Room, &Notice{Kind: NoticeUserJoined, Room: cmd.Room, User: cmd.User})

	h.logger.Debug().
		Str("client_id", c.ID).
		Str("room", cmd.Room).
		Str("user", cmd.User).
		Msg("client joined room")
}

// handleLeave releases the membership and acknowledges. Leaving a room
// the user is not in is a no-op, not an error.
func (h *Hub) handleLeave(c *Client, cmd *Command) {
	room := cmd.Room
	if room == "" {
		room = c.room
	}
	user := cmd.User
	if user == "" {
		user = c.UserID
	}

	if room != "" && user != "" {
		h.registry.Leave(room, user)
	}
	if c.room == room {
		c.room = ""
	}

	h.send(c, &Notice{Kind: NoticeLeftRoom, Room: room, User: user})
	if room != "" && user != "" {
		h.broadcast(room, &Notice{Kind: NoticeUserLeft, Room: room, User: user})
	}
}

// handleSubmit admits a canvas edit and fans the stamped event out to
// every room member, the sender included, so the sender's optimistic
// render can be reconciled with the authoritative sequence number.
func (h *Hub) handleSubmit(c *Client, cmd *Command) {
	if c.room == "" {
		h.send(c, &Notice{
			Kind:  NoticeError,
			Error: coreError(ErrCodeNotJoined, "join a room before submitting events"),
		})
		return
	}
	ev := cmd.Event
	if ev == nil || !ev.IsEdit() {
		h.send(c, &Notice{
			Kind:  NoticeError,
			Error: coreError(ErrCodeInvalidMessage, "unsupported event type"),
		})
		return
	}
	if ev.RoomID != "" && ev.RoomID != c.room {
		h.send(c, &Notice{
			Kind:  NoticeError,
			Error: coreError(ErrCodeBadRequest, "event room does not match joined room"),
		})
		return
	}

	stamped := h.log.Admit(c.room, *ev)
	h.broadcast(c.room, &Notice{
		Kind:  NoticeEvent,
		Room:  c.room,
		User:  stamped.UserID,
		Event: stamped,
	})
}

func (h *Hub) handleDisconnect(c *Client) {
	delete(h.clients, c)
	for _, m := range h.registry.RemoveClient(c) {
		h.broadcast(m.Room, &Notice{Kind: NoticeUserLeft, Room: m.Room, User: m.User})
	}
	c.room = ""
}

// broadcast delivers a notice to every member of the room. Delivery per
// recipient is non-blocking: a slow consumer drops notices instead of
// stalling the room.
func (h *Hub) broadcast(roomID string, n *Notice) {
	for _, member := range h.registry.MembersOf(roomID) {
		h.send(member, n)
	}
}

func (h *Hub) send(c *Client, n *Notice) {
	select {
	case c.Notices <- n:
	default:
		h.logger.Warn().
			Str("client_id", c.ID).
			Int("kind", int(n.Kind)).
			Msg("dropping notice for slow client")
	}
}
