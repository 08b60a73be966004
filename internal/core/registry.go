package core

import (
	"sync"
	"time"
)

// Member is the presence entry for one user in one room.
type Member struct {
	UserID   string
	Client   *Client
	JoinedAt time.Time
}

// Registry tracks which connections belong to which rooms. It keeps a
// bidirectional index: room to members for fan-out, and client to rooms
// so a transport-detected disconnect can remove a connection from
// whatever rooms it occupies without a scan.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[string]map[string]*Member   // roomID -> userID -> member
	clients map[*Client]map[string]struct{} // client -> set of roomIDs
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms:   make(map[string]map[string]*Member),
		clients: make(map[*Client]map[string]struct{}),
	}
}

// Join registers the client as the user's connection in the room. If
// the user already has a connection registered there, the old handle is
// replaced; closing the stale socket is the transport's job, not ours.
func (r *Registry) Join(roomID, userID string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.rooms[roomID]
	if members == nil {
		members = make(map[string]*Member)
		r.rooms[roomID] = members
	}

	if prev, ok := members[userID]; ok && prev.Client != c {
		r.dropClientRoomLocked(prev.Client, roomID)
	}
	members[userID] = &Member{UserID: userID, Client: c, JoinedAt: time.Now()}

	roomSet := r.clients[c]
	if roomSet == nil {
		roomSet = make(map[string]struct{})
		r.clients[c] = roomSet
	}
	roomSet[roomID] = struct{}{}
}

// Leave removes the user's membership in the room. Leaving a room the
// user is not in is a no-op.
func (r *Registry) Leave(roomID, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.rooms[roomID]
	m, ok := members[userID]
	if !ok {
		return
	}
	delete(members, userID)
	if len(members) == 0 {
		delete(r.rooms, roomID)
	}
	r.dropClientRoomLocked(m.Client, roomID)
}

// MembersOf returns a snapshot of the connections currently joined to
// the room, for fan-out. A member joining mid-broadcast may or may not
// receive that one in-flight event; that race is accepted.
func (r *Registry) MembersOf(roomID string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.rooms[roomID]
	out := make([]*Client, 0, len(members))
	for _, m := range members {
		out = append(out, m.Client)
	}
	return out
}

// Presence returns the presence entries of the room, for the HTTP read
// side. The returned members are copies.
func (r *Registry) Presence(roomID string) []Member {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.rooms[roomID]
	out := make([]Member, 0, len(members))
	for _, m := range members {
		out = append(out, *m)
	}
	return out
}

// Membership names one (room, user) pair released by RemoveClient.
type Membership struct {
	Room string
	User string
}

// RemoveClient drops every membership held by the connection and
// returns the affected (room, user) pairs. Called by the transport on
// ungraceful disconnect.
func (r *Registry) RemoveClient(c *Client) []Membership {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []Membership
	for roomID := range r.clients[c] {
		members := r.rooms[roomID]
		for userID, m := range members {
			if m.Client != c {
				continue
			}
			removed = append(removed, Membership{Room: roomID, User: userID})
			delete(members, userID)
		}
		if len(members) == 0 {
			delete(r.rooms, roomID)
		}
	}
	delete(r.clients, c)
	return removed
}

func (r *Registry) dropClientRoomLocked(c *Client, roomID string) {
	if set, ok := r.clients[c]; ok {
		delete(set, roomID)
		if len(set) == 0 {
			delete(r.clients, c)
		}
	}
}
