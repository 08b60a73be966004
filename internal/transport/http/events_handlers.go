package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sketchwire/sketchwire-server/internal/core"
	"github.com/sketchwire/sketchwire-server/internal/proto"
)

// EventHandlers serves the HTTP read path over the same event log the
// WebSocket push path writes to. There is one source of truth; these
// endpoints are just a polling view of it.
type EventHandlers struct {
	log      *core.EventLog
	registry *core.Registry
	logger   *zerolog.Logger
}

// NewEventHandlers creates the read-side handlers.
func NewEventHandlers(eventLog *core.EventLog, registry *core.Registry, logger *zerolog.Logger) *EventHandlers {
	return &EventHandlers{log: eventLog, registry: registry, logger: logger}
}

// EventsResponse is the catch-up payload for a room.
type EventsResponse struct {
	RoomID       string               `json:"roomId"`
	Events       []proto.StampedEvent `json:"events"`
	Count        int                  `json:"count"`
	LastSequence int64                `json:"lastSequence"`
}

// PresenceEntry is one member in the presence listing.
type PresenceEntry struct {
	UserID   string `json:"userId"`
	JoinedAt string `json:"joinedAt"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListEvents returns a room's timeline, optionally only the suffix
// after a known sequence number. A room with no events yields an empty
// list, never an error.
// GET /api/rooms/:roomId/events?after=k
func (h *EventHandlers) ListEvents(c *gin.Context) {
	roomID := c.Param("roomId")

	var after int64
	if raw := c.Query("after"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "after must be a non-negative integer"})
			return
		}
		after = parsed
	}

	events := h.log.After(roomID, after)
	wire := make([]proto.StampedEvent, 0, len(events))
	var last int64
	for _, ev := range events {
		wire = append(wire, eventToWire(ev))
		last = ev.Sequence
	}

	c.JSON(http.StatusOK, EventsResponse{
		RoomID:       roomID,
		Events:       wire,
		Count:        len(wire),
		LastSequence: last,
	})
}

// ClearEvents empties a room's timeline and resets its sequencer.
// DELETE /api/rooms/:roomId/events
func (h *EventHandlers) ClearEvents(c *gin.Context) {
	roomID := c.Param("roomId")
	h.log.Clear(roomID)
	h.logger.Info().Str("room", roomID).Msg("room timeline cleared")
	c.Status(http.StatusNoContent)
}

// ListPresence returns the users currently joined to a room.
// GET /api/rooms/:roomId/presence
func (h *EventHandlers) ListPresence(c *gin.Context) {
	roomID := c.Param("roomId")

	members := h.registry.Presence(roomID)
	entries := make([]PresenceEntry, 0, len(members))
	for _, m := range members {
		entries = append(entries, PresenceEntry{
			UserID:   m.UserID,
			JoinedAt: m.JoinedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"roomId":  roomID,
		"members": entries,
		"count":   len(entries),
	})
}
