package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sketchwire/sketchwire-server/internal/core"
	"github.com/sketchwire/sketchwire-server/internal/proto"
)

func seedRoom(hub *core.Hub, roomID string, n int) {
	for i := 0; i < n; i++ {
		hub.Log().Admit(roomID, core.Event{
			Type:   core.EventDrawLine,
			UserID: "alice",
			Stroke: &core.Stroke{Points: []core.Point{{0, 0}, {1, 1}}, Color: "#000", Width: 1},
		})
	}
}

func getEvents(t *testing.T, ts *httptest.Server, path string) EventsResponse {
	t.Helper()

	resp, err := ts.Client().Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s status = %d", path, resp.StatusCode)
	}

	var out EventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestListEventsFullTimeline(t *testing.T) {
	ts, hub := startTestServer(t)
	seedRoom(hub, "room-1", 3)

	out := getEvents(t, ts, "/api/rooms/room-1/events")
	if out.Count != 3 || len(out.Events) != 3 {
		t.Fatalf("count = %d, events = %d, want 3", out.Count, len(out.Events))
	}
	if out.LastSequence != 3 {
		t.Fatalf("lastSequence = %d, want 3", out.LastSequence)
	}
	for i, ev := range out.Events {
		if ev.Sequence != int64(i+1) {
			t.Fatalf("position %d holds sequence %d", i, ev.Sequence)
		}
	}
}

func TestListEventsAfter(t *testing.T) {
	ts, hub := startTestServer(t)
	seedRoom(hub, "room-1", 5)

	out := getEvents(t, ts, "/api/rooms/room-1/events?after=3")
	if out.Count != 2 || out.LastSequence != 5 {
		t.Fatalf("count = %d lastSequence = %d, want 2 and 5", out.Count, out.LastSequence)
	}
	if out.Events[0].Sequence != 4 || out.Events[1].Sequence != 5 {
		t.Fatalf("unexpected suffix: %+v", out.Events)
	}
}

func TestListEventsEmptyRoom(t *testing.T) {
	ts, _ := startTestServer(t)

	out := getEvents(t, ts, "/api/rooms/nowhere/events")
	if out.Count != 0 || out.LastSequence != 0 {
		t.Fatalf("empty room response: %+v", out)
	}
	if out.Events == nil {
		t.Fatal("events must be an empty array, not null")
	}
}

func TestListEventsBadAfterParam(t *testing.T) {
	ts, _ := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/api/rooms/room-1/events?after=banana")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestClearEvents(t *testing.T) {
	ts, hub := startTestServer(t)
	seedRoom(hub, "room-1", 4)

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/rooms/room-1/events", nil)
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}

	out := getEvents(t, ts, "/api/rooms/room-1/events")
	if out.Count != 0 || out.LastSequence != 0 {
		t.Fatalf("timeline not cleared: %+v", out)
	}

	// The sequencer restarted with the log.
	if ev := hub.Log().Admit("room-1", core.Event{Type: core.EventClearCanvas, UserID: "alice"}); ev.Sequence != 1 {
		t.Fatalf("sequence after clear = %d, want 1", ev.Sequence)
	}
}

func TestListPresence(t *testing.T) {
	ts, hub := startTestServer(t)

	alice := core.NewClient("conn-a", 0)
	hub.Registry().Join("room-1", "alice", alice)

	resp, err := ts.Client().Get(ts.URL + "/api/rooms/room-1/presence")
	if err != nil {
		t.Fatalf("GET presence: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		RoomID  string          `json:"roomId"`
		Members []PresenceEntry `json:"members"`
		Count   int             `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode presence: %v", err)
	}
	if out.Count != 1 || len(out.Members) != 1 || out.Members[0].UserID != "alice" {
		t.Fatalf("unexpected presence response: %+v", out)
	}
}

func TestGuestTokenEndpoint(t *testing.T) {
	ts, _ := startTestServer(t)

	resp, err := ts.Client().Post(ts.URL+"/api/auth/guest", "application/json", nil)
	if err != nil {
		t.Fatalf("POST guest: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var out GuestResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode guest response: %v", err)
	}
	if out.Token == "" || out.UserID == "" {
		t.Fatalf("incomplete guest response: %+v", out)
	}
}

func TestMapperRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name string
		in   proto.Inbound
	}{
		{"join without user", proto.Inbound{Type: proto.TypeJoinRoom, RoomID: "r"}},
		{"draw without points", proto.Inbound{Type: proto.TypeDrawLine, RoomID: "r", UserID: "u"}},
		{"path without path", proto.Inbound{Type: proto.TypeDrawPath, RoomID: "r", UserID: "u"}},
		{"erase without region", proto.Inbound{Type: proto.TypeErase, RoomID: "r", UserID: "u"}},
		{"edit without user", proto.Inbound{Type: proto.TypeClearCanvas, RoomID: "r"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, errReply := inboundToCommand(tc.in)
			if errReply == nil {
				t.Fatalf("expected protocol error, got command %+v", cmd)
			}
		})
	}
}
