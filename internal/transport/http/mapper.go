package http

import (
	"github.com/sketchwire/sketchwire-server/internal/core"
	"github.com/sketchwire/sketchwire-server/internal/proto"
)

// inboundToCommand validates a decoded wire message and maps it to a
// core command. A non-nil ErrorReply means a protocol error that should
// be reported to the sender without touching the hub.
func inboundToCommand(in proto.Inbound) (*core.Command, *proto.ErrorReply) {
	switch in.Type {
	case proto.TypeJoinRoom:
		if in.RoomID == "" || in.UserID == "" {
			return nil, protocolError(core.ErrCodeBadRequest, "roomId and userId are required")
		}
		return &core.Command{Kind: core.CommandJoinRoom, Room: in.RoomID, User: in.UserID}, nil

	case proto.TypeLeaveRoom:
		return &core.Command{Kind: core.CommandLeaveRoom, Room: in.RoomID, User: in.UserID}, nil

	case proto.TypeDrawLine, proto.TypeDrawPath, proto.TypeErase, proto.TypeClearCanvas:
		ev, errReply := eventFromInbound(in)
		if errReply != nil {
			return nil, errReply
		}
		return &core.Command{Kind: core.CommandSubmitEvent, Room: in.RoomID, User: in.UserID, Event: ev}, nil

	default:
		return nil, protocolError(core.ErrCodeInvalidMessage, "unknown message type: "+in.Type)
	}
}

func eventFromInbound(in proto.Inbound) (*core.Event, *proto.ErrorReply) {
	if in.UserID == "" {
		return nil, protocolError(core.ErrCodeBadRequest, "userId is required")
	}

	ev := &core.Event{
		Type:   core.EventType(in.Type),
		UserID: in.UserID,
		RoomID: in.RoomID,
	}

	switch in.Type {
	case proto.TypeDrawLine:
		if len(in.Points) == 0 {
			return nil, protocolError(core.ErrCodeBadRequest, "points are required")
		}
		ev.Stroke = &core.Stroke{Points: toPoints(in.Points), Color: in.Color, Width: in.StrokeWidth}
	case proto.TypeDrawPath:
		if len(in.Path) == 0 {
			return nil, protocolError(core.ErrCodeBadRequest, "path is required")
		}
		ev.Stroke = &core.Stroke{Points: toPoints(in.Path), Color: in.Color, Width: in.StrokeWidth}
	case proto.TypeErase:
		if in.Region == nil {
			return nil, protocolError(core.ErrCodeBadRequest, "region is required")
		}
		ev.Region = &core.Region{X: in.Region.X, Y: in.Region.Y, Width: in.Region.Width, Height: in.Region.Height}
	case proto.TypeClearCanvas:
		// No payload.
	}

	return ev, nil
}

// noticeToOutbound maps a core notice to its wire representation.
func noticeToOutbound(n *core.Notice) any {
	switch n.Kind {
	case core.NoticeRoomJoined:
		events := make([]proto.StampedEvent, 0, len(n.Events))
		for _, ev := range n.Events {
			events = append(events, eventToWire(ev))
		}
		return proto.RoomJoined{Type: proto.TypeRoomJoined, RoomID: n.Room, Events: events}

	case core.NoticeLeftRoom:
		return proto.LeftRoom{Type: proto.TypeLeftRoom, RoomID: n.Room}

	case core.NoticeEvent:
		return proto.EventEnvelope{Type: proto.TypeEvent, Payload: eventToWire(n.Event)}

	case core.NoticeUserJoined:
		return proto.Presence{Type: proto.TypeUserJoined, RoomID: n.Room, UserID: n.User}

	case core.NoticeUserLeft:
		return proto.Presence{Type: proto.TypeUserLeft, RoomID: n.Room, UserID: n.User}

	case core.NoticeError:
		if n.Error == nil {
			return proto.ErrorReply{Type: proto.TypeError, Code: core.ErrCodeInternal, Error: "unknown error"}
		}
		return proto.ErrorReply{Type: proto.TypeError, Code: n.Error.Code, Error: n.Error.Message}

	default:
		return proto.ErrorReply{Type: proto.TypeError, Code: core.ErrCodeInternal, Error: "unmapped notice"}
	}
}

// eventToWire serializes a stamped event. DRAW_PATH strokes travel in
// the path field, DRAW_LINE strokes in points.
func eventToWire(ev *core.Event) proto.StampedEvent {
	out := proto.StampedEvent{
		Type:      string(ev.Type),
		UserID:    ev.UserID,
		RoomID:    ev.RoomID,
		Timestamp: ev.Timestamp.UnixMilli(),
		Sequence:  ev.Sequence,
	}
	if ev.Stroke != nil {
		pairs := fromPoints(ev.Stroke.Points)
		if ev.Type == core.EventDrawPath {
			out.Path = pairs
		} else {
			out.Points = pairs
		}
		out.Color = ev.Stroke.Color
		out.StrokeWidth = ev.Stroke.Width
	}
	if ev.Region != nil {
		out.Region = &proto.Region{X: ev.Region.X, Y: ev.Region.Y, Width: ev.Region.Width, Height: ev.Region.Height}
	}
	return out
}

func toPoints(pairs [][2]float64) []core.Point {
	points := make([]core.Point, len(pairs))
	for i, p := range pairs {
		points[i] = core.Point(p)
	}
	return points
}

func fromPoints(points []core.Point) [][2]float64 {
	pairs := make([][2]float64, len(points))
	for i, p := range points {
		pairs[i] = [2]float64(p)
	}
	return pairs
}

func protocolError(code, msg string) *proto.ErrorReply {
	return &proto.ErrorReply{Type: proto.TypeError, Code: code, Error: msg}
}
