package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/sketchwire/sketchwire-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	user := flag.String("user", "tester", "user id to draw as")
	room := flag.String("room", "room-1", "room id")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	if err := wsjson.Write(ctx, conn, proto.Inbound{
		Type:   proto.TypeJoinRoom,
		RoomID: *room,
		UserID: *user,
	}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	if err := wsjson.Write(ctx, conn, proto.Inbound{
		Type:        proto.TypeDrawLine,
		RoomID:      *room,
		UserID:      *user,
		Points:      [][2]float64{{0, 0}, {100, 100}},
		Color:       "#336699",
		StrokeWidth: 2,
	}); err != nil {
		return fmt.Errorf("send draw: %w", err)
	}

	for {
		var raw json.RawMessage
		if err := wsjson.Read(ctx, conn, &raw); err != nil {
			return fmt.Errorf("read: %w", err)
		}

		var head struct {
			Type  string `json:"type"`
			Error string `json:"error"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return fmt.Errorf("unmarshal reply: %w", err)
		}

		fmt.Printf("Received: type=%s\n", head.Type)
		if head.Error != "" {
			fmt.Printf("Error: %s\n", head.Error)
		}

		switch head.Type {
		case proto.TypeRoomJoined:
			var joined proto.RoomJoined
			if err := json.Unmarshal(raw, &joined); err == nil {
				fmt.Printf("Joined: room=%s snapshot=%d events\n", joined.RoomID, len(joined.Events))
			}
		case proto.TypeEvent:
			var env proto.EventEnvelope
			if err := json.Unmarshal(raw, &env); err != nil {
				fmt.Printf("Raw data: %s\n", string(raw))
				return fmt.Errorf("unmarshal event: %w", err)
			}
			fmt.Printf("Event: type=%s user=%s sequence=%d\n", env.Payload.Type, env.Payload.UserID, env.Payload.Sequence)
			return nil
		default:
			// keep looping for the stamped event
		}
	}
}
