package core

import (
	"testing"
	"time"
)

func mustNotice(t *testing.T, ch <-chan *Notice, kind NoticeKind) *Notice {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case n := <-ch:
			if n == nil {
				continue
			}
			if n.Kind == kind {
				return n
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected notice kind %v not received", kind)
	return nil
}

// noNotice asserts that no notice of the given kind arrives within a
// short window.
func noNotice(t *testing.T, ch <-chan *Notice, kind NoticeKind) {
	t.Helper()

	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		select {
		case n := <-ch:
			if n != nil && n.Kind == kind {
				t.Fatalf("unexpected notice kind %v received: %+v", kind, n)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func drawLine(user string, points ...Point) *Event {
	return &Event{
		Type:   EventDrawLine,
		UserID: user,
		Stroke: &Stroke{Points: points, Color: "#000000", Width: 2},
	}
}
