package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alexdev/portfolio-api/internal/notify"
)

func waitForCount(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if h.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count = %d, want %d", h.ClientCount(), want)
}

func TestRegisterUnregister(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := &Client{ID: "c1", Send: make(chan []byte, 4)}
	h.RegisterClient(client)
	waitForCount(t, h, 1)

	h.UnregisterClient(client)
	waitForCount(t, h, 0)

	select {
	case _, ok := <-client.Send:
		if ok {
			t.Fatal("expected closed Send channel after unregister")
		}
	case <-time.After(time.Second):
		t.Fatal("Send channel not closed after unregister")
	}
}

func TestPumpEventsDeliversToClients(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := &Client{ID: "c1", Send: make(chan []byte, 4)}
	h.RegisterClient(client)
	waitForCount(t, h, 1)

	broker := notify.NewMemoryBroker()
	events, cancel := broker.Subscribe()
	defer cancel()
	go h.PumpEvents(events)

	if err := broker.Publish(context.Background(), notify.Event{
		Type: notify.EventContentChanged,
		At:   time.Now(),
	}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case msg := <-client.Send:
		var ev notify.Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			t.Fatalf("bad broadcast payload %q: %v", msg, err)
		}
		if ev.Type != notify.EventContentChanged {
			t.Errorf("event type = %q, want %q", ev.Type, notify.EventContentChanged)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for broadcast")
	}
}

func TestBroadcastDropsFullClient(t *testing.T) {
	h := NewHub()
	go h.Run()

	stuck := &Client{ID: "stuck", Send: make(chan []byte, 1)}
	healthy := &Client{ID: "healthy", Send: make(chan []byte, 16)}
	h.RegisterClient(stuck)
	h.RegisterClient(healthy)
	waitForCount(t, h, 2)

	// first fills the stuck client's buffer, second overflows it
	h.BroadcastJSON(notify.Event{Type: notify.EventContentChanged})
	h.BroadcastJSON(notify.Event{Type: notify.EventContentChanged})

	waitForCount(t, h, 1)

	// the healthy client saw both broadcasts
	for i := 0; i < 2; i++ {
		select {
		case <-healthy.Send:
		case <-time.After(time.Second):
			t.Fatalf("healthy client missed broadcast %d", i+1)
		}
	}
}
