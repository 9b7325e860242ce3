package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestClient(userID uuid.UUID) *Client {
	return &Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Send:   make(chan []byte, 8),
	}
}

func waitOnline(t *testing.T, h *Hub, userID uuid.UUID, want bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.Online(userID) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Online(%s) never became %v", userID, want)
}

func TestHubRegisterAndSend(t *testing.T) {
	h := NewHub()
	go h.Run()

	userID := uuid.New()
	c := newTestClient(userID)

	h.RegisterClient(c)
	waitOnline(t, h, userID, true)

	h.SendToUser(userID, map[string]string{"type": "new-request"})

	select {
	case raw := <-c.Send:
		var payload map[string]string
		if err := json.Unmarshal(raw, &payload); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if payload["type"] != "new-request" {
			t.Fatalf("got type %q, want new-request", payload["type"])
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no payload delivered")
	}

	h.UnregisterClient(c)
	waitOnline(t, h, userID, false)
}

func TestHubFansOutToAllConnectionsOfUser(t *testing.T) {
	h := NewHub()
	go h.Run()

	userID := uuid.New()
	a := newTestClient(userID)
	b := newTestClient(userID)
	other := newTestClient(uuid.New())

	h.RegisterClient(a)
	h.RegisterClient(b)
	h.RegisterClient(other)
	waitOnline(t, h, userID, true)
	waitOnline(t, h, other.UserID, true)

	h.SendToUser(userID, map[string]string{"type": "request-updated"})

	for _, c := range []*Client{a, b} {
		select {
		case <-c.Send:
		case <-time.After(2 * time.Second):
			t.Fatal("connection missed the event")
		}
	}

	select {
	case <-other.Send:
		t.Fatal("unrelated user received the event")
	default:
	}
}

func TestHubUnregisterKeepsNewerConnection(t *testing.T) {
	h := NewHub()
	go h.Run()

	userID := uuid.New()
	old := newTestClient(userID)
	fresh := newTestClient(userID)

	h.RegisterClient(old)
	h.RegisterClient(fresh)
	waitOnline(t, h, userID, true)

	// tearing down the old connection must not evict the fresh one
	h.UnregisterClient(old)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		h.mu.RLock()
		_, present := h.clients[old.ID]
		h.mu.RUnlock()
		if !present {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	if !h.Online(userID) {
		t.Fatal("user went offline although a connection remains")
	}

	h.SendToUser(userID, map[string]string{"type": "new-request"})
	select {
	case <-fresh.Send:
	case <-time.After(2 * time.Second):
		t.Fatal("surviving connection missed the event")
	}
}

func TestHubSendToOfflineUserIsNoop(t *testing.T) {
	h := NewHub()
	go h.Run()

	// must not block or panic
	h.SendToUser(uuid.New(), map[string]string{"type": "new-request"})
}

func TestHubSkipsFullBuffers(t *testing.T) {
	h := NewHub()
	go h.Run()

	userID := uuid.New()
	c := &Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Send:   make(chan []byte), // unbuffered and never drained
	}

	h.RegisterClient(c)
	waitOnline(t, h, userID, true)

	done := make(chan struct{})
	go func() {
		h.SendToUser(userID, map[string]string{"type": "new-request"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("SendToUser blocked on a full buffer")
	}
}
