package realtime

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	EventNewRequest     = "new-request"
	EventRequestUpdated = "request-updated"
)

// Notifier pushes swap lifecycle events: directly over the hub for clients on
// this process, and onto Redis for out-of-process consumers. Delivery is
// at-most-once; offline recipients pick the change up on their next fetch.
type Notifier struct {
	Hub *Hub
	RDB *redis.Client
}

func NewNotifier(hub *Hub, rdb *redis.Client) *Notifier {
	return &Notifier{Hub: hub, RDB: rdb}
}

func (n *Notifier) NewRequest(ctx context.Context, providerID uuid.UUID, swap interface{}) {
	n.push(ctx, providerID, EventNewRequest, swap)
}

func (n *Notifier) RequestUpdated(ctx context.Context, requesterID uuid.UUID, swap interface{}) {
	n.push(ctx, requesterID, EventRequestUpdated, swap)
}

func (n *Notifier) push(ctx context.Context, recipientID uuid.UUID, event string, swap interface{}) {
	payload := map[string]interface{}{
		"type": event,
		"swap": swap,
	}

	n.Hub.SendToUser(recipientID, payload)

	if n.RDB != nil {
		b, _ := json.Marshal(payload)
		n.RDB.Publish(ctx, "notifications:"+recipientID.String(), b)
	}
}
