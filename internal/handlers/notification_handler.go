package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/Yash-01907/odoo-timepass/internal/realtime"
	"github.com/Yash-01907/odoo-timepass/internal/utils"
)

type NotificationHandler struct {
	Hub       *realtime.Hub
	JWTSecret string
}

func NewNotificationHandler(hub *realtime.Hub, secret string) *NotificationHandler {
	return &NotificationHandler{Hub: hub, JWTSecret: secret}
}

// Upgrade gates the websocket route; non-upgrade requests get 426.
func (h *NotificationHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Stream is the websocket endpoint. The client authenticates with a
// token query parameter since browsers cannot set headers on upgrade.
func (h *NotificationHandler) Stream() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		token := conn.Query("token")
		claims, err := utils.ParseJWT(h.JWTSecret, token)
		if err != nil {
			conn.WriteJSON(fiber.Map{"error": "invalid token"})
			conn.Close()
			return
		}
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			conn.WriteJSON(fiber.Map{"error": "invalid token"})
			conn.Close()
			return
		}

		client := &realtime.Client{
			ID:     uuid.New().String(),
			UserID: userID,
			Conn:   realtime.NewWebSocketConn(conn),
			Send:   make(chan []byte, 256),
		}

		h.Hub.RegisterClient(client)
		defer h.Hub.UnregisterClient(client)

		go func() {
			for msg := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					log.Printf("Notification write failed for %s: %v", client.ID, err)
					return
				}
			}
		}()

		// Read loop exists only to detect the close; inbound frames are ignored.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	})
}
