package websocket

import (
	"context"
	"encoding/json"
	"log"

	"csupport-chat-be/internal/dto"
	"csupport-chat-be/internal/service"

	"github.com/gofiber/websocket/v2"
)

// ServeWs handles a chat websocket connection for one session. Each inbound
// chat_message frame is dispatched on its own goroutine so a slow generative
// call never blocks the read loop.
func ServeWs(hub *Hub, c *websocket.Conn, sessionID string, chat service.IChatService) {
	client := &Client{
		Hub:       hub,
		Conn:      c,
		SessionID: sessionID,
		Send:      make(chan []byte, 256),
	}
	client.OnChatMessage = func(frame Frame) {
		var req dto.ChatMessageRequest
		if err := json.Unmarshal(frame.Data, &req); err != nil {
			log.Printf("Dropping malformed chat_message for session %s: %v", sessionID, err)
			return
		}
		// The connection's session wins over whatever the payload claims.
		req.SessionId = sessionID

		go func() {
			resp := chat.HandleMessage(context.Background(), &req)
			hub.PushBotMessage(resp)
		}()
	}

	client.Hub.register <- client

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
