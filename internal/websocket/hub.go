package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"csupport-chat-be/internal/constant"
	"csupport-chat-be/internal/dto"
	"csupport-chat-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const clusterChannel = "chat_events"

type Hub struct {
	// Registered clients map: SessionID -> List of Clients (multi-tab)
	clients map[string][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance delivery
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SessionID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.SessionID]) == 0 {
					delete(h.clients, client.SessionID)
					h.logger.Info("Hub", "Session fully disconnected", map[string]interface{}{"session_id": client.SessionID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// SendToSession delivers a raw frame to every connection of the session,
// locally and via Redis for other instances.
func (h *Hub) SendToSession(sessionID string, data []byte) {
	h.mu.RLock()
	clients, localFound := h.clients[sessionID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				// The unregister path owns closing Send.
				h.logger.Warn("Hub", "Client Send buffer full, dropping connection", map[string]interface{}{"session_id": sessionID})
				h.unregister <- client
			}
		}
	}

	// Relay through Redis only when the session is not held locally,
	// otherwise our own subscriber would deliver it a second time.
	if !localFound && h.rdb != nil {
		payload := map[string]interface{}{
			"target_session_id": sessionID,
			"message":           json.RawMessage(data),
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), clusterChannel, jsonPayload)
	}
}

// PushBotMessage wraps an assistant reply in the bot_message envelope and
// delivers it to the session.
func (h *Hub) PushBotMessage(resp *dto.ChatMessageResponse) {
	data, err := json.Marshal(Frame{Type: FrameTypeBotMessage, Data: mustRaw(resp)})
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal bot message", map[string]interface{}{"error": err.Error()})
		return
	}
	h.SendToSession(resp.SessionId, data)
}

// Notify lets background workers push a plain assistant message into the
// session, the auto-resolve scheduler uses this for its inactivity notice.
func (h *Hub) Notify(ctx context.Context, sessionID, content string) error {
	h.PushBotMessage(&dto.ChatMessageResponse{
		SessionId:        sessionID,
		Role:             constant.ChatMessageRoleAssistant,
		Content:          content,
		RelatedQuestions: []string{},
	})
	return nil
}

func (h *Hub) subscribeToRedis() {
	// All instances subscribe to one channel carrying
	// {target_session_id, message}. Each instance delivers only to sessions
	// it holds locally.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetSessionID string          `json:"target_session_id"`
			Message         json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[payload.TargetSessionID]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				select {
				case client.Send <- payload.Message:
				default:
					h.unregister <- client
				}
			}
		}
	}
}

func mustRaw(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("{}")
	}
	return data
}
