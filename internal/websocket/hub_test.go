// FILE: internal/websocket/hub_test.go
package websocket

import (
	"testing"
	"time"

	"csupport-chat-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localClientCount(h *Hub, sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

func TestSendToSessionDropsSlowClientWithoutKillingHub(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run()

	// An unbuffered Send with no reader models a stalled connection.
	slow := &Client{Hub: hub, SessionID: "s1", Send: make(chan []byte)}
	healthy := &Client{Hub: hub, SessionID: "s1", Send: make(chan []byte, 4)}
	hub.register <- slow
	hub.register <- healthy
	require.Eventually(t, func() bool {
		return localClientCount(hub, "s1") == 2
	}, time.Second, 5*time.Millisecond)

	hub.SendToSession("s1", []byte(`{"type":"bot_message"}`))

	// The stalled client is unregistered; its channel is closed exactly
	// once, by the Run loop.
	require.Eventually(t, func() bool {
		return localClientCount(hub, "s1") == 1
	}, time.Second, 5*time.Millisecond)
	_, open := <-slow.Send
	assert.False(t, open)

	// The healthy client on the same session still got the frame.
	select {
	case frame := <-healthy.Send:
		assert.JSONEq(t, `{"type":"bot_message"}`, string(frame))
	default:
		t.Fatal("healthy client did not receive the frame")
	}

	// The hub goroutine survived and keeps delivering.
	hub.SendToSession("s1", []byte(`{"type":"bot_message"}`))
	require.Eventually(t, func() bool {
		select {
		case <-healthy.Send:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}
