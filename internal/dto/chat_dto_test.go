// FILE: internal/dto/chat_dto_test.go
package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatMessageResponseWireFormat(t *testing.T) {
	resp := ChatMessageResponse{
		SessionId:        "s1",
		Role:             "assistant",
		Content:          "hello",
		RelatedQuestions: []string{"q1", "q2"},
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	// Clients key off "related"; an empty slice must still serialize as [].
	assert.JSONEq(t, `{"session_id":"s1","role":"assistant","content":"hello","related":["q1","q2"]}`, string(data))

	resp.RelatedQuestions = []string{}
	data, err = json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"related":[]`)
}
