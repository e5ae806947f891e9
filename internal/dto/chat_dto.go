package dto

// ChatMessageRequest is the inbound payload, from the REST endpoint or a
// websocket chat_message frame.
type ChatMessageRequest struct {
	SessionId         string `json:"session_id" validate:"required"`
	Content           string `json:"content" validate:"required"`
	UserEmail         string `json:"user_email" validate:"omitempty,email"`
	CustomerName      string `json:"customer_name"`
	Subject           string `json:"subject"`
	Category          string `json:"category"`
	IsRelatedQuestion bool   `json:"is_related_question"`
}

// ChatMessageResponse is the assistant reply sent back to the client.
type ChatMessageResponse struct {
	SessionId        string   `json:"session_id"`
	Role             string   `json:"role"`
	Content          string   `json:"content"`
	RelatedQuestions []string `json:"related"`
}

// ChatHistoryItem is one transcript entry in the history endpoint response.
type ChatHistoryItem struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}
