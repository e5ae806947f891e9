package store

// Session is the in-process snapshot of a chat session's customer metadata.
// It is a convenience cache only; the transcript is the source of truth.
type Session struct {
	ID           string `json:"id"`
	UserEmail    string `json:"user_email"`
	CustomerName string `json:"customer_name"`
	Subject      string `json:"subject"`
	Category     string `json:"category"`
	LastQuery    string `json:"last_query"`
}
