package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one transcript entry. Rows are append-only; the metadata
// fields are only populated on user messages carrying session context.
type ChatMessage struct {
	Id           uuid.UUID
	SessionId    string
	Role         string
	Content      string
	UserEmail    string
	CustomerName string
	Subject      string
	Category     string
	CreatedAt    time.Time
}
