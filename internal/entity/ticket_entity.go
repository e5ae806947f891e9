package entity

import (
	"time"

	"github.com/google/uuid"
)

type Ticket struct {
	Id           uuid.UUID
	UserEmail    string
	CustomerName string
	Subject      string
	Category     string
	Description  string
	Status       string
	Priority     string
	SessionId    string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
