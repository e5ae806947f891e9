package entity

import (
	"time"

	"github.com/google/uuid"
)

type Faq struct {
	Id        uuid.UUID
	Question  string
	Answer    string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
