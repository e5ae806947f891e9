package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId    string    `gorm:"type:varchar(64);not null;index"`
	Role         string    `gorm:"type:varchar(50);not null"`
	Content      string    `gorm:"type:text;not null"`
	UserEmail    string    `gorm:"type:varchar(255)"`
	CustomerName string    `gorm:"type:varchar(255)"`
	Subject      string    `gorm:"type:text"`
	Category     string    `gorm:"type:varchar(100)"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
