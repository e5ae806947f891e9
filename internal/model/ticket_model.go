package model

import (
	"time"

	"github.com/google/uuid"
)

type Ticket struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserEmail    string    `gorm:"type:varchar(255);not null;index"`
	CustomerName string    `gorm:"type:varchar(255)"`
	Subject      string    `gorm:"type:text;not null"`
	Category     string    `gorm:"type:varchar(100)"`
	Description  string    `gorm:"type:text;not null"`
	Status       string    `gorm:"type:varchar(50);not null;default:'open';index"`
	Priority     string    `gorm:"type:varchar(50);not null;default:'medium'"`
	SessionId    string    `gorm:"type:varchar(64);index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Ticket) TableName() string {
	return "tickets"
}
