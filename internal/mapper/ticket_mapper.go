package mapper

import (
	"time"

	"csupport-chat-be/internal/entity"
	"csupport-chat-be/internal/model"
)

type TicketMapper struct{}

func NewTicketMapper() *TicketMapper {
	return &TicketMapper{}
}

func (m *TicketMapper) ToEntity(t *model.Ticket) *entity.Ticket {
	if t == nil {
		return nil
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		ts := t.UpdatedAt
		updatedAt = &ts
	}

	return &entity.Ticket{
		Id:           t.Id,
		UserEmail:    t.UserEmail,
		CustomerName: t.CustomerName,
		Subject:      t.Subject,
		Category:     t.Category,
		Description:  t.Description,
		Status:       t.Status,
		Priority:     t.Priority,
		SessionId:    t.SessionId,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *TicketMapper) ToModel(t *entity.Ticket) *model.Ticket {
	if t == nil {
		return nil
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.Ticket{
		Id:           t.Id,
		UserEmail:    t.UserEmail,
		CustomerName: t.CustomerName,
		Subject:      t.Subject,
		Category:     t.Category,
		Description:  t.Description,
		Status:       t.Status,
		Priority:     t.Priority,
		SessionId:    t.SessionId,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}
