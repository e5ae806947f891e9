package mapper

import (
	"csupport-chat-be/internal/entity"
	"csupport-chat-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	return &entity.ChatMessage{
		Id:           msg.Id,
		SessionId:    msg.SessionId,
		Role:         msg.Role,
		Content:      msg.Content,
		UserEmail:    msg.UserEmail,
		CustomerName: msg.CustomerName,
		Subject:      msg.Subject,
		Category:     msg.Category,
		CreatedAt:    msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	return &model.ChatMessage{
		Id:           msg.Id,
		SessionId:    msg.SessionId,
		Role:         msg.Role,
		Content:      msg.Content,
		UserEmail:    msg.UserEmail,
		CustomerName: msg.CustomerName,
		Subject:      msg.Subject,
		Category:     msg.Category,
		CreatedAt:    msg.CreatedAt,
	}
}
