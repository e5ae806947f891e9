package transcript

import (
	"context"
	"time"

	"csupport-chat-be/internal/constant"
	"csupport-chat-be/internal/entity"
	"csupport-chat-be/internal/repository/specification"
	"csupport-chat-be/internal/repository/unitofwork"
	"csupport-chat-be/pkg/llm"

	"github.com/google/uuid"
)

// Meta carries the session context stored alongside user messages so the
// admin views can attribute transcripts without joining tickets.
type Meta struct {
	UserEmail    string
	CustomerName string
	Subject      string
	Category     string
}

// Recorder appends to and reads from the per-session transcript.
type Recorder struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewRecorder(uowFactory unitofwork.RepositoryFactory) *Recorder {
	return &Recorder{
		uowFactory: uowFactory,
	}
}

// Record appends one message to the session transcript.
func (r *Recorder) Record(ctx context.Context, sessionID, role, content string, meta *Meta) error {
	uow := r.uowFactory.NewUnitOfWork(ctx)

	message := &entity.ChatMessage{
		Id:        uuid.New(),
		SessionId: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if meta != nil {
		message.UserEmail = meta.UserEmail
		message.CustomerName = meta.CustomerName
		message.Subject = meta.Subject
		message.Category = meta.Category
	}

	return uow.ChatMessageRepository().Create(ctx, message)
}

// History returns the full session transcript in insertion order.
func (r *Recorder) History(ctx context.Context, sessionID string) ([]*entity.ChatMessage, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)

	return uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
}

// HistoryMessages maps the tail of the transcript into provider-agnostic
// chat messages for the conversational resolver tiers.
func (r *Recorder) HistoryMessages(ctx context.Context, sessionID string, limit int) ([]llm.Message, error) {
	history, err := r.History(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}

	messages := make([]llm.Message, 0, len(history))
	for _, msg := range history {
		role := msg.Role
		if role != constant.ChatMessageRoleUser && role != constant.ChatMessageRoleAssistant {
			role = constant.ChatMessageRoleUser
		}
		messages = append(messages, llm.Message{
			Role:    role,
			Content: msg.Content,
		})
	}
	return messages, nil
}
