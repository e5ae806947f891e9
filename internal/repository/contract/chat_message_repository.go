package contract

import (
	"context"

	"csupport-chat-be/internal/entity"
	"csupport-chat-be/internal/repository/specification"
)

// ChatMessageRepository is the transcript store. Messages are append-only;
// there is intentionally no Update or Delete.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
