package contract

import (
	"context"

	"csupport-chat-be/internal/entity"
	"csupport-chat-be/internal/repository/specification"
)

type FaqRepository interface {
	Create(ctx context.Context, faq *entity.Faq) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Faq, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Faq, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
