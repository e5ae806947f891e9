package contract

import (
	"context"

	"csupport-chat-be/internal/entity"
	"csupport-chat-be/internal/repository/specification"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	Update(ctx context.Context, ticket *entity.Ticket) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Ticket, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Ticket, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
