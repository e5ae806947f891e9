package unitofwork

import (
	"context"

	"csupport-chat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	TicketRepository() contract.TicketRepository
	ChatMessageRepository() contract.ChatMessageRepository
	FaqRepository() contract.FaqRepository
}
