package ticket

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"csupport-chat-be/internal/constant"
	"csupport-chat-be/internal/entity"
	"csupport-chat-be/internal/pkg/logger"
	"csupport-chat-be/internal/repository/contract"
	"csupport-chat-be/internal/repository/specification"
	"csupport-chat-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTicketRepo struct {
	tickets []*entity.Ticket
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *entity.Ticket) error {
	r.tickets = append(r.tickets, ticket)
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *entity.Ticket) error {
	for i, existing := range r.tickets {
		if existing.Id == ticket.Id {
			r.tickets[i] = ticket
			return nil
		}
	}
	return nil
}

func (r *fakeTicketRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Ticket, error) {
	matches, err := r.FindAll(ctx, specs...)
	if err != nil || len(matches) == 0 {
		return nil, err
	}
	return matches[0], nil
}

func (r *fakeTicketRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Ticket, error) {
	matches := make([]*entity.Ticket, 0, len(r.tickets))
	for _, ticket := range r.tickets {
		if ticketMatches(ticket, specs) {
			matches = append(matches, ticket)
		}
	}
	for _, spec := range specs {
		if order, ok := spec.(specification.OrderBy); ok && order.Field == "created_at" && order.Desc {
			sort.Slice(matches, func(i, j int) bool {
				return matches[i].CreatedAt.After(matches[j].CreatedAt)
			})
		}
	}
	return matches, nil
}

func (r *fakeTicketRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	matches, err := r.FindAll(ctx, specs...)
	return int64(len(matches)), err
}

func ticketMatches(ticket *entity.Ticket, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.BySessionID:
			if ticket.SessionId != s.SessionID {
				return false
			}
		case specification.ByUserEmail:
			if ticket.UserEmail != s.Email {
				return false
			}
		case specification.ByStatusIn:
			found := false
			for _, status := range s.Statuses {
				if ticket.Status == status {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

type fakeUow struct {
	ticketRepo *fakeTicketRepo
}

func (u *fakeUow) Begin(context.Context) error { return nil }
func (u *fakeUow) Commit() error               { return nil }
func (u *fakeUow) Rollback() error             { return nil }

func (u *fakeUow) TicketRepository() contract.TicketRepository           { return u.ticketRepo }
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository { return nil }
func (u *fakeUow) FaqRepository() contract.FaqRepository                 { return nil }

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

type stubHistory struct {
	messages []*entity.ChatMessage
}

func (h *stubHistory) History(context.Context, string) ([]*entity.ChatMessage, error) {
	return h.messages, nil
}

func newTestManager(repo *fakeTicketRepo, history *stubHistory) *Manager {
	if history == nil {
		history = &stubHistory{}
	}
	return NewManager(&fakeUowFactory{uow: &fakeUow{ticketRepo: repo}}, history, nil, nil, logger.NewNopLogger())
}

func TestEnsureOpenCreatesOnce(t *testing.T) {
	repo := &fakeTicketRepo{}
	manager := newTestManager(repo, nil)
	ctx := context.Background()

	params := OpenParams{
		SessionID:    "s1",
		UserEmail:    "jo@example.com",
		CustomerName: "Jo",
		Category:     "Billing",
		FirstMessage: "I was double charged",
	}

	require.NoError(t, manager.EnsureOpen(ctx, params))
	require.Len(t, repo.tickets, 1)
	assert.Equal(t, constant.TicketStatusOpen, repo.tickets[0].Status)
	assert.Equal(t, constant.TicketPriorityMedium, repo.tickets[0].Priority)
	assert.Equal(t, "I was double charged", repo.tickets[0].Description)

	// A live ticket already exists, so nothing new is created.
	require.NoError(t, manager.EnsureOpen(ctx, params))
	assert.Len(t, repo.tickets, 1)
}

func TestEnsureOpenUsesPlaceholderDescription(t *testing.T) {
	repo := &fakeTicketRepo{}
	manager := newTestManager(repo, nil)

	require.NoError(t, manager.EnsureOpen(context.Background(), OpenParams{
		SessionID: "s1",
		UserEmail: "jo@example.com",
	}))
	require.Len(t, repo.tickets, 1)
	assert.Equal(t, constant.DefaultTicketFirstEntry, repo.tickets[0].Description)
}

func TestEscalateUpdatesLiveTicket(t *testing.T) {
	repo := &fakeTicketRepo{tickets: []*entity.Ticket{{
		SessionId:   "s1",
		UserEmail:   "jo@example.com",
		Status:      constant.TicketStatusOpen,
		Priority:    constant.TicketPriorityMedium,
		Description: "original issue",
		CreatedAt:   time.Now(),
	}}}
	manager := newTestManager(repo, nil)

	require.NoError(t, manager.Escalate(context.Background(), EscalateParams{
		SessionID: "s1",
		UserEmail: "jo@example.com",
		Reason:    "User requested a human agent",
	}))

	require.Len(t, repo.tickets, 1)
	got := repo.tickets[0]
	assert.Equal(t, constant.TicketStatusEscalated, got.Status)
	assert.Equal(t, constant.TicketPriorityHigh, got.Priority)
	assert.True(t, strings.HasPrefix(got.Description, "original issue"), "description is append-only")
	assert.Contains(t, got.Description, constant.EscalationMarkerPrefix+"User requested a human agent")
	assert.NotNil(t, got.UpdatedAt)
}

func TestEscalateCreatesWhenNoLiveTicket(t *testing.T) {
	repo := &fakeTicketRepo{}
	manager := newTestManager(repo, nil)

	require.NoError(t, manager.Escalate(context.Background(), EscalateParams{
		SessionID: "s1",
		UserEmail: "jo@example.com",
		Reason:    "User asked: how do I fly?",
	}))

	require.Len(t, repo.tickets, 1)
	assert.Equal(t, constant.TicketStatusEscalated, repo.tickets[0].Status)
	assert.Equal(t, constant.TicketPriorityHigh, repo.tickets[0].Priority)
	assert.Equal(t, "User asked: how do I fly?", repo.tickets[0].Description)
}

func TestResolveIsIdempotent(t *testing.T) {
	repo := &fakeTicketRepo{tickets: []*entity.Ticket{{
		SessionId:   "s1",
		UserEmail:   "jo@example.com",
		Status:      constant.TicketStatusOpen,
		Description: "original issue",
		CreatedAt:   time.Now(),
	}}}
	history := &stubHistory{messages: []*entity.ChatMessage{
		{Role: constant.ChatMessageRoleUser, Content: "I was double charged"},
		{Role: constant.ChatMessageRoleAssistant, Content: "Here is how to request a refund."},
	}}
	manager := newTestManager(repo, history)
	ctx := context.Background()

	require.NoError(t, manager.Resolve(ctx, "s1", "jo@example.com"))
	got := repo.tickets[0]
	assert.Equal(t, constant.TicketStatusResolved, got.Status)
	assert.Equal(t, 1, strings.Count(got.Description, constant.ResolutionMarkerPrefix))

	// Second resolve finds no open/escalated ticket and is a no-op.
	require.NoError(t, manager.Resolve(ctx, "s1", "jo@example.com"))
	assert.Equal(t, constant.TicketStatusResolved, repo.tickets[0].Status)
	assert.Equal(t, 1, strings.Count(repo.tickets[0].Description, constant.ResolutionMarkerPrefix))
}

func TestResolveIgnoresClosedTickets(t *testing.T) {
	repo := &fakeTicketRepo{tickets: []*entity.Ticket{{
		SessionId:   "s1",
		UserEmail:   "jo@example.com",
		Status:      constant.TicketStatusClosed,
		Description: "done long ago",
		CreatedAt:   time.Now(),
	}}}
	manager := newTestManager(repo, nil)

	require.NoError(t, manager.Resolve(context.Background(), "s1", "jo@example.com"))
	assert.Equal(t, constant.TicketStatusClosed, repo.tickets[0].Status)
	assert.NotContains(t, repo.tickets[0].Description, constant.ResolutionMarkerPrefix)
}
