package ticket

import (
	"context"
	"fmt"
	"strings"
	"time"

	"csupport-chat-be/internal/constant"
	"csupport-chat-be/internal/entity"
	"csupport-chat-be/internal/pkg/logger"
	"csupport-chat-be/internal/repository/specification"
	"csupport-chat-be/internal/repository/unitofwork"
	"csupport-chat-be/pkg/events"

	"github.com/google/uuid"
)

// EventPublisher receives lifecycle events, best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// EscalationMailer notifies the human support queue about escalations.
type EscalationMailer interface {
	SendEscalationNotice(ticket *entity.Ticket, reason string) error
}

// HistoryReader supplies the transcript for resolution summaries.
type HistoryReader interface {
	History(ctx context.Context, sessionID string) ([]*entity.ChatMessage, error)
}

// Manager enforces the ticket state machine. The description field is an
// append-only audit log; writes only ever concatenate.
type Manager struct {
	uowFactory unitofwork.RepositoryFactory
	history    HistoryReader
	publisher  EventPublisher   // optional
	mailer     EscalationMailer // optional
	logger     logger.ILogger
}

func NewManager(
	uowFactory unitofwork.RepositoryFactory,
	history HistoryReader,
	publisher EventPublisher,
	mailer EscalationMailer,
	log logger.ILogger,
) *Manager {
	return &Manager{
		uowFactory: uowFactory,
		history:    history,
		publisher:  publisher,
		mailer:     mailer,
		logger:     log,
	}
}

// OpenParams describes the session context for EnsureOpen.
type OpenParams struct {
	SessionID    string
	UserEmail    string
	CustomerName string
	Subject      string
	Category     string
	FirstMessage string
}

// EscalateParams describes an escalation request.
type EscalateParams struct {
	SessionID    string
	UserEmail    string
	CustomerName string
	Subject      string
	Category     string
	Reason       string
}

// EnsureOpen creates an open ticket for the session unless one is already
// live. The check-then-create is not transactional; two racing first
// messages for a fresh session can create two open tickets (known and
// accepted, the admin tooling tolerates duplicates).
func (m *Manager) EnsureOpen(ctx context.Context, p OpenParams) error {
	if p.SessionID == "" {
		return nil
	}

	uow := m.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.TicketRepository().FindOne(ctx,
		specification.BySessionID{SessionID: p.SessionID},
		specification.ByStatusIn{Statuses: constant.LiveTicketStatuses},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	description := strings.TrimSpace(p.FirstMessage)
	if description == "" {
		description = constant.DefaultTicketFirstEntry
	}

	return uow.TicketRepository().Create(ctx, &entity.Ticket{
		Id:           uuid.New(),
		UserEmail:    p.UserEmail,
		CustomerName: p.CustomerName,
		Subject:      m.defaultSubject(p.Subject, p.CustomerName, p.SessionID, "Support request"),
		Category:     p.Category,
		Description:  description,
		Status:       constant.TicketStatusOpen,
		Priority:     constant.TicketPriorityMedium,
		SessionId:    p.SessionID,
		CreatedAt:    time.Now(),
	})
}

// Escalate moves the session's most recent live ticket to escalated,
// appending the reason to its audit log. Without a live ticket a new
// high-priority escalated ticket is created directly.
func (m *Manager) Escalate(ctx context.Context, p EscalateParams) error {
	if p.SessionID == "" {
		return nil
	}

	reason := strings.TrimSpace(p.Reason)
	if reason == "" {
		reason = "Manual escalation"
	}

	uow := m.uowFactory.NewUnitOfWork(ctx)
	ticket, err := uow.TicketRepository().FindOne(ctx,
		specification.BySessionID{SessionID: p.SessionID},
		specification.ByUserEmail{Email: p.UserEmail},
		specification.ByStatusIn{Statuses: constant.LiveTicketStatuses},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return err
	}

	if ticket != nil {
		now := time.Now()
		ticket.Status = constant.TicketStatusEscalated
		ticket.Priority = constant.TicketPriorityHigh
		ticket.Description += constant.EscalationMarkerPrefix + reason
		ticket.UpdatedAt = &now
		if err := uow.TicketRepository().Update(ctx, ticket); err != nil {
			return err
		}
		m.notifyEscalated(ctx, ticket, reason)
		return nil
	}

	ticket = &entity.Ticket{
		Id:           uuid.New(),
		UserEmail:    p.UserEmail,
		CustomerName: p.CustomerName,
		Subject:      m.defaultSubject(p.Subject, p.CustomerName, p.SessionID, "Escalation"),
		Category:     p.Category,
		Description:  reason,
		Status:       constant.TicketStatusEscalated,
		Priority:     constant.TicketPriorityHigh,
		SessionId:    p.SessionID,
		CreatedAt:    time.Now(),
	}
	if err := uow.TicketRepository().Create(ctx, ticket); err != nil {
		return err
	}
	m.notifyEscalated(ctx, ticket, reason)
	return nil
}

// Resolve marks the session's most recent open or escalated ticket as
// resolved and appends the resolution summary. Resolved and closed tickets
// are excluded from the predicate, so a second Resolve is a no-op.
func (m *Manager) Resolve(ctx context.Context, sessionID, userEmail string) error {
	if sessionID == "" {
		return nil
	}

	uow := m.uowFactory.NewUnitOfWork(ctx)
	ticket, err := uow.TicketRepository().FindOne(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.ByUserEmail{Email: userEmail},
		specification.ByStatusIn{Statuses: constant.ResolvableTicketStatuses},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return err
	}
	if ticket == nil {
		return nil
	}

	history, err := m.history.History(ctx, sessionID)
	if err != nil {
		history = nil
	}

	now := time.Now()
	ticket.Status = constant.TicketStatusResolved
	ticket.Description += constant.ResolutionMarkerPrefix + BuildResolutionSummary(history, now)
	ticket.UpdatedAt = &now
	if err := uow.TicketRepository().Update(ctx, ticket); err != nil {
		return err
	}

	if m.publisher != nil {
		if err := m.publisher.Publish(ctx, events.NewTicketResolved(ticket)); err != nil {
			m.logger.Warn("TicketLifecycle", "Failed to publish resolve event", map[string]interface{}{
				"ticket_id": ticket.Id,
				"error":     err.Error(),
			})
		}
	}
	return nil
}

func (m *Manager) notifyEscalated(ctx context.Context, ticket *entity.Ticket, reason string) {
	if m.publisher != nil {
		if err := m.publisher.Publish(ctx, events.NewTicketEscalated(ticket, reason)); err != nil {
			m.logger.Warn("TicketLifecycle", "Failed to publish escalation event", map[string]interface{}{
				"ticket_id": ticket.Id,
				"error":     err.Error(),
			})
		}
	}
	if m.mailer != nil {
		if err := m.mailer.SendEscalationNotice(ticket, reason); err != nil {
			m.logger.Warn("TicketLifecycle", "Failed to send escalation email", map[string]interface{}{
				"ticket_id": ticket.Id,
				"error":     err.Error(),
			})
		}
	}
}

func (m *Manager) defaultSubject(subject, customerName, sessionID, prefix string) string {
	if subject != "" {
		return subject
	}
	if customerName != "" {
		return fmt.Sprintf("%s from %s", prefix, customerName)
	}
	return fmt.Sprintf("%s %s", prefix, sessionID)
}
