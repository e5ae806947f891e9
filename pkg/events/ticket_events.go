package events

import (
	"time"

	"csupport-chat-be/internal/entity"
)

const (
	TicketEscalatedEvent = "TICKET_ESCALATED"
	TicketResolvedEvent  = "TICKET_RESOLVED"
)

// NewTicketEscalated builds the event emitted when a ticket is escalated
// to a human agent.
func NewTicketEscalated(ticket *entity.Ticket, reason string) Event {
	return BaseEvent{
		Type: TicketEscalatedEvent,
		Data: map[string]interface{}{
			"ticket_id":  ticket.Id.String(),
			"session_id": ticket.SessionId,
			"user_email": ticket.UserEmail,
			"subject":    ticket.Subject,
			"priority":   ticket.Priority,
			"reason":     reason,
		},
		OccurredAt: time.Now(),
	}
}

// NewTicketResolved builds the event emitted when a ticket reaches the
// resolved state.
func NewTicketResolved(ticket *entity.Ticket) Event {
	return BaseEvent{
		Type: TicketResolvedEvent,
		Data: map[string]interface{}{
			"ticket_id":  ticket.Id.String(),
			"session_id": ticket.SessionId,
			"user_email": ticket.UserEmail,
			"subject":    ticket.Subject,
		},
		OccurredAt: time.Now(),
	}
}
