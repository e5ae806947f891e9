package constant

const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusEscalated  = "escalated"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"

	TicketPriorityLow    = "low"
	TicketPriorityMedium = "medium"
	TicketPriorityHigh   = "high"
)

// LiveTicketStatuses are the non-terminal states. At most one ticket per
// session should be in one of these at a time.
var LiveTicketStatuses = []string{
	TicketStatusOpen,
	TicketStatusInProgress,
	TicketStatusEscalated,
}

// ResolvableTicketStatuses are the states Resolve is allowed to act on.
// Excluding resolved/closed makes Resolve idempotent.
var ResolvableTicketStatuses = []string{
	TicketStatusOpen,
	TicketStatusEscalated,
}
