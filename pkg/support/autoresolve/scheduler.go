package autoresolve

import (
	"context"
	"time"

	"csupport-chat-be/internal/constant"
	"csupport-chat-be/internal/pkg/logger"
	"csupport-chat-be/internal/repository/ephemeral"
)

// TicketResolver closes out the session's ticket when the timer fires.
type TicketResolver interface {
	Resolve(ctx context.Context, sessionID, userEmail string) error
}

// Notifier delivers the inactivity message back to the session. The
// transcript recorder and the websocket hub both satisfy it.
type Notifier interface {
	Notify(ctx context.Context, sessionID, content string) error
}

// Scheduler arms a per-session countdown after the assistant asks for
// resolution confirmation. Any user activity before the deadline cancels
// the pending resolve; silence resolves the ticket automatically.
type Scheduler struct {
	state     ephemeral.StateStore
	resolver  TicketResolver
	notifiers []Notifier
	delay     time.Duration
	logger    logger.ILogger
}

func NewScheduler(
	state ephemeral.StateStore,
	resolver TicketResolver,
	delay time.Duration,
	log logger.ILogger,
	notifiers ...Notifier,
) *Scheduler {
	return &Scheduler{
		state:     state,
		resolver:  resolver,
		notifiers: notifiers,
		delay:     delay,
		logger:    log,
	}
}

// Arm schedules an auto-resolve check for the session. The pending flag
// carries a small TTL margin so Redis expiry never races the timer.
func (s *Scheduler) Arm(ctx context.Context, sessionID, userEmail string) {
	if err := s.state.SetPendingResolve(ctx, sessionID, s.delay+5*time.Second); err != nil {
		s.logger.Warn("AutoResolve", "Failed to set pending resolve flag", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return
	}

	armedAt, err := s.state.GetLastActivity(ctx, sessionID)
	if err != nil {
		s.logger.Warn("AutoResolve", "Failed to snapshot last activity", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	go s.await(sessionID, userEmail, armedAt)
}

// Disarm cancels a pending auto-resolve, typically because the user spoke.
func (s *Scheduler) Disarm(ctx context.Context, sessionID string) {
	if err := s.state.DeletePendingResolve(ctx, sessionID); err != nil {
		s.logger.Warn("AutoResolve", "Failed to clear pending resolve flag", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
}

func (s *Scheduler) await(sessionID, userEmail string, armedAt int64) {
	time.Sleep(s.delay)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pending, err := s.state.HasPendingResolve(ctx, sessionID)
	if err != nil || !pending {
		return
	}

	// A message that arrived without clearing the flag still counts as
	// activity, compare against the snapshot taken when the timer armed.
	lastActivity, err := s.state.GetLastActivity(ctx, sessionID)
	if err == nil && lastActivity > armedAt {
		s.Disarm(ctx, sessionID)
		return
	}

	s.Disarm(ctx, sessionID)

	if err := s.resolver.Resolve(ctx, sessionID, userEmail); err != nil {
		s.logger.Error("AutoResolve", "Failed to auto-resolve ticket", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return
	}

	for _, n := range s.notifiers {
		if err := n.Notify(ctx, sessionID, constant.InactivityResolveMessage); err != nil {
			s.logger.Warn("AutoResolve", "Failed to deliver inactivity notice", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
		}
	}

	s.logger.Info("AutoResolve", "Session auto-resolved after inactivity", map[string]interface{}{
		"session_id": sessionID,
	})
}
