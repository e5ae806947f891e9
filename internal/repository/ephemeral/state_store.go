package ephemeral

import (
	"context"
	"time"
)

// StateStore holds the transient per-session state: failure counters,
// last-activity stamps, pending auto-resolve flags, the answer cache, and
// suggestion-click counters. All mutations go through atomic store
// primitives; callers never read-modify-write.
type StateStore interface {
	// IncrementFailure bumps the per-session failure counter and returns the
	// post-increment value. The first increment arms a rolling TTL window.
	IncrementFailure(ctx context.Context, sessionID string) (int64, error)
	ResetFailure(ctx context.Context, sessionID string) error

	SetLastActivity(ctx context.Context, sessionID string, ts int64) error
	// GetLastActivity returns 0 when no stamp exists.
	GetLastActivity(ctx context.Context, sessionID string) (int64, error)

	SetPendingResolve(ctx context.Context, sessionID string, ttl time.Duration) error
	HasPendingResolve(ctx context.Context, sessionID string) (bool, error)
	DeletePendingResolve(ctx context.Context, sessionID string) error

	GetCachedAnswer(ctx context.Context, question string) (string, bool, error)
	SetCachedAnswer(ctx context.Context, question, answer string, ttl time.Duration) error

	IncrementSuggestionClick(ctx context.Context, question string) error
}
