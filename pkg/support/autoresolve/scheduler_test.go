package autoresolve

import (
	"context"
	"sync"
	"testing"
	"time"

	"csupport-chat-be/internal/constant"
	"csupport-chat-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStateStore struct {
	mu           sync.Mutex
	pending      map[string]bool
	lastActivity map[string]int64
}

func newFakeStateStore() *fakeStateStore {
	return &fakeStateStore{
		pending:      map[string]bool{},
		lastActivity: map[string]int64{},
	}
}

func (s *fakeStateStore) IncrementFailure(context.Context, string) (int64, error) { return 0, nil }
func (s *fakeStateStore) ResetFailure(context.Context, string) error              { return nil }

func (s *fakeStateStore) SetLastActivity(_ context.Context, sessionID string, ts int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity[sessionID] = ts
	return nil
}

func (s *fakeStateStore) GetLastActivity(_ context.Context, sessionID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity[sessionID], nil
}

func (s *fakeStateStore) SetPendingResolve(_ context.Context, sessionID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[sessionID] = true
	return nil
}

func (s *fakeStateStore) HasPendingResolve(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[sessionID], nil
}

func (s *fakeStateStore) DeletePendingResolve(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, sessionID)
	return nil
}

func (s *fakeStateStore) GetCachedAnswer(context.Context, string) (string, bool, error) {
	return "", false, nil
}

func (s *fakeStateStore) SetCachedAnswer(context.Context, string, string, time.Duration) error {
	return nil
}

func (s *fakeStateStore) IncrementSuggestionClick(context.Context, string) error { return nil }

type recordingResolver struct {
	mu       sync.Mutex
	resolved []string
}

func (r *recordingResolver) Resolve(_ context.Context, sessionID, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolved = append(r.resolved, sessionID)
	return nil
}

func (r *recordingResolver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.resolved)
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(_ context.Context, _ string, content string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, content)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

func TestSchedulerResolvesAfterInactivity(t *testing.T) {
	state := newFakeStateStore()
	resolver := &recordingResolver{}
	notifier := &recordingNotifier{}
	scheduler := NewScheduler(state, resolver, 20*time.Millisecond, logger.NewNopLogger(), notifier)
	ctx := context.Background()

	require.NoError(t, state.SetLastActivity(ctx, "s1", time.Now().Unix()))
	scheduler.Arm(ctx, "s1", "jo@example.com")

	require.Eventually(t, func() bool { return resolver.count() == 1 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return notifier.count() == 1 }, time.Second, 5*time.Millisecond)

	notifier.mu.Lock()
	assert.Equal(t, constant.InactivityResolveMessage, notifier.messages[0])
	notifier.mu.Unlock()

	pending, err := state.HasPendingResolve(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestSchedulerAbortsWhenUserSpeaks(t *testing.T) {
	state := newFakeStateStore()
	resolver := &recordingResolver{}
	scheduler := NewScheduler(state, resolver, 50*time.Millisecond, logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, state.SetLastActivity(ctx, "s1", 1000))
	scheduler.Arm(ctx, "s1", "jo@example.com")

	// Activity lands after arming but before the timer fires.
	require.NoError(t, state.SetLastActivity(ctx, "s1", 2000))

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, 0, resolver.count(), "stale timer must self-abort")
}

func TestSchedulerAbortsWhenDisarmed(t *testing.T) {
	state := newFakeStateStore()
	resolver := &recordingResolver{}
	scheduler := NewScheduler(state, resolver, 50*time.Millisecond, logger.NewNopLogger())
	ctx := context.Background()

	scheduler.Arm(ctx, "s1", "jo@example.com")
	scheduler.Disarm(ctx, "s1")

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, 0, resolver.count())
}
