package ephemeral

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStateStore struct {
	rdb           *redis.Client
	failureWindow time.Duration
}

var _ StateStore = &RedisStateStore{}

func NewRedisStateStore(rdb *redis.Client, failureWindow time.Duration) *RedisStateStore {
	return &RedisStateStore{
		rdb:           rdb,
		failureWindow: failureWindow,
	}
}

func failureKey(sessionID string) string        { return "fail:" + sessionID }
func lastActivityKey(sessionID string) string   { return "last_user:" + sessionID }
func pendingResolveKey(sessionID string) string { return "pending_resolve:" + sessionID }
func answerCacheKey(question string) string     { return "faq:" + strings.ToLower(question) }
func clickKey(question string) string           { return "clicks:" + strings.ToLower(question) }

func (s *RedisStateStore) IncrementFailure(ctx context.Context, sessionID string) (int64, error) {
	key := failureKey(sessionID)
	val, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	// Arm the rolling window on the first failure only; later increments
	// must not extend it.
	if val == 1 {
		s.rdb.Expire(ctx, key, s.failureWindow)
	}
	return val, nil
}

func (s *RedisStateStore) ResetFailure(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, failureKey(sessionID)).Err()
}

func (s *RedisStateStore) SetLastActivity(ctx context.Context, sessionID string, ts int64) error {
	return s.rdb.Set(ctx, lastActivityKey(sessionID), strconv.FormatInt(ts, 10), 0).Err()
}

func (s *RedisStateStore) GetLastActivity(ctx context.Context, sessionID string) (int64, error) {
	val, err := s.rdb.Get(ctx, lastActivityKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	ts, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, nil
	}
	return ts, nil
}

func (s *RedisStateStore) SetPendingResolve(ctx context.Context, sessionID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, pendingResolveKey(sessionID), "1", ttl).Err()
}

func (s *RedisStateStore) HasPendingResolve(ctx context.Context, sessionID string) (bool, error) {
	_, err := s.rdb.Get(ctx, pendingResolveKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *RedisStateStore) DeletePendingResolve(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, pendingResolveKey(sessionID)).Err()
}

func (s *RedisStateStore) GetCachedAnswer(ctx context.Context, question string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, answerCacheKey(question)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStateStore) SetCachedAnswer(ctx context.Context, question, answer string, ttl time.Duration) error {
	return s.rdb.SetEx(ctx, answerCacheKey(question), answer, ttl).Err()
}

func (s *RedisStateStore) IncrementSuggestionClick(ctx context.Context, question string) error {
	return s.rdb.Incr(ctx, clickKey(question)).Err()
}
