package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/humoyunmirzo-code/tgbot/internal/domain"
)

const (
	sessionPrefix = "intake:session:"
	scanBatch     = 100
)

// SessionRepo implements repository.SessionRepository on top of Redis.
// Sessions are stored as JSON with a TTL, so abandoned conversations expire on their own.
type SessionRepo struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewSessionRepo creates a Redis session store. ttl <= 0 stores sessions without expiry.
func NewSessionRepo(rdb *goredis.Client, ttl time.Duration) *SessionRepo {
	return &SessionRepo{rdb: rdb, ttl: ttl}
}

func sessionKey(userID int64) string {
	return sessionPrefix + strconv.FormatInt(userID, 10)
}

// Get loads the user's session
func (r *SessionRepo) Get(ctx context.Context, userID int64) (*domain.Session, error) {
	data, err := r.rdb.Get(ctx, sessionKey(userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

// Save writes the session and refreshes its TTL
func (r *SessionRepo) Save(ctx context.Context, s *domain.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := r.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := r.rdb.Set(ctx, sessionKey(s.UserID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete removes the user's session
func (r *SessionRepo) Delete(ctx context.Context, userID int64) error {
	if err := r.rdb.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteStale removes sessions not updated since before.
// Key TTL normally handles expiry; this covers sessions saved without one.
// A session saved again while it is being checked is kept.
func (r *SessionRepo) DeleteStale(ctx context.Context, before time.Time) (int, error) {
	removed := 0
	iter := r.rdb.Scan(ctx, 0, sessionPrefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		deleted, err := r.deleteIfStale(ctx, iter.Val(), before)
		if err != nil {
			return removed, err
		}
		if deleted {
			removed++
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("failed to scan sessions: %w", err)
	}
	return removed, nil
}

// deleteIfStale deletes key under WATCH, so a concurrent Save aborts the delete
func (r *SessionRepo) deleteIfStale(ctx context.Context, key string, before time.Time) (bool, error) {
	deleted := false
	err := r.rdb.Watch(ctx, func(tx *goredis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, goredis.Nil) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load session %s: %w", key, err)
		}

		var s domain.Session
		if err := json.Unmarshal(data, &s); err == nil && !s.UpdatedAt.Before(before) {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Del(ctx, key)
			return nil
		})
		if err != nil {
			return err
		}
		deleted = true
		return nil
	}, key)

	if errors.Is(err, goredis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete session %s: %w", key, err)
	}
	return deleted, nil
}

// Count returns the number of stored sessions
func (r *SessionRepo) Count(ctx context.Context) (int, error) {
	count := 0
	iter := r.rdb.Scan(ctx, 0, sessionPrefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan sessions: %w", err)
	}
	return count, nil
}
