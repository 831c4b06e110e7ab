// README: Conversation log backed by Redis lists (append + trim to a window).
package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	turnsKeyPrefix = "conversation:%s:turns"
	// TTL for idle sessions; any append refreshes it.
	sessionTTL = 30 * 24 * time.Hour
)

// Store keeps each session's turns in a Redis list, newest at the tail.
// maxTurns bounds the retained window; older turns are trimmed on append so
// stored turns are never edited in place.
type Store struct {
	redis    *redis.Client
	maxTurns int
}

func NewStore(redis *redis.Client, maxTurns int) *Store {
	return &Store{redis: redis, maxTurns: maxTurns}
}

func (s *Store) Append(ctx context.Context, sessionID string, t Turn) error {
	if sessionID == "" {
		return ErrBadRequest
	}
	raw, err := json.Marshal(t)
	if err != nil {
		return err
	}

	key := turnsKey(sessionID)
	pipe := s.redis.Pipeline()
	pipe.RPush(ctx, key, raw)
	pipe.LTrim(ctx, key, int64(-s.maxTurns), -1)
	pipe.Expire(ctx, key, sessionTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) Recent(ctx context.Context, sessionID string, n int) ([]Turn, error) {
	if sessionID == "" {
		return nil, ErrBadRequest
	}
	if n <= 0 || n > s.maxTurns {
		n = s.maxTurns
	}

	raws, err := s.redis.LRange(ctx, turnsKey(sessionID), int64(-n), -1).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	turns := make([]Turn, 0, len(raws))
	for _, raw := range raws {
		var t Turn
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			return nil, fmt.Errorf("corrupt turn in session %s: %w", sessionID, err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func turnsKey(sessionID string) string {
	return fmt.Sprintf(turnsKeyPrefix, sessionID)
}
