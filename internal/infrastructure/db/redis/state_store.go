package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const stateTTL = 10 * time.Minute

// StateStore holds one-shot OAuth state tokens in Redis.
// Key format: oauth_state:<state>
type StateStore struct {
	client *redis.Client
}

// NewStateStore creates a StateStore wrapping the given Redis client.
func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client}
}

// Issue records a freshly generated state (expires after stateTTL).
func (s *StateStore) Issue(ctx context.Context, state string) error {
	return s.client.Set(ctx, s.key(state), "1", stateTTL).Err()
}

// Consume atomically removes the state and reports whether it existed. A
// second consume of the same state returns false, which defeats replays.
func (s *StateStore) Consume(ctx context.Context, state string) (bool, error) {
	err := s.client.GetDel(ctx, s.key(state)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("state consume: %w", err)
	}
	return true, nil
}

func (s *StateStore) key(state string) string {
	return "oauth_state:" + state
}
