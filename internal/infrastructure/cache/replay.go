package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoEntry means nothing is stored under the key.
var ErrNoEntry = errors.New("replay entry not found")

// Entry is one recorded response, or an in-progress marker while the handler runs.
type Entry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReplayStore keeps HTTP responses for idempotent replays. It never holds entity state.
type ReplayStore struct {
	rdb    *redis.Client
	prefix string
}

func NewReplayStore(rdb *redis.Client, prefix string) *ReplayStore {
	return &ReplayStore{rdb: rdb, prefix: prefix}
}

func (s *ReplayStore) key(k string) string { return s.prefix + k }

// Reserve stores e only if the key is free. false means another request owns it.
func (s *ReplayStore) Reserve(ctx context.Context, key string, e Entry, lockTTL time.Duration) (bool, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return false, err
	}
	return s.rdb.SetNX(ctx, s.key(key), payload, lockTTL).Result()
}

func (s *ReplayStore) Load(ctx context.Context, key string) (Entry, error) {
	var e Entry
	v, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return e, ErrNoEntry
	}
	if err != nil {
		return e, err
	}
	err = json.Unmarshal(v, &e)
	return e, err
}

func (s *ReplayStore) Save(ctx context.Context, key string, e Entry, ttl time.Duration) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(key), payload, ttl).Err()
}

// Release drops the key so the same request id may be retried.
func (s *ReplayStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.key(key)).Err()
}
