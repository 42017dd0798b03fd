package calendar

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StateTTL bounds how long a consent link stays valid.
const StateTTL = 10 * time.Minute

// StateStore binds OAuth state values to the user who requested them.
// Take consumes the state; a second Take returns ErrStateNotFound.
type StateStore interface {
	Put(ctx context.Context, state, userID string, ttl time.Duration) error
	Take(ctx context.Context, state string) (string, error)
}

const statePrefix = "studyplan:oauth_state:"

// RedisStateStore keeps states in Redis so any server instance can complete
// the callback.
type RedisStateStore struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewRedisStateStore connects to addr and pings it.
func NewRedisStateStore(ctx context.Context, addr, password string, db int, logger *zap.Logger) (*RedisStateStore, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	logger.Info("redis state store connected", zap.String("addr", addr))
	return &RedisStateStore{rdb: rdb, logger: logger}, nil
}

func (s *RedisStateStore) Put(ctx context.Context, state, userID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, statePrefix+state, userID, ttl).Err()
}

func (s *RedisStateStore) Take(ctx context.Context, state string) (string, error) {
	userID, err := s.rdb.GetDel(ctx, statePrefix+state).Result()
	if errors.Is(err, goredis.Nil) {
		return "", ErrStateNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading oauth state: %w", err)
	}
	return userID, nil
}

func (s *RedisStateStore) Close() error {
	return s.rdb.Close()
}

type memoryEntry struct {
	userID  string
	expires time.Time
}

// MemoryStateStore is the single-process fallback when no Redis is configured.
type MemoryStateStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStateStore) Put(_ context.Context, state, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, k)
		}
	}
	s.entries[state] = memoryEntry{userID: userID, expires: now.Add(ttl)}
	return nil
}

func (s *MemoryStateStore) Take(_ context.Context, state string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[state]
	if !ok {
		return "", ErrStateNotFound
	}
	delete(s.entries, state)
	if s.now().After(e.expires) {
		return "", ErrStateNotFound
	}
	return e.userID, nil
}
