package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrDraftNotFound = errors.New("draft not found")

// State is what the store persists: the aggregate plus the current step,
// so a reload resumes exactly where the user left off.
type State struct {
	Step  int   `json:"step"`
	Draft Draft `json:"draft"`
}

type DraftStore interface {
	Save(ctx context.Context, key string, st State) error
	Load(ctx context.Context, key string) (State, error)
	Delete(ctx context.Context, key string) error
}

type RedisDraftStore struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewRedisDraftStore(rdb *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{RDB: rdb, TTL: ttl}
}

func draftKey(key string) string {
	return "onboarding:draft:" + key
}

func (s *RedisDraftStore) Save(ctx context.Context, key string, st State) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.RDB.Set(ctx, draftKey(key), b, s.TTL).Err()
}

func (s *RedisDraftStore) Load(ctx context.Context, key string) (State, error) {
	var st State
	b, err := s.RDB.Get(ctx, draftKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return st, ErrDraftNotFound
		}
		return st, err
	}
	if err := json.Unmarshal(b, &st); err != nil {
		return st, err
	}
	return st, nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, key string) error {
	return s.RDB.Del(ctx, draftKey(key)).Err()
}

// MemoryDraftStore backs tests.
type MemoryDraftStore struct {
	mu     sync.RWMutex
	drafts map[string][]byte
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[string][]byte)}
}

func (s *MemoryDraftStore) Save(_ context.Context, key string, st State) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.drafts[key] = b
	s.mu.Unlock()
	return nil
}

func (s *MemoryDraftStore) Load(_ context.Context, key string) (State, error) {
	s.mu.RLock()
	b, ok := s.drafts[key]
	s.mu.RUnlock()
	var st State
	if !ok {
		return st, ErrDraftNotFound
	}
	if err := json.Unmarshal(b, &st); err != nil {
		return st, err
	}
	return st, nil
}

func (s *MemoryDraftStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.drafts, key)
	s.mu.Unlock()
	return nil
}
