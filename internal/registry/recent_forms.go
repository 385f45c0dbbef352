package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RecentForm is the lightweight record kept for every form a builder session
// has saved; enough for a "my forms" listing without loading the documents.
type RecentForm struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Store is the recently-created-forms list. Append is called once per
// successful save; List returns newest first.
type Store interface {
	Append(ctx context.Context, form RecentForm) error
	List(ctx context.Context, limit int64) ([]RecentForm, error)
	Remove(ctx context.Context, formID uint) error
}

// ===== REDIS IMPLEMENTATION =====

const defaultKey = "recent_forms"

type redisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore keeps the recent-forms list in a Redis list, newest at the
// head.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client, key: defaultKey}
}

func (s *redisStore) Append(ctx context.Context, form RecentForm) error {
	data, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("failed to marshal recent form: %w", err)
	}
	if err := s.client.LPush(ctx, s.key, data).Err(); err != nil {
		return fmt.Errorf("failed to append recent form: %w", err)
	}
	return nil
}

func (s *redisStore) List(ctx context.Context, limit int64) ([]RecentForm, error) {
	if limit <= 0 {
		limit = -1
	} else {
		limit--
	}

	entries, err := s.client.LRange(ctx, s.key, 0, limit).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent forms: %w", err)
	}

	forms := make([]RecentForm, 0, len(entries))
	for _, entry := range entries {
		var form RecentForm
		if err := json.Unmarshal([]byte(entry), &form); err != nil {
			return nil, fmt.Errorf("corrupt recent form entry: %w", err)
		}
		forms = append(forms, form)
	}
	return forms, nil
}

func (s *redisStore) Remove(ctx context.Context, formID uint) error {
	forms, err := s.List(ctx, 0)
	if err != nil {
		return err
	}
	for _, form := range forms {
		if form.ID != formID {
			continue
		}
		data, err := json.Marshal(form)
		if err != nil {
			return err
		}
		return s.client.LRem(ctx, s.key, 1, data).Err()
	}
	return nil
}

// ===== IN-MEMORY IMPLEMENTATION =====

type memoryStore struct {
	mu    sync.Mutex
	forms []RecentForm
}

// NewMemoryStore keeps the list in process memory; used by tests and
// single-session builder setups without Redis.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) Append(_ context.Context, form RecentForm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms = append([]RecentForm{form}, s.forms...)
	return nil
}

func (s *memoryStore) List(_ context.Context, limit int64) ([]RecentForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.forms)
	if limit > 0 && int(limit) < n {
		n = int(limit)
	}
	out := make([]RecentForm, n)
	copy(out, s.forms[:n])
	return out, nil
}

func (s *memoryStore) Remove(_ context.Context, formID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, form := range s.forms {
		if form.ID == formID {
			s.forms = append(s.forms[:i], s.forms[i+1:]...)
			return nil
		}
	}
	return nil
}
