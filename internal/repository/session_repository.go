package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

func sessionNotFound(id string) error {
	return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("session %s not found", id))
}

type memoryEntry struct {
	payload []byte
	expires time.Time
}

// MemorySessionRepository keeps sessions in process. Values are stored as JSON so callers never share pointers.
type MemorySessionRepository struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewMemorySessionRepository constructs an in-memory store. A zero ttl keeps sessions forever.
func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		items: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get loads a session, returning NOT_FOUND when it is missing or expired.
func (r *MemorySessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	r.mu.RLock()
	entry, ok := r.items[id]
	r.mu.RUnlock()
	if !ok {
		return nil, sessionNotFound(id)
	}
	if !entry.expires.IsZero() && r.now().After(entry.expires) {
		r.mu.Lock()
		delete(r.items, id)
		r.mu.Unlock()
		return nil, sessionNotFound(id)
	}

	var session models.Session
	if err := json.Unmarshal(entry.payload, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &session, nil
}

// Save stores the session and extends its expiry.
func (r *MemorySessionRepository) Save(ctx context.Context, session *models.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}
	entry := memoryEntry{payload: payload}
	if r.ttl > 0 {
		entry.expires = r.now().Add(r.ttl)
	}
	r.mu.Lock()
	r.items[session.ID] = entry
	r.mu.Unlock()
	return nil
}

// Delete removes a session. Deleting an unknown session is not an error.
func (r *MemorySessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()
	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (r *MemorySessionRepository) Sweep() int {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, entry := range r.items {
		if !entry.expires.IsZero() && now.After(entry.expires) {
			delete(r.items, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored sessions, including expired ones not yet swept.
func (r *MemorySessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// RedisSessionRepository stores sessions as JSON values with a sliding TTL.
type RedisSessionRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSessionRepository constructs a Redis-backed session store.
func NewRedisSessionRepository(client *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *RedisSessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSessionRepository{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

func (r *RedisSessionRepository) key(id string) string {
	return r.prefix + id
}

// Get retrieves and unmarshals the stored session.
func (r *RedisSessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, sessionNotFound(id)
		}
		return nil, fmt.Errorf("redis get %s: %w", r.key(id), err)
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		r.logger.Warn("dropping undecodable session", zap.String("session_id", id), zap.Error(err))
		_ = r.client.Del(ctx, r.key(id)).Err()
		return nil, sessionNotFound(id)
	}
	return &session, nil
}

// Save marshals the session and stores it with the configured TTL.
func (r *RedisSessionRepository) Save(ctx context.Context, session *models.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", session.ID, err)
	}
	if err := r.client.Set(ctx, r.key(session.ID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key(session.ID), err)
	}
	return nil
}

// Delete removes the stored session.
func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", r.key(id), err)
	}
	return nil
}

// Ping checks connectivity for readiness probes.
func (r *RedisSessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
