// Package session keeps the draft applicant profile between visits,
// keyed by the session cookie.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mesto-decin/parking-permits/shared/domain"
)

// ProfileStore is safe for concurrent use. Load returns (nil, nil) for
// an unknown or expired session.
type ProfileStore interface {
	Save(ctx context.Context, sessionID string, profile domain.UserProfile) error
	Load(ctx context.Context, sessionID string) (*domain.UserProfile, error)
	Clear(ctx context.Context, sessionID string) error
}

// ------------------------------------------------------------------------------

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func profileKey(sessionID string) string {
	return fmt.Sprintf("permits:profile:%s", sessionID)
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, profile domain.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return s.client.Set(ctx, profileKey(sessionID), raw, s.ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*domain.UserProfile, error) {
	raw, err := s.client.Get(ctx, profileKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var profile domain.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &profile, nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, profileKey(sessionID)).Err()
}

// ------------------------------------------------------------------------------

type memoryEntry struct {
	profile   domain.UserProfile
	expiresAt time.Time
}

type MemoryStore struct {
	mu       sync.Mutex
	profiles map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, profile domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[sessionID] = memoryEntry{profile: profile, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, sessionID string) (*domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.profiles[sessionID]
	if !ok {
		return nil, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.profiles, sessionID)
		return nil, nil
	}
	profile := entry.profile
	return &profile, nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.profiles, sessionID)
	return nil
}
