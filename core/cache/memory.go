package cache

import (
	"context"
	"sync"
	"time"

	"beacon-attendance/core/constants"
)

// MemoryCache is an in-process Cache used when redis is not configured
// and in tests.
type MemoryCache struct {
	mu       sync.Mutex
	now      func() time.Time
	tokens   map[string]time.Time
	attempts map[string]attempt
}

type attempt struct {
	count     int64
	expiresAt time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		now:      time.Now,
		tokens:   make(map[string]time.Time),
		attempts: make(map[string]attempt),
	}
}

func (m *MemoryCache) AddToTokenBlacklist(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = m.now().Add(ttl)
	return nil
}

func (m *MemoryCache) IsTokenBlacklisted(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.tokens[token]
	if !ok {
		return false, nil
	}
	if !m.now().Before(exp) {
		delete(m.tokens, token)
		return false, nil
	}
	return true, nil
}

func (m *MemoryCache) IncrementLoginAttempt(_ context.Context, identifier string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	a, ok := m.attempts[identifier]
	if !ok || !now.Before(a.expiresAt) {
		a = attempt{expiresAt: now.Add(constants.BlockDuration)}
	}
	a.count++
	m.attempts[identifier] = a
	return a.count, nil
}

func (m *MemoryCache) IsLoginBlocked(_ context.Context, identifier string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.attempts[identifier]
	if !ok || !m.now().Before(a.expiresAt) {
		return false, nil
	}
	return a.count >= constants.MaxLoginAttempts, nil
}

func (m *MemoryCache) ResetLoginAttempts(_ context.Context, identifier string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.attempts, identifier)
	return nil
}

func (m *MemoryCache) Close() error { return nil }
