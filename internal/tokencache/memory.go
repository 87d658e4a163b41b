package tokencache

import (
	"context"
	"sync"
	"time"
)

// Memory stores tokens in process memory.
type Memory struct {
	mu      sync.RWMutex
	data    map[string]Entry
	nowFunc func() time.Time
}

var _ Cache = (*Memory)(nil)

// MemoryOption configures a Memory cache.
type MemoryOption func(*Memory)

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) MemoryOption {
	return func(m *Memory) {
		m.nowFunc = f
	}
}

// NewMemory creates an empty in-process token cache.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		data:    make(map[string]Entry),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the entry for key, or ErrNotFound when absent or expired.
func (m *Memory) Get(_ context.Context, key string) (Entry, error) {
	m.mu.RLock()
	e, ok := m.data[key]
	m.mu.RUnlock()

	if !ok || !m.nowFunc().Before(e.ExpiresAt) {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

// Put stores e under key. Entries that are already expired are dropped.
func (m *Memory) Put(_ context.Context, key string, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.nowFunc().Before(e.ExpiresAt) {
		delete(m.data, key)
		return nil
	}
	m.data[key] = e
	return nil
}

// Ping always succeeds.
func (*Memory) Ping(context.Context) error {
	return nil
}
