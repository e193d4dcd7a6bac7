package cache

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"
)

// Memory is an in-process Cache and Locker for tests and single-node runs.
type Memory struct {
	mu      sync.Mutex
	items   map[string]memoryItem
	locks   map[string]struct{}
	nowFunc func() time.Time
}

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

func NewMemory() *Memory {
	return &Memory{
		items:   make(map[string]memoryItem),
		locks:   make(map[string]struct{}),
		nowFunc: time.Now,
	}
}

func (m *Memory) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	item, ok := m.items[key]
	if ok && !item.expiresAt.IsZero() && m.nowFunc().After(item.expiresAt) {
		delete(m.items, key)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(item.data, dest)
}

func (m *Memory) SetJSON(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	item := memoryItem{data: data}
	if ttl > 0 {
		item.expiresAt = m.nowFunc().Add(ttl)
	}
	m.mu.Lock()
	m.items[key] = item
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.items, k)
	}
	m.mu.Unlock()
	return nil
}

func (m *Memory) DeletePattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.items {
		if ok, _ := path.Match(pattern, k); ok {
			delete(m.items, k)
		}
	}
	return nil
}

// Has reports whether key is cached.
func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[key]
	return ok
}

func (m *Memory) Obtain(_ context.Context, key string, _ time.Duration) (Lock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, held := m.locks[key]; held {
		return nil, ErrLockNotObtained
	}
	m.locks[key] = struct{}{}
	return &memoryLock{m: m, key: key}, nil
}

type memoryLock struct {
	m   *Memory
	key string
}

func (l *memoryLock) Release(context.Context) error {
	l.m.mu.Lock()
	delete(l.m.locks, l.key)
	l.m.mu.Unlock()
	return nil
}
