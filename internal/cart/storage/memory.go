package storage

import (
	"context"
	"sync"
)

// MemoryKV is an in-process KV used in tests and when running without
// Redis. Carts stored here do not survive a restart.
type MemoryKV struct {
	m    sync.RWMutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (s *MemoryKV) Get(_ context.Context, key string) (string, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryKV) Set(_ context.Context, key, value string) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryKV) Remove(_ context.Context, key string) error {
	s.m.Lock()
	defer s.m.Unlock()
	delete(s.data, key)
	return nil
}
