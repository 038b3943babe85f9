package repository

import (
	"context"
	"fmt"
	"sync"
)

// Memory keeps entities in insertion order behind a RWMutex.
type Memory[T Entity] struct {
	mu    sync.RWMutex
	index map[string]int
	items []T
}

func NewMemory[T Entity]() *Memory[T] {
	return &Memory[T]{index: make(map[string]int)}
}

func (m *Memory[T]) List(ctx context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]T(nil), m.items...), nil
}

func (m *Memory[T]) Get(ctx context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.index[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return m.items[i], nil
}

func (m *Memory[T]) Put(ctx context.Context, v T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i, ok := m.index[v.Key()]; ok {
		m.items[i] = v
		return nil
	}
	m.index[v.Key()] = len(m.items)
	m.items = append(m.items, v)
	return nil
}

func (m *Memory[T]) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	delete(m.index, id)
	for j := i; j < len(m.items); j++ {
		m.index[m.items[j].Key()] = j
	}
	return nil
}

func (m *Memory[T]) ReplaceAll(ctx context.Context, items []T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]T(nil), items...)
	m.index = make(map[string]int, len(items))
	for i, v := range m.items {
		m.index[v.Key()] = i
	}
	return nil
}

func (m *Memory[T]) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items), nil
}
