package repository

import (
	"context"
	"sync"

	"github.com/example/aseertime/pkg/cart"
)

// MemorySessions keeps cart snapshots in process, for single-node runs and tests.
type MemorySessions struct {
	mu    sync.RWMutex
	carts map[string]cart.Snapshot
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{carts: make(map[string]cart.Snapshot)}
}

func (s *MemorySessions) Load(ctx context.Context, session string) (cart.Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.carts[session]
	return snap, ok, nil
}

func (s *MemorySessions) Save(ctx context.Context, session string, snap cart.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[session] = snap
	return nil
}

func (s *MemorySessions) Delete(ctx context.Context, session string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, session)
	return nil
}
