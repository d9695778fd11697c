package repository

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/classbot/internal/model"
)

// MemoryGroupStore живёт столько же, сколько процесс. После рестарта привязки теряются.
type MemoryGroupStore struct {
	mu    sync.RWMutex
	items map[int64]model.UserGroup
	now   func() time.Time
}

// NewMemoryGroupStore создаёт пустое хранилище в памяти
func NewMemoryGroupStore() *MemoryGroupStore {
	return &MemoryGroupStore{
		items: make(map[int64]model.UserGroup),
		now:   time.Now,
	}
}

func (s *MemoryGroupStore) Get(_ context.Context, userID int64) (*model.UserGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ug, ok := s.items[userID]
	if !ok {
		return nil, nil
	}
	return &ug, nil
}

func (s *MemoryGroupStore) Set(_ context.Context, userID int64, group string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[userID] = model.UserGroup{UserID: userID, Group: group, UpdatedAt: s.now()}
	return nil
}

func (s *MemoryGroupStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

func (s *MemoryGroupStore) Close() error { return nil }
