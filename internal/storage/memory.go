package storage

import (
	"context"
	"sync"

	"restaurantlisting/internal/restaurant"
)

// MemoryStore — in-memory реализация restaurant.Store.
// Порядок выдачи ListAll совпадает с порядком вставки.
type MemoryStore struct {
	mu    sync.RWMutex
	seq   int64
	order []int64
	byID  map[int64]restaurant.Restaurant
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[int64]restaurant.Restaurant)}
}

func (s *MemoryStore) ListAll(_ context.Context) ([]restaurant.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]restaurant.Restaurant, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

// Save: нулевой ID — новая запись со следующим номером.
// Ненулевой — запись под этим ID (seq подтягивается, чтобы не было коллизий).
func (s *MemoryStore) Save(_ context.Context, r restaurant.Restaurant) (restaurant.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == 0 {
		s.seq++
		r.ID = s.seq
	} else if r.ID > s.seq {
		s.seq = r.ID
	}
	if _, exists := s.byID[r.ID]; !exists {
		s.order = append(s.order, r.ID)
	}
	s.byID[r.ID] = r
	return r, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id int64) (restaurant.Restaurant, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byID[id]
	return r, ok, nil
}
