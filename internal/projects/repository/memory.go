package repository

import (
	"context"
	"sync"

	"github.com/jrkim-kr/echarts-ai-studio/internal/projects/domain"
)

// MemoryStore is a process-local Store for development and tests.
// Records are cloned on the way in and out.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*domain.Record
	order   []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]*domain.Record{}}
}

func (s *MemoryStore) Create(_ context.Context, rec *domain.Record) (string, error) {
	id, err := domain.NewID("proj")
	if err != nil {
		return "", &domain.PersistenceError{Op: "create project", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = rec.Clone()
	s.order = append(s.order, id)
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return rec.Clone(), nil
}

// ListRecent takes the last limit projects in creation order, then sorts
// them by last update.
func (s *MemoryStore) ListRecent(_ context.Context, limit int) ([]domain.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.order
	if limit > 0 && len(ids) > limit {
		ids = ids[len(ids)-limit:]
	}
	out := make([]domain.Summary, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.records[id].Summary(id))
	}
	domain.SortRecent(out)
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, id string, fn func(*domain.Record) error) (*domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.records[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	next := cur.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	s.records[id] = next
	return next.Clone(), nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(s.records, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
