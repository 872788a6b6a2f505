package repository

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/jrkim-kr/echarts-ai-studio/internal/projects/domain"
)

// CachedStore serves Get from a bounded, expiring cache. Writes through
// this store refresh or drop the cached entry; writes made elsewhere are
// visible once the entry expires.
type CachedStore struct {
	inner Store
	cache *expirable.LRU[string, *domain.Record]
}

func NewCachedStore(inner Store, size int, ttl time.Duration) *CachedStore {
	if size <= 0 {
		size = 128
	}
	return &CachedStore{
		inner: inner,
		cache: expirable.NewLRU[string, *domain.Record](size, nil, ttl),
	}
}

func (s *CachedStore) Create(ctx context.Context, rec *domain.Record) (string, error) {
	id, err := s.inner.Create(ctx, rec)
	if err != nil {
		return "", err
	}
	s.cache.Add(id, rec.Clone())
	return id, nil
}

func (s *CachedStore) Get(ctx context.Context, id string) (*domain.Record, error) {
	if rec, ok := s.cache.Get(id); ok {
		return rec.Clone(), nil
	}
	rec, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Add(id, rec.Clone())
	return rec, nil
}

func (s *CachedStore) ListRecent(ctx context.Context, limit int) ([]domain.Summary, error) {
	return s.inner.ListRecent(ctx, limit)
}

func (s *CachedStore) Update(ctx context.Context, id string, fn func(*domain.Record) error) (*domain.Record, error) {
	rec, err := s.inner.Update(ctx, id, fn)
	if err != nil {
		s.cache.Remove(id)
		return nil, err
	}
	s.cache.Add(id, rec.Clone())
	return rec, nil
}

func (s *CachedStore) Delete(ctx context.Context, id string) error {
	s.cache.Remove(id)
	return s.inner.Delete(ctx, id)
}
