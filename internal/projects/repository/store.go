package repository

import (
	"context"
	"strings"

	"github.com/jrkim-kr/echarts-ai-studio/internal/projects/domain"
)

// Store persists projects under projects/{id}.
//
// Update runs fn against the current record and writes the result
// atomically; fn may be invoked more than once if another writer wins
// the race, so it must not have side effects outside the record.
type Store interface {
	Create(ctx context.Context, rec *domain.Record) (string, error)
	Get(ctx context.Context, id string) (*domain.Record, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Summary, error)
	Update(ctx context.Context, id string, fn func(*domain.Record) error) (*domain.Record, error)
	Delete(ctx context.Context, id string) error
}

// validKey rejects ids that are empty or would address a different node.
func validKey(id string) bool {
	return strings.TrimSpace(id) != "" && !strings.ContainsAny(id, "/.#$[]")
}
