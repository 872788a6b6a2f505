package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	spec "github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
	"github.com/jrkim-kr/echarts-ai-studio/internal/projects/domain"
)

var t0 = time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

func barSpec() spec.Spec {
	return spec.Spec{"series": []any{map[string]any{"type": "bar", "data": []any{1.0, 2.0}}}}
}

// exerciseStore runs the behaviour every Store implementation shares.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	rec := domain.NewRecord("매출", t0)
	rec.AppendChart("c1", barSpec(), "first", false, t0)
	id, err := s.Create(ctx, rec)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "매출", got.Name)
	require.Contains(t, got.Charts, "c1")
	assert.Equal(t, 1, got.Charts["c1"].Version)

	updated, err := s.Update(ctx, id, func(r *domain.Record) error {
		r.AppendChart("c2", barSpec(), "second", false, t0.Add(time.Minute))
		r.AddPrompt("second")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Charts["c2"].Version)
	assert.Equal(t, []string{"second"}, updated.Prompts)

	boom := errors.New("boom")
	_, err = s.Update(ctx, id, func(r *domain.Record) error {
		r.Name = "discarded"
		return boom
	})
	assert.ErrorIs(t, err, boom)
	got, err = s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "매출", got.Name)

	_, err = s.Update(ctx, "missing", func(*domain.Record) error { return nil })
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	assert.ErrorIs(t, s.Delete(ctx, id), domain.ErrProjectNotFound)
}

// exerciseListRecent creates three projects and checks the window and order.
func exerciseListRecent(t *testing.T, s Store) {
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := s.Create(ctx, domain.NewRecord(fmt.Sprintf("p%d", i), t0.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
		ids = append(ids, id)
	}
	// the oldest project becomes the most recently updated
	_, err := s.Update(ctx, ids[0], func(r *domain.Record) error {
		return r.Rename("p0'", t0.Add(10*time.Hour))
	})
	require.NoError(t, err)

	all, err := s.ListRecent(ctx, 20)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{ids[0], ids[2], ids[1]}, []string{all[0].ID, all[1].ID, all[2].ID})

	last2, err := s.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, last2, 2)
	assert.Equal(t, ids[2], last2[0].ID)
	assert.Equal(t, ids[1], last2[1].ID)
}

// exerciseConcurrentAppend checks that concurrent writers get distinct,
// gap-free versions.
func exerciseConcurrentAppend(t *testing.T, s Store, writers int) {
	ctx := context.Background()
	id, err := s.Create(ctx, domain.NewRecord("race", t0))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Update(ctx, id, func(r *domain.Record) error {
				r.AppendChart(fmt.Sprintf("c%d", i), barSpec(), "", false, t0)
				return nil
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	rec, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, rec.Charts, writers)
	seen := map[int]bool{}
	for _, c := range rec.Charts {
		seen[c.Version] = true
	}
	for v := 1; v <= writers; v++ {
		assert.True(t, seen[v], "missing version %d", v)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_ListRecent(t *testing.T) {
	exerciseListRecent(t, NewMemoryStore())
}

func TestMemoryStore_ConcurrentAppend(t *testing.T) {
	exerciseConcurrentAppend(t, NewMemoryStore(), 20)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	rec := domain.NewRecord("p", t0)
	id, err := s.Create(ctx, rec)
	require.NoError(t, err)
	rec.Name = "changed after create"

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	got.Name = "changed after get"

	again, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "p", again.Name)
}
