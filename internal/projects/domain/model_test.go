package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	spec "github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
)

var t0 = time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

func barSpec() spec.Spec {
	return spec.Spec{"series": []any{map[string]any{"type": "bar", "data": []any{1.0}}}}
}

func versions(r *Record) map[string][2]int {
	out := map[string][2]int{}
	for id, c := range r.Charts {
		cv, _ := c.Config.Version()
		out[id] = [2]int{c.Version, cv}
	}
	return out
}

func TestDefaultName(t *testing.T) {
	assert.Equal(t, "프로젝트 2024. 3. 5.", DefaultName(t0))
	assert.Equal(t, "프로젝트 2024. 3. 5.", NewRecord("  ", t0).Name)
	assert.Equal(t, "매출", NewRecord(" 매출 ", t0).Name)
}

func TestAppendChart_Versions(t *testing.T) {
	r := NewRecord("p", t0)
	in := barSpec()
	in.SetVersion(7)

	c1 := r.AppendChart("c1", in, "first", false, t0.Add(time.Minute))
	c2 := r.AppendChart("c2", barSpec(), "", true, t0.Add(2*time.Minute))

	assert.Equal(t, 1, c1.Version)
	assert.Equal(t, 2, c2.Version)
	v, ok := c1.Config.Version()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, t0.Add(2*time.Minute), r.UpdatedAt)
	assert.Equal(t, 2, r.LatestVersion())

	// caller's spec is not modified
	v, _ = in.Version()
	assert.Equal(t, 7, v)
}

func TestRemoveChart_Renumbers(t *testing.T) {
	r := NewRecord("p", t0)
	r.AppendChart("c1", barSpec(), "", false, t0)
	r.AppendChart("c2", barSpec(), "", false, t0)
	r.AppendChart("c3", barSpec(), "", false, t0)

	later := t0.Add(time.Hour)
	require.NoError(t, r.RemoveChart("c2", later))

	assert.Equal(t, map[string][2]int{
		"c1": {1, 1},
		"c3": {2, 2},
	}, versions(r))
	assert.Equal(t, later, r.UpdatedAt)

	// next append closes over the renumbered sequence
	c := r.AppendChart("c4", barSpec(), "", false, later)
	assert.Equal(t, 3, c.Version)

	assert.ErrorIs(t, r.RemoveChart("missing", later), ErrChartNotFound)
}

func TestRemoveChart_LastLeavesEmptyProject(t *testing.T) {
	r := NewRecord("p", t0)
	r.AppendChart("c1", barSpec(), "", false, t0)
	require.NoError(t, r.RemoveChart("c1", t0))
	assert.Empty(t, r.Charts)
	assert.Equal(t, 0, r.LatestVersion())

	_, ok := r.Latest()
	assert.False(t, ok)
}

func TestAddPrompt(t *testing.T) {
	r := NewRecord("p", t0)
	r.AddPrompt("a")
	r.AddPrompt("b")
	r.AddPrompt("a")
	r.AddPrompt("   ")
	r.AddPrompt("")
	assert.Equal(t, []string{"a", "b"}, r.Prompts)

	for i := 0; i < 30; i++ {
		r.AddPrompt(fmt.Sprintf("p%d", i))
	}
	require.Len(t, r.Prompts, MaxPrompts)
	assert.Equal(t, "p29", r.Prompts[0])
	assert.Equal(t, "p10", r.Prompts[MaxPrompts-1])
}

func TestRename(t *testing.T) {
	r := NewRecord("p", t0)
	assert.ErrorIs(t, r.Rename(" ", t0), ErrInvalidName)
	require.NoError(t, r.Rename(" 새 이름 ", t0.Add(time.Second)))
	assert.Equal(t, "새 이름", r.Name)
	assert.Equal(t, t0.Add(time.Second), r.UpdatedAt)
}

func TestDetail_OrdersNewestFirst(t *testing.T) {
	r := NewRecord("p", t0)
	r.AppendChart("old", barSpec(), "", false, t0)
	r.AppendChart("new", barSpec(), "", false, t0.Add(time.Hour))
	r.AppendChart("mid", barSpec(), "", false, t0.Add(time.Minute))
	r.AddPrompt("x")

	d := r.Detail("pid")
	require.Len(t, d.Charts, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{d.Charts[0].ID, d.Charts[1].ID, d.Charts[2].ID})
	assert.Equal(t, 3, d.ChartCount)
	assert.Equal(t, 1, d.PromptCount)
	assert.Equal(t, "pid", d.ID)

	latest, ok := r.Latest()
	require.True(t, ok)
	assert.Equal(t, "mid", latest.ID)
}

func TestClone_IsDeep(t *testing.T) {
	r := NewRecord("p", t0)
	r.AppendChart("c1", barSpec(), "x", false, t0)
	r.AddPrompt("x")

	cp := r.Clone()
	cp.Charts["c1"].Config.SetVersion(9)
	cp.Charts["c1"].Version = 9
	cp.Prompts[0] = "y"

	assert.Equal(t, 1, r.Charts["c1"].Version)
	v, _ := r.Charts["c1"].Config.Version()
	assert.Equal(t, 1, v)
	assert.Equal(t, "x", r.Prompts[0])
}

func TestSortRecent(t *testing.T) {
	items := []Summary{
		{ID: "a", UpdatedAt: t0},
		{ID: "b", UpdatedAt: t0.Add(time.Hour)},
		{ID: "c", UpdatedAt: t0.Add(time.Minute)},
	}
	SortRecent(items)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "c", items[1].ID)
	assert.Equal(t, "a", items[2].ID)
}
