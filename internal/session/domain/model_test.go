package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	spec "github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
)

func TestDescribe(t *testing.T) {
	versioned := spec.Spec{"series": []any{}, "version": 3.0}

	tests := []struct {
		name        string
		session     Session
		wc          *WorkingCopy
		wantState   State
		wantVersion int
	}{
		{name: "fresh session", session: Session{ID: "s"}, wantState: StateNoProject},
		{name: "unsaved chart", session: Session{ID: "s"}, wc: &WorkingCopy{ChartConfig: spec.Spec{}}, wantState: StateDraft},
		{name: "empty project", session: Session{ID: "s", ProjectID: "p"}, wantState: StatePersisted},
		{name: "saved chart", session: Session{ID: "s", ProjectID: "p"}, wc: &WorkingCopy{ChartConfig: versioned}, wantState: StatePersisted, wantVersion: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Describe(&tt.session, tt.wc)
			assert.Equal(t, tt.wantState, v.State)
			assert.Equal(t, tt.wantVersion, v.Version)
		})
	}
}

func TestWorkingCopyFresh(t *testing.T) {
	now := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	assert.True(t, (&WorkingCopy{SavedAt: now.Add(-23 * time.Hour)}).Fresh(now))
	assert.False(t, (&WorkingCopy{SavedAt: now.Add(-24 * time.Hour)}).Fresh(now))

	var missing *WorkingCopy
	assert.False(t, missing.Fresh(now))
}
